package keystore

import (
	"crypto/hmac"
	"crypto/sha512"

	"github.com/stellar/go/keypair"

	"github.com/scriplabs/scrip/internal/crypto"
)

// ed25519SeedKey is the HMAC domain-separation key for account seed
// derivation from the BIP39 master seed.
const ed25519SeedKey = "ed25519 seed"

// AccountKeypair derives the account's ed25519 keypair from the BIP39
// seed: the first 32 bytes of HMAC-SHA512("ed25519 seed", seed) become
// the raw signing seed. Intermediate key material is zeroed before return.
func AccountKeypair(seed *crypto.SecureBytes) (*keypair.Full, error) {
	mac := hmac.New(sha512.New, []byte(ed25519SeedKey))
	mac.Write(seed.Bytes())
	sum := mac.Sum(nil)

	var raw [32]byte
	copy(raw[:], sum[:32])
	for i := range sum {
		sum[i] = 0
	}

	kp, err := keypair.FromRawSeed(raw)
	for i := range raw {
		raw[i] = 0
	}
	return kp, err
}
