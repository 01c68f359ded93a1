package keystore

import (
	"path/filepath"
	"testing"

	"github.com/scriplabs/scrip/internal/crypto"
	"github.com/scriplabs/scrip/internal/keyid"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

func testSeed(t *testing.T) *crypto.SecureBytes {
	t.Helper()
	raw, err := MnemonicToSeed(testMnemonic, "")
	if err != nil {
		t.Fatalf("MnemonicToSeed() error: %v", err)
	}
	sb, err := crypto.SecureBytesFromSlice(raw)
	if err != nil {
		t.Fatalf("SecureBytesFromSlice() error: %v", err)
	}
	t.Cleanup(sb.Destroy)
	return sb
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "wallet.age"))
	seed := testSeed(t)

	kp, err := AccountKeypair(seed)
	if err != nil {
		t.Fatalf("AccountKeypair() error: %v", err)
	}

	if store.Exists() {
		t.Fatal("store should not exist before Save")
	}

	err = store.Save(&Wallet{AccountID: kp.Address()}, seed, "pass")
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !store.Exists() {
		t.Fatal("store should exist after Save")
	}

	wallet, loaded, err := store.Load("pass")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer loaded.Destroy()

	if wallet.AccountID != kp.Address() {
		t.Errorf("AccountID = %q, want %q", wallet.AccountID, kp.Address())
	}
	if wallet.CreatedAt == 0 {
		t.Error("CreatedAt should be stamped on save")
	}
	if string(loaded.Bytes()) != string(seed.Bytes()) {
		t.Error("loaded seed differs from saved seed")
	}
}

func TestStoreRefusesOverwrite(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "wallet.age"))
	seed := testSeed(t)

	if err := store.Save(&Wallet{AccountID: "G1"}, seed, "pass"); err != nil {
		t.Fatalf("first Save() error: %v", err)
	}

	err := store.Save(&Wallet{AccountID: "G2"}, seed, "pass")
	if !scriperr.Is(err, scriperr.ErrWalletExists) {
		t.Errorf("second Save() = %v, want wallet exists", err)
	}
}

func TestStoreLoadWrongPassword(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "wallet.age"))
	if err := store.Save(&Wallet{AccountID: "G1"}, testSeed(t), "right"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	_, _, err := store.Load("wrong")
	if !scriperr.Is(err, scriperr.ErrDecryptionFailed) {
		t.Errorf("Load() with wrong password = %v, want decryption failure", err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.age"))

	if _, _, err := store.Load("pass"); !scriperr.Is(err, scriperr.ErrWalletNotFound) {
		t.Errorf("Load() of missing wallet = %v", err)
	}
	if _, err := store.LoadMetadata(); !scriperr.Is(err, scriperr.ErrWalletNotFound) {
		t.Errorf("LoadMetadata() of missing wallet = %v", err)
	}
	if err := store.Delete(); !scriperr.Is(err, scriperr.ErrWalletNotFound) {
		t.Errorf("Delete() of missing wallet = %v", err)
	}
}

func TestStoreMetadataWithoutPassword(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "wallet.age"))
	if err := store.Save(&Wallet{AccountID: "GMETA"}, testSeed(t), "pass"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	wallet, err := store.LoadMetadata()
	if err != nil {
		t.Fatalf("LoadMetadata() error: %v", err)
	}
	if wallet.AccountID != "GMETA" {
		t.Errorf("AccountID = %q", wallet.AccountID)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "wallet.age"))
	if err := store.Save(&Wallet{AccountID: "G1"}, testSeed(t), "pass"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if store.Exists() {
		t.Error("wallet should be gone after Delete")
	}
}

func TestAccountKeypairDeterministic(t *testing.T) {
	seed := testSeed(t)

	kp1, err := AccountKeypair(seed)
	if err != nil {
		t.Fatalf("AccountKeypair() error: %v", err)
	}
	kp2, err := AccountKeypair(seed)
	if err != nil {
		t.Fatalf("AccountKeypair() error: %v", err)
	}

	if kp1.Address() != kp2.Address() {
		t.Error("same seed must derive the same account")
	}
	if !keyid.IsAccountID(kp1.Address()) {
		t.Errorf("derived address %q is not a valid account ID", kp1.Address())
	}
}

func TestAccountKeypairDiffersPerSeed(t *testing.T) {
	kp1, err := AccountKeypair(testSeed(t))
	if err != nil {
		t.Fatalf("AccountKeypair() error: %v", err)
	}

	raw, err := MnemonicToSeed(testMnemonic, "other-passphrase")
	if err != nil {
		t.Fatalf("MnemonicToSeed() error: %v", err)
	}
	other, err := crypto.SecureBytesFromSlice(raw)
	if err != nil {
		t.Fatalf("SecureBytesFromSlice() error: %v", err)
	}
	defer other.Destroy()

	kp2, err := AccountKeypair(other)
	if err != nil {
		t.Fatalf("AccountKeypair() error: %v", err)
	}

	if kp1.Address() == kp2.Address() {
		t.Error("different seeds must derive different accounts")
	}
}
