package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scriplabs/scrip/internal/crypto"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

const (
	// walletFilePermissions is the permission mode for the wallet file.
	walletFilePermissions = 0o600

	// walletDirPermissions is the permission mode for the wallet directory.
	walletDirPermissions = 0o750
)

// Wallet is the public metadata of a stored wallet. The seed never
// appears here; it lives only in the encrypted blob.
type Wallet struct {
	AccountID string `json:"account_id"`
	CreatedAt int64  `json:"created_at"`
}

// walletFile is the on-disk wallet structure.
type walletFile struct {
	Wallet *Wallet `json:"wallet"`

	// EncryptedSeed is the age-encrypted BIP39 seed.
	EncryptedSeed []byte `json:"encrypted_seed"`
}

// Store persists one wallet at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given wallet file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the wallet file path.
func (s *Store) Path() string { return s.path }

// Exists reports whether a wallet file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save encrypts the seed with the password and writes the wallet file.
// Saving over an existing wallet is refused.
func (s *Store) Save(wallet *Wallet, seed *crypto.SecureBytes, password string) error {
	if s.Exists() {
		return scriperr.WithDetails(scriperr.ErrWalletExists, map[string]string{"path": s.path})
	}

	if err := os.MkdirAll(filepath.Dir(s.path), walletDirPermissions); err != nil {
		return fmt.Errorf("creating wallet directory: %w", err)
	}

	encryptedSeed, err := crypto.EncryptSecure(seed, password)
	if err != nil {
		return fmt.Errorf("encrypting seed: %w", err)
	}

	if wallet.CreatedAt == 0 {
		wallet.CreatedAt = time.Now().UTC().Unix()
	}

	data, err := json.MarshalIndent(walletFile{
		Wallet:        wallet,
		EncryptedSeed: encryptedSeed,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling wallet: %w", err)
	}

	if err := os.WriteFile(s.path, data, walletFilePermissions); err != nil {
		return fmt.Errorf("writing wallet file: %w", err)
	}

	return nil
}

// Load reads the wallet file and decrypts the seed into secure memory.
// The caller owns the returned SecureBytes and must Destroy it.
func (s *Store) Load(password string) (*Wallet, *crypto.SecureBytes, error) {
	if !s.Exists() {
		return nil, nil, scriperr.WithDetails(scriperr.ErrWalletNotFound, map[string]string{"path": s.path})
	}

	// #nosec G304 -- wallet path comes from validated config
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading wallet file: %w", err)
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, nil, fmt.Errorf("parsing wallet file: %w", err)
	}

	seed, err := crypto.DecryptSecure(wf.EncryptedSeed, password)
	if err != nil {
		return nil, nil, err
	}

	return wf.Wallet, seed, nil
}

// LoadMetadata reads the wallet metadata without decrypting the seed.
func (s *Store) LoadMetadata() (*Wallet, error) {
	if !s.Exists() {
		return nil, scriperr.WithDetails(scriperr.ErrWalletNotFound, map[string]string{"path": s.path})
	}

	// #nosec G304 -- wallet path comes from validated config
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading wallet file: %w", err)
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing wallet file: %w", err)
	}

	return wf.Wallet, nil
}

// Delete removes the wallet file.
func (s *Store) Delete() error {
	if !s.Exists() {
		return scriperr.WithDetails(scriperr.ErrWalletNotFound, map[string]string{"path": s.path})
	}
	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("removing wallet file: %w", err)
	}
	return nil
}
