package crypto

import (
	"bytes"
	"io"

	"filippo.io/age"

	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// Encrypt encrypts plaintext using age with a password-based scrypt recipient.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts age ciphertext with a password-based identity. A wrong
// password or corrupted ciphertext surfaces as ErrDecryptionFailed.
func Decrypt(ciphertext []byte, password string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, err
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, scriperr.WithCause(scriperr.ErrDecryptionFailed, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, scriperr.WithCause(scriperr.ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// EncryptSecure encrypts the contents of a SecureBytes.
func EncryptSecure(sb *SecureBytes, password string) ([]byte, error) {
	data := sb.Bytes()
	if data == nil {
		return nil, nil
	}
	return Encrypt(data, password)
}

// DecryptSecure decrypts ciphertext directly into secure memory, zeroing
// the intermediate plaintext.
func DecryptSecure(ciphertext []byte, password string) (*SecureBytes, error) {
	plaintext, err := Decrypt(ciphertext, password)
	if err != nil {
		return nil, err
	}

	sb, err := SecureBytesFromSlice(plaintext)
	if err != nil {
		return nil, err
	}

	for i := range plaintext {
		plaintext[i] = 0
	}

	return sb, nil
}
