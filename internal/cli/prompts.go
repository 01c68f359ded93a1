package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/scriplabs/scrip/internal/keystore"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// promptNewPassword prompts for a new password with confirmation.
// The caller is responsible for zeroing the returned bytes after use.
func promptNewPassword() ([]byte, error) {
	password, err := promptPassword("Enter encryption password: ")
	if err != nil {
		return nil, err
	}

	if len(password) < 8 {
		zeroBytes(password)
		return nil, scriperr.WithSuggestion(
			scriperr.ErrInvalidInput,
			"password must be at least 8 characters",
		)
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		zeroBytes(password)
		return nil, err
	}
	defer zeroBytes(confirm)

	if string(password) != string(confirm) {
		zeroBytes(password)
		return nil, scriperr.WithSuggestion(
			scriperr.ErrInvalidInput,
			"passwords do not match",
		)
	}

	return password, nil
}

// promptPassphrase prompts for an optional BIP39 passphrase.
func promptPassphrase() (string, error) {
	outln(os.Stderr, "\nBIP39 Passphrase (optional extra security layer):")
	outln(os.Stderr, "WARNING: If you lose this passphrase, you cannot recover your wallet!")

	passphrase, err := promptPassword("Enter passphrase: ")
	if err != nil {
		return "", err
	}

	if len(passphrase) == 0 {
		return "", nil
	}

	confirm, err := promptPassword("Confirm passphrase: ")
	if err != nil {
		zeroBytes(passphrase)
		return "", err
	}
	defer zeroBytes(confirm)

	if string(passphrase) != string(confirm) {
		zeroBytes(passphrase)
		return "", scriperr.WithSuggestion(
			scriperr.ErrInvalidInput,
			"passphrases do not match",
		)
	}

	result := string(passphrase)
	zeroBytes(passphrase)
	return result, nil
}

// promptMnemonic prompts for a multi-word mnemonic on one line.
func promptMnemonic() (string, error) {
	out(os.Stderr, "Enter mnemonic (all words on one line): ")

	var words []string
	for i := 0; i < 24; i++ {
		var word string
		if _, err := fmt.Scan(&word); err != nil {
			break
		}
		words = append(words, word)

		mnemonic := strings.Join(words, " ")
		if (len(words) == 12 || len(words) == 24) && keystore.ValidateMnemonic(mnemonic) == nil {
			return mnemonic, nil
		}
	}

	if len(words) > 0 {
		return strings.Join(words, " "), nil
	}
	return "", scriperr.WithSuggestion(scriperr.ErrInvalidInput, "no input provided")
}
