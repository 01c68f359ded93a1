package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scriplabs/scrip/internal/config"
	"github.com/scriplabs/scrip/internal/crypto"
	"github.com/scriplabs/scrip/internal/keystore"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// createWords is the number of words for mnemonic generation.
	createWords int
	// createPassphrase indicates whether to prompt for a BIP39 passphrase.
	createPassphrase bool
)

// walletCmd is the parent command for wallet operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the wallet",
	Long:  `Create, restore, and inspect the encrypted wallet.`,
}

// walletCreateCmd creates a new wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new wallet",
	Long: `Create a new wallet from a freshly generated BIP39 mnemonic.

The mnemonic is shown once and never stored; the derived seed is
encrypted with your password and written to the wallet file.`,
	Example: `  scrip wallet create
  scrip wallet create --words 24 --passphrase`,
	RunE: runWalletCreate,
}

// walletRestoreCmd restores a wallet from a mnemonic.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a wallet from a mnemonic",
	RunE:  runWalletRestore,
}

// walletShowCmd shows wallet metadata without unlocking it.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show wallet metadata",
	RunE:  runWalletShow,
}

// WalletInfo is the printable wallet metadata.
type WalletInfo struct {
	AccountID string `json:"account_id"`
	File      string `json:"file"`
}

func runWalletCreate(_ *cobra.Command, _ []string) error {
	mnemonic, err := keystore.GenerateMnemonic(createWords)
	if err != nil {
		return err
	}

	outln(os.Stderr, "Your recovery mnemonic (write it down, it is shown ONCE):")
	outln(os.Stderr)
	outln(os.Stderr, "  "+mnemonic)
	outln(os.Stderr)

	return saveWalletFromMnemonic(mnemonic)
}

func runWalletRestore(_ *cobra.Command, _ []string) error {
	mnemonic, err := promptMnemonic()
	if err != nil {
		return err
	}
	if err := keystore.ValidateMnemonic(mnemonic); err != nil {
		return err
	}
	return saveWalletFromMnemonic(mnemonic)
}

// saveWalletFromMnemonic derives the seed and account key, encrypts the
// seed, and writes the wallet file.
func saveWalletFromMnemonic(mnemonic string) error {
	passphrase := ""
	if createPassphrase {
		var err error
		if passphrase, err = promptPassphrase(); err != nil {
			return err
		}
	}

	rawSeed, err := keystore.MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return err
	}
	seed, err := crypto.SecureBytesFromSlice(rawSeed)
	zeroBytes(rawSeed)
	if err != nil {
		return err
	}
	defer seed.Destroy()

	kp, err := keystore.AccountKeypair(seed)
	if err != nil {
		return err
	}

	password, err := promptNewPassword()
	if err != nil {
		return err
	}
	defer zeroBytes(password)

	store := keystore.NewStore(config.ExpandHome(cfg.GetWalletFile()))
	if err := store.Save(&keystore.Wallet{AccountID: kp.Address()}, seed, string(password)); err != nil {
		return err
	}

	return formatter.Print(WalletInfo{
		AccountID: kp.Address(),
		File:      store.Path(),
	})
}

func runWalletShow(_ *cobra.Command, _ []string) error {
	store := keystore.NewStore(config.ExpandHome(cfg.GetWalletFile()))

	wallet, err := store.LoadMetadata()
	if err != nil {
		return err
	}

	return formatter.Print(WalletInfo{
		AccountID: wallet.AccountID,
		File:      store.Path(),
	})
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletCreateCmd)
	walletCmd.AddCommand(walletRestoreCmd)
	walletCmd.AddCommand(walletShowCmd)

	walletCreateCmd.Flags().IntVar(&createWords, "words", 12, "mnemonic word count (12 or 24)")
	walletCreateCmd.Flags().BoolVar(&createPassphrase, "passphrase", false, "prompt for a BIP39 passphrase")
	walletRestoreCmd.Flags().BoolVar(&createPassphrase, "passphrase", false, "prompt for a BIP39 passphrase")
}
