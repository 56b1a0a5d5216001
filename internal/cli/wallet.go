package cli

import (
	"github.com/spf13/cobra"

	"github.com/algointent/atomix/internal/crypto"
	"github.com/algointent/atomix/internal/wallet"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// createWords is the number of words for mnemonic generation.
	createWords int
	// restoreInput is the recovery phrase for wallet restoration.
	restoreInput string
	// deleteYes skips the interactive confirmation.
	deleteYes bool
)

// walletCmd is the parent command for wallet operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the signing wallet",
	Long:  `Create, restore, inspect, and delete the stored signing wallet.`,
}

// walletCreateCmd creates a new wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new wallet",
	Long: `Create a new wallet with a fresh recovery phrase.

The phrase is displayed once - write it down and store it securely.
You will be prompted for a password to encrypt the wallet file.

Example:
  atomix wallet create
  atomix wallet create --words 24`,
	RunE: runWalletCreate,
}

// walletRestoreCmd restores a wallet from a recovery phrase.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a wallet from a recovery phrase",
	Long: `Restore a wallet from its recovery phrase.

The phrase can be given with --phrase or entered interactively.
Numbered lists and extra whitespace are tolerated.

Example:
  atomix wallet restore --phrase "abandon abandon ... about"
  atomix wallet restore  # Interactive mode`,
	RunE: runWalletRestore,
}

// walletAddressCmd prints the wallet's address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show the wallet address",
	Long: `Decrypt the stored wallet and print its address.

Example:
  atomix wallet address`,
	RunE: runWalletAddress,
}

// walletDeleteCmd deletes the stored wallet file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored wallet",
	Long: `Delete the encrypted wallet file.

Without the recovery phrase the wallet cannot be recreated afterwards.

Example:
  atomix wallet delete`,
	RunE: runWalletDelete,
}

func runWalletCreate(cmd *cobra.Command, _ []string) error {
	store := wallet.NewStore(cfg.Wallet.KeyFile)
	if store.Exists() {
		return atomixerr.WithSuggestion(
			atomixerr.ErrWalletExists,
			"delete the existing wallet first with 'atomix wallet delete'",
		)
	}

	if createWords != 12 && createWords != 24 {
		return atomixerr.WithSuggestion(
			atomixerr.ErrInvalidInput,
			"word count must be 12 or 24",
		)
	}

	mnemonic, err := wallet.GenerateMnemonic(createWords)
	if err != nil {
		return err
	}

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(password)

	if err := store.Save(mnemonic, string(password)); err != nil {
		return err
	}

	signer, err := wallet.NewSignerFromMnemonic(mnemonic, "")
	if err != nil {
		return err
	}
	defer signer.Zero()

	displayMnemonic(cmd, mnemonic)

	w := cmd.OutOrStdout()
	outln(w)
	out(w, "Address: %s\n", signer.Address())
	out(w, "Wallet file: %s\n", store.Path())
	return nil
}

func runWalletRestore(cmd *cobra.Command, _ []string) error {
	store := wallet.NewStore(cfg.Wallet.KeyFile)
	if store.Exists() {
		return atomixerr.WithSuggestion(
			atomixerr.ErrWalletExists,
			"delete the existing wallet first with 'atomix wallet delete'",
		)
	}

	mnemonic := wallet.NormalizeMnemonicInput(restoreInput)
	if mnemonic == "" {
		var err error
		mnemonic, err = promptMnemonicFn()
		if err != nil {
			return err
		}
	} else if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		return err
	}

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(password)

	if err := store.Save(mnemonic, string(password)); err != nil {
		return err
	}

	signer, err := wallet.NewSignerFromMnemonic(mnemonic, "")
	if err != nil {
		return err
	}
	defer signer.Zero()

	w := cmd.OutOrStdout()
	out(w, "Wallet restored.\n")
	out(w, "Address: %s\n", signer.Address())
	out(w, "Wallet file: %s\n", store.Path())
	return nil
}

func runWalletAddress(cmd *cobra.Command, _ []string) error {
	signer, done, err := loadSigner()
	if err != nil {
		return err
	}
	defer done()

	outln(cmd.OutOrStdout(), signer.Address())
	return nil
}

func runWalletDelete(cmd *cobra.Command, _ []string) error {
	store := wallet.NewStore(cfg.Wallet.KeyFile)
	if !store.Exists() {
		return atomixerr.ErrWalletNotFound
	}

	if !deleteYes {
		if !promptConfirmFn("Delete the wallet file? Without the recovery phrase it cannot be recreated.") {
			return atomixerr.WithSuggestion(atomixerr.ErrInvalidInput, "delete canceled")
		}
	}

	if err := store.Delete(); err != nil {
		return err
	}
	out(cmd.OutOrStdout(), "Wallet deleted: %s\n", store.Path())
	return nil
}

// displayMnemonic shows the recovery phrase with formatting.
func displayMnemonic(cmd *cobra.Command, mnemonic string) {
	w := cmd.OutOrStdout()
	outln(w)
	outln(w, "===================================================================")
	outln(w, "                    RECOVERY PHRASE")
	outln(w, "===================================================================")
	outln(w)
	outln(w, "Write down these words in order and store them securely.")
	outln(w, "This is the ONLY way to recover your wallet.")
	outln(w)
	outln(w, "  "+mnemonic)
	outln(w)
	outln(w, "===================================================================")
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletCreateCmd)
	walletCmd.AddCommand(walletRestoreCmd)
	walletCmd.AddCommand(walletAddressCmd)
	walletCmd.AddCommand(walletDeleteCmd)

	walletCreateCmd.Flags().IntVar(&createWords, "words", 12, "mnemonic word count (12 or 24)")
	walletRestoreCmd.Flags().StringVar(&restoreInput, "phrase", "", "recovery phrase (interactive if empty)")
	walletDeleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "skip confirmation prompt")
}
