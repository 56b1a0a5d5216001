package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/algointent/atomix/internal/crypto"
	"github.com/algointent/atomix/internal/wallet"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// Prompt function variables let tests stub interactive input.
//
//nolint:gochecknoglobals // swapped out in tests
var (
	promptPasswordFn    = promptPassword
	promptNewPasswordFn = promptNewPassword
	promptConfirmFn     = promptConfirmation
	promptMnemonicFn    = promptMnemonic
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
		crypto.ZeroBytes(password)
		return nil, atomixerr.WithSuggestion(
			atomixerr.ErrInvalidInput,
			"password must be at least 8 characters",
		)
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		crypto.ZeroBytes(password)
		return nil, err
	}
	defer crypto.ZeroBytes(confirm)

	if string(password) != string(confirm) {
		crypto.ZeroBytes(password)
		return nil, atomixerr.WithSuggestion(
			atomixerr.ErrInvalidInput,
			"passwords do not match",
		)
	}

	return password, nil
}

// promptConfirmation asks the user to confirm a destructive action.
func promptConfirmation(question string) bool {
	out(os.Stderr, "%s [y/N]: ", question)

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// promptMnemonic reads a recovery phrase from stdin, normalizes it,
// and points out likely typos before the phrase is rejected outright.
func promptMnemonic() (string, error) {
	outln(os.Stderr, "Enter your recovery phrase (all words on one line):")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", atomixerr.WithSuggestion(atomixerr.ErrInvalidInput, "no input provided")
	}

	mnemonic := wallet.NormalizeMnemonicInput(line)
	if mnemonic == "" {
		return "", atomixerr.WithSuggestion(atomixerr.ErrInvalidInput, "no input provided")
	}

	if verr := wallet.ValidateMnemonic(mnemonic); verr != nil {
		for _, typo := range wallet.DetectTypos(mnemonic) {
			out(os.Stderr, "Word %d %q is not in the word list", typo.Index+1, typo.Word)
			if typo.Suggestion != "" {
				out(os.Stderr, "; did you mean %q?", typo.Suggestion)
			}
			outln(os.Stderr)
		}
		return "", verr
	}

	return mnemonic, nil
}
