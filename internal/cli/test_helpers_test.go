package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/algointent/atomix/internal/config"
	"github.com/algointent/atomix/internal/output"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// withTestGlobals installs a throwaway config, logger, and formatter for
// the duration of a test.
func withTestGlobals(t *testing.T) *config.Config {
	t.Helper()
	origCfg, origLogger, origFormatter := cfg, logger, formatter
	t.Cleanup(func() {
		cfg, logger, formatter = origCfg, origLogger, origFormatter
	})

	home := t.TempDir()
	cfg = config.Defaults()
	cfg.Home = home
	cfg.Wallet.KeyFile = home + "/key.age"
	cfg.Logging.Level = "off"
	logger = config.NullLogger()
	formatter = output.NewFormatter(output.FormatText, io.Discard)
	return cfg
}

// withMockPrompts replaces prompt functions for testing and restores on cleanup.
func withMockPrompts(t *testing.T, password []byte, confirm bool) {
	t.Helper()
	origPW := promptPasswordFn
	origNewPW := promptNewPasswordFn
	origConfirm := promptConfirmFn
	origMnemonic := promptMnemonicFn
	t.Cleanup(func() {
		promptPasswordFn = origPW
		promptNewPasswordFn = origNewPW
		promptConfirmFn = origConfirm
		promptMnemonicFn = origMnemonic
	})
	promptPasswordFn = func(_ string) ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptNewPasswordFn = func() ([]byte, error) {
		cp := make([]byte, len(password))
		copy(cp, password)
		return cp, nil
	}
	promptConfirmFn = func(_ string) bool { return confirm }
	promptMnemonicFn = func() (string, error) {
		return testMnemonic, nil
	}
}

// testCommand returns a bare command with a captured output buffer.
func testCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}
