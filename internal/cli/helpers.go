package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/algointent/atomix/internal/cache"
	"github.com/algointent/atomix/internal/crypto"
	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/ledger/algod"
	"github.com/algointent/atomix/internal/service/transaction"
	"github.com/algointent/atomix/internal/wallet"
)

// defaultCommandTimeout bounds a single command's node interaction. Commands
// that wait for confirmation scale this by the configured wait rounds.
const defaultCommandTimeout = 30 * time.Second

// out is a helper for CLI output.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...interface{}) {
	fmt.Fprintln(w, args...)
}

// contextWithTimeout returns a timeout context rooted in the command context.
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	return context.WithTimeout(base, d)
}

// confirmationTimeout allows roughly five seconds of block time per round
// waited, plus the base command timeout for the surrounding calls.
func confirmationTimeout() time.Duration {
	rounds := cfg.GetWaitRounds()
	return defaultCommandTimeout + time.Duration(rounds)*5*time.Second
}

// newGateway constructs a node client from the loaded configuration. Asset
// parameters are cached under the data directory so repeat transfers of a
// known asset skip the lookup.
func newGateway() (*algod.Client, error) {
	limiter := ledger.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	storage := cache.NewFileStorage(filepath.Join(cfg.GetHome(), "assets.json"))
	assetCache, err := storage.Load()
	if err != nil {
		logger.Error("loading asset cache: %v", err)
		assetCache = cache.New()
	}

	return algod.NewClient(cfg.GetNodeURL(), &algod.ClientOptions{
		APIToken:     cfg.GetNodeToken(),
		RateLimiter:  limiter,
		AssetCache:   assetCache,
		CacheStorage: storage,
	})
}

// loadSigner decrypts the stored wallet and derives the signing key.
// The returned cleanup zeroes the key material and must always be called.
func loadSigner() (*wallet.Signer, func(), error) {
	store := wallet.NewStore(cfg.Wallet.KeyFile)

	password, err := promptPasswordFn("Enter wallet password: ")
	if err != nil {
		return nil, nil, err
	}
	defer crypto.ZeroBytes(password)

	signer, err := store.LoadSigner(string(password), "")
	if err != nil {
		return nil, nil, err
	}
	return signer, func() { signer.Zero() }, nil
}

// newService wires a gateway and signer into a transaction service.
func newService(gateway transaction.Gateway, signer transaction.Signer) *transaction.Service {
	return transaction.NewService(&transaction.Config{
		Gateway: gateway,
		Signer:  signer,
		Config:  cfg,
		Logger:  logger,
	})
}
