// Package ledger provides protocol constants and common utilities for the
// target ledger: address validation, decimal amount conversion, retry and
// rate-limiting helpers shared by the node client.
package ledger

// Protocol constants.
const (
	// NativeDecimals is the decimal precision of the native unit.
	// One native unit equals 1e6 atomic micro-units.
	NativeDecimals = 6

	// MicroUnit is the number of atomic units in one native unit.
	MicroUnit uint64 = 1_000_000

	// MinFee is the minimum flat transaction fee in micro-units.
	MinFee uint64 = 1_000

	// MaxGroupSize is the maximum number of transactions in an atomic group.
	MaxGroupSize = 16

	// AddressLen is the length of a canonical base32 account address.
	AddressLen = 58

	// checksumLen is the length in bytes of the address checksum suffix.
	checksumLen = 4

	// publicKeyLen is the length in bytes of an account public key.
	publicKeyLen = 32
)

// Maximum field lengths for asset creation. Longer values are truncated,
// not rejected.
const (
	MaxAssetNameLen = 32
	MaxUnitNameLen  = 8
	MaxAssetURLLen  = 96
)

// MaxNoteLen is the maximum transaction note size in bytes.
const MaxNoteLen = 1024

// DefaultValidRounds is the width of the validity window requested for new
// transactions, in rounds past the current round.
const DefaultValidRounds = 1000
