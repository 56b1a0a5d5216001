package wallet

import (
	"crypto/ed25519"

	"github.com/algointent/atomix/internal/crypto"
	"github.com/algointent/atomix/internal/ledger"
	"github.com/algointent/atomix/internal/ledger/txn"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// Signer holds an ed25519 key and authorizes transactions with it. The key
// lives only inside the signer; callers hand it whole batches and receive
// wire-ready signed bytes back.
type Signer struct {
	priv    ed25519.PrivateKey
	address string
}

// NewSignerFromMnemonic derives the signing key from a BIP39 mnemonic.
func NewSignerFromMnemonic(mnemonic, passphrase string) (*Signer, error) {
	seed, err := MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(seed)

	return NewSignerFromKeySeed(seed[:ed25519.SeedSize])
}

// NewSignerFromKeySeed builds a signer from a raw 32-byte ed25519 seed.
func NewSignerFromKeySeed(seed []byte) (*Signer, error) {
	if len(seed) < ed25519.SeedSize {
		return nil, atomixerr.New("KEY_SEED_TOO_SHORT", "signing key seed must be at least 32 bytes")
	}

	priv := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])

	var pk [32]byte
	copy(pk[:], priv.Public().(ed25519.PublicKey))

	return &Signer{
		priv:    priv,
		address: ledger.EncodeAddress(pk),
	}, nil
}

// Address returns the signer's ledger address.
func (s *Signer) Address() string {
	return s.address
}

// SignTransactions signs each transaction over its domain-separated digest
// preimage and returns the encoded signed transactions in the same order.
func (s *Signer) SignTransactions(txns []txn.Transaction) ([][]byte, error) {
	out := make([][]byte, len(txns))
	for i := range txns {
		toSign, err := txn.SignBytes(&txns[i])
		if err != nil {
			return nil, atomixerr.Wrap(err, "preparing transaction %d for signing", i)
		}

		sig := ed25519.Sign(s.priv, toSign)
		raw, err := txn.EncodeSigned(&txns[i], sig)
		if err != nil {
			return nil, atomixerr.Wrap(err, "encoding signed transaction %d", i)
		}
		out[i] = raw
	}
	return out, nil
}

// Zero erases the private key. The signer is unusable afterwards.
func (s *Signer) Zero() {
	crypto.ZeroBytes(s.priv)
}
