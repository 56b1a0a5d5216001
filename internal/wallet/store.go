package wallet

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/algointent/atomix/internal/crypto"
	"github.com/algointent/atomix/internal/fileutil"
	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// Store persists a mnemonic as an age-encrypted file. One store manages one
// key file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given key file path. A leading
// "~/" is expanded against the user's home directory.
func NewStore(path string) *Store {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return &Store{path: path}
}

// Path returns the key file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a key file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save validates and encrypts the mnemonic to the key file. An existing
// key file is never overwritten.
func (s *Store) Save(mnemonic, password string) error {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return err
	}
	if s.Exists() {
		return atomixerr.WithDetails(atomixerr.ErrWalletExists,
			map[string]string{"path": s.path})
	}

	ciphertext, err := crypto.Encrypt([]byte(NormalizeMnemonicInput(mnemonic)), password)
	if err != nil {
		return atomixerr.Wrap(err, "encrypting key file")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return fileutil.WriteAtomic(s.path, ciphertext, 0o600)
}

// Load decrypts and returns the stored mnemonic.
func (s *Store) Load(password string) (string, error) {
	// #nosec G304 -- key file path comes from validated config
	ciphertext, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", atomixerr.WithDetails(atomixerr.ErrWalletNotFound,
				map[string]string{"path": s.path})
		}
		return "", err
	}

	plaintext, err := crypto.Decrypt(ciphertext, password)
	if err != nil {
		return "", atomixerr.WithDetails(atomixerr.ErrDecryptionFailed,
			map[string]string{"path": s.path})
	}
	return string(plaintext), nil
}

// Delete removes the key file.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return atomixerr.WithDetails(atomixerr.ErrWalletNotFound,
				map[string]string{"path": s.path})
		}
		return err
	}
	return nil
}

// LoadSigner decrypts the key file and builds a signer from it.
func (s *Store) LoadSigner(password, passphrase string) (*Signer, error) {
	mnemonic, err := s.Load(password)
	if err != nil {
		return nil, err
	}
	return NewSignerFromMnemonic(mnemonic, passphrase)
}
