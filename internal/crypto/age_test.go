package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algointent/atomix/internal/crypto"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()
	plaintext := []byte("abandon ability able about above absent absorb abstract absurd abuse access accident")

	ciphertext, err := crypto.Encrypt(plaintext, "correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := crypto.Decrypt(ciphertext, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecrypt_WrongPassword(t *testing.T) {
	t.Parallel()
	ciphertext, err := crypto.Encrypt([]byte("secret"), "right")
	require.NoError(t, err)

	_, err = crypto.Decrypt(ciphertext, "wrong")
	assert.Error(t, err)
}

func TestDecrypt_Garbage(t *testing.T) {
	t.Parallel()
	_, err := crypto.Decrypt([]byte("not an age file"), "any")
	assert.Error(t, err)
}

func TestZeroBytes(t *testing.T) {
	t.Parallel()
	b := []byte{1, 2, 3, 4}
	crypto.ZeroBytes(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}
