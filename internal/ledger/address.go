package ledger

import (
	"crypto/sha512"
	"encoding/base32"

	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// base32Encoding is the unpadded RFC 4648 encoding used for addresses.
//
//nolint:gochecknoglobals // Protocol constant
var base32Encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ZeroAddress is the reserved null account identifier: 32 zero bytes plus
// checksum. Asset opt-outs close to this address; anything sent there is
// irrecoverable.
//
//nolint:gochecknoglobals // Protocol constant, computed once
var ZeroAddress = EncodeAddress([publicKeyLen]byte{})

// IsValidAddress checks if the address has the canonical account format:
// exactly 58 characters from the base32 alphabet A-Z2-7. It does not verify
// the checksum; use ValidateAddressChecksum for that.
func IsValidAddress(address string) bool {
	if len(address) != AddressLen {
		return false
	}
	for _, c := range address {
		if !isBase32Char(c) {
			return false
		}
	}
	return true
}

// ValidateAddress returns a structured error if the address format is invalid.
func ValidateAddress(address string) error {
	if address == "" {
		return atomixerr.WithDetails(atomixerr.ErrInvalidAddress, map[string]string{
			"reason": "empty address",
		})
	}
	if !IsValidAddress(address) {
		return atomixerr.WithDetails(atomixerr.ErrInvalidAddress, map[string]string{
			"address": address,
		})
	}
	return nil
}

// ValidateAddressChecksum verifies that the trailing 4 bytes equal the
// checksum of the public key. Format validation alone accepts addresses with
// a corrupted checksum; callers wanting full verification use this.
func ValidateAddressChecksum(address string) error {
	if err := ValidateAddress(address); err != nil {
		return err
	}

	decoded, err := base32Encoding.DecodeString(address)
	if err != nil || len(decoded) != publicKeyLen+checksumLen {
		return atomixerr.WithDetails(atomixerr.ErrInvalidAddress, map[string]string{
			"address": address,
			"reason":  "undecodable",
		})
	}

	var pk [publicKeyLen]byte
	copy(pk[:], decoded[:publicKeyLen])
	sum := addressChecksum(pk)
	for i := 0; i < checksumLen; i++ {
		if decoded[publicKeyLen+i] != sum[i] {
			return atomixerr.WithDetails(atomixerr.ErrInvalidAddress, map[string]string{
				"address": address,
				"reason":  "checksum mismatch",
			})
		}
	}
	return nil
}

// EncodeAddress converts a 32-byte public key to its base32 address form.
func EncodeAddress(pk [publicKeyLen]byte) string {
	sum := addressChecksum(pk)
	buf := make([]byte, 0, publicKeyLen+checksumLen)
	buf = append(buf, pk[:]...)
	buf = append(buf, sum[:]...)
	return base32Encoding.EncodeToString(buf)
}

// DecodeAddress converts a base32 address to its 32-byte public key,
// verifying the checksum.
func DecodeAddress(address string) ([publicKeyLen]byte, error) {
	var pk [publicKeyLen]byte
	if err := ValidateAddressChecksum(address); err != nil {
		return pk, err
	}
	decoded, err := base32Encoding.DecodeString(address)
	if err != nil {
		return pk, atomixerr.WithDetails(atomixerr.ErrInvalidAddress, map[string]string{
			"address": address,
		})
	}
	copy(pk[:], decoded[:publicKeyLen])
	return pk, nil
}

// addressChecksum computes the 4-byte checksum: the last 4 bytes of the
// SHA-512/256 digest of the public key.
func addressChecksum(pk [publicKeyLen]byte) [checksumLen]byte {
	digest := sha512.Sum512_256(pk[:])
	var sum [checksumLen]byte
	copy(sum[:], digest[len(digest)-checksumLen:])
	return sum
}

// isBase32Char returns true if c is in the RFC 4648 base32 alphabet.
func isBase32Char(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7')
}
