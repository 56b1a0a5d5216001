package ledger

import (
	"strings"
	"testing"

	atomixerr "github.com/algointent/atomix/pkg/errors"
)

// validAddr is ZeroAddress with a correct checksum; handy because it is
// deterministic and 58 characters.
func validAddr() string {
	return ZeroAddress
}

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"zero address", validAddr(), true},
		{"empty", "", false},
		{"too short", "ABCDEFG", false},
		{"too long", validAddr() + "A", false},
		{"lowercase", strings.ToLower(validAddr()), false},
		{"invalid char 0", strings.Repeat("0", 58), false},
		{"invalid char 1", "1" + validAddr()[1:], false},
		{"invalid char 8", "8" + validAddr()[1:], false},
		{"all A", strings.Repeat("A", 58), true},
		{"all 7", strings.Repeat("7", 58), true},
		{"whitespace", " " + validAddr()[1:], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidAddress(tt.address); got != tt.want {
				t.Errorf("IsValidAddress(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	if err := ValidateAddress(validAddr()); err != nil {
		t.Fatalf("ValidateAddress() unexpected error = %v", err)
	}

	err := ValidateAddress("")
	if err == nil {
		t.Fatal("ValidateAddress(\"\") expected error, got nil")
	}
	if !atomixerr.Is(err, atomixerr.ErrInvalidAddress) {
		t.Errorf("ValidateAddress(\"\") error = %v, want ErrInvalidAddress", err)
	}
}

func TestZeroAddress(t *testing.T) {
	if len(ZeroAddress) != AddressLen {
		t.Fatalf("ZeroAddress length = %d, want %d", len(ZeroAddress), AddressLen)
	}
	if !IsValidAddress(ZeroAddress) {
		t.Error("ZeroAddress must be format-valid")
	}
	if err := ValidateAddressChecksum(ZeroAddress); err != nil {
		t.Errorf("ZeroAddress checksum invalid: %v", err)
	}
}

func TestValidateAddressChecksum(t *testing.T) {
	// Format-valid but checksum-corrupted: flip the last character
	addr := validAddr()
	last := addr[len(addr)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	corrupted := addr[:len(addr)-1] + string(replacement)

	if err := ValidateAddressChecksum(corrupted); err == nil {
		t.Error("ValidateAddressChecksum() expected error for corrupted checksum")
	}

	// Format validation alone accepts the corrupted address
	if !IsValidAddress(corrupted) {
		t.Error("IsValidAddress() should accept a format-valid address with bad checksum")
	}
}

func TestEncodeDecodeAddressRoundTrip(t *testing.T) {
	var pk [32]byte
	for i := range pk {
		pk[i] = byte(i*7 + 3)
	}

	addr := EncodeAddress(pk)
	if len(addr) != AddressLen {
		t.Fatalf("EncodeAddress() length = %d, want %d", len(addr), AddressLen)
	}

	decoded, err := DecodeAddress(addr)
	if err != nil {
		t.Fatalf("DecodeAddress() unexpected error = %v", err)
	}
	if decoded != pk {
		t.Error("DecodeAddress() did not round-trip the public key")
	}
}
