package ledger

import (
	"math/big"
	"strings"
)

// maxUint64 as a big.Int, for overflow checks.
//
//nolint:gochecknoglobals // Arithmetic constant
var maxUint64 = new(big.Int).SetUint64(^uint64(0))

// ParseDecimalAmount parses a decimal amount string into atomic units with
// the given decimal precision, flooring excess precision. For example, "2.5"
// with 6 decimals returns 2500000. String arithmetic avoids binary float
// rounding entirely.
//
//nolint:gocognit,gocyclo // Decimal parsing requires sequential validation steps
func ParseDecimalAmount(amount string, decimals int, invalidAmountErr error) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" || amount == "." {
		return 0, invalidAmountErr
	}

	// Reject negative and explicitly signed amounts
	if strings.HasPrefix(amount, "-") || strings.HasPrefix(amount, "+") {
		return 0, invalidAmountErr
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, invalidAmountErr
	}

	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if intPart == "" {
		intPart = "0"
	}
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return 0, invalidAmountErr
		}
	}
	intVal, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return 0, invalidAmountErr
	}

	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	result := new(big.Int).Mul(intVal, multiplier)

	if decPart != "" {
		for _, c := range decPart {
			if c < '0' || c > '9' {
				return 0, invalidAmountErr
			}
		}

		// Pad or floor the fractional part to the asset's precision
		for len(decPart) < decimals {
			decPart += "0"
		}
		decPart = decPart[:decimals]

		if decPart != "" {
			decVal, ok := new(big.Int).SetString(decPart, 10)
			if !ok {
				return 0, invalidAmountErr
			}
			result = result.Add(result, decVal)
		}
	}

	if result.Cmp(maxUint64) > 0 {
		return 0, invalidAmountErr
	}

	return result.Uint64(), nil
}

// FormatDecimalAmount converts atomic units to a human-readable string with
// the given decimal precision. Trailing zeros after the decimal point are
// removed. For example, 2500000 with 6 decimals returns "2.5".
func FormatDecimalAmount(amount uint64, decimals int) string {
	str := new(big.Int).SetUint64(amount).String()
	if decimals <= 0 {
		return str
	}

	for len(str) <= decimals {
		str = "0" + str
	}

	decimalPos := len(str) - decimals
	result := str[:decimalPos] + "." + str[decimalPos:]

	for len(result) > 1 && result[len(result)-1] == '0' && result[len(result)-2] != '.' {
		result = result[:len(result)-1]
	}

	return result
}
