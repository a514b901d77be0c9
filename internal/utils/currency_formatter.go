package utils

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/imports"
)

// FormatAmount renders an exact decimal under the given currency-format
// selector, with thousands grouping. Re-parsing the result under the same
// selector yields the same value.
func FormatAmount(val decimal.Decimal, currencyFormat int) string {
	decimalSep, groupSep := ".", ","
	if currencyFormat == constants.CurrencyFormatComma {
		decimalSep, groupSep = ",", "."
	}
	if currencyFormat == constants.CurrencyFormatLocale {
		decimalSep, groupSep = imports.LocaleSeparators()
	}

	plain := val.String()

	neg := strings.HasPrefix(plain, "-")
	plain = strings.TrimPrefix(plain, "-")

	intPart, fracPart, hasFrac := strings.Cut(plain, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 && groupSep != "" {
			b.WriteString(groupSep)
		}
		b.WriteRune(digit)
	}
	if hasFrac {
		b.WriteString(decimalSep)
		b.WriteString(fracPart)
	}

	return b.String()
}
