package imports

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/model"
)

// Separators used by the Locale currency format. Overridden from config at
// startup; the defaults match the period-decimal convention.
var (
	localeDecimalSep = "."
	localeGroupSep   = ","
)

// SetLocaleSeparators configures the separators the Locale currency format
// parses and formats with.
func SetLocaleSeparators(decimalSep, groupSep string) {
	if decimalSep != "" {
		localeDecimalSep = decimalSep
	}
	localeGroupSep = groupSep
}

// LocaleSeparators returns the separators the Locale currency format
// currently uses.
func LocaleSeparators() (decimalSep, groupSep string) {
	return localeDecimalSep, localeGroupSep
}

// currencySeparators resolves a currency-format selector to its decimal and
// grouping separators.
func currencySeparators(currencyFormat int) (decimalSep, groupSep string) {
	switch currencyFormat {
	case constants.CurrencyFormatPeriod:
		return ".", ","
	case constants.CurrencyFormatComma:
		return ",", "."
	default:
		return localeDecimalSep, localeGroupSep
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// validGrouping checks that every occurrence of the group separator sits
// between a digit and a full three-digit group. A separator anywhere else
// means the field uses the other convention's decimal point, so stripping
// it would shift the value by orders of magnitude.
func validGrouping(s, groupSep string) bool {
	for {
		i := strings.Index(s, groupSep)
		if i < 0 {
			return true
		}
		if i == 0 || !isDigit(s[i-1]) {
			return false
		}
		s = s[i+len(groupSep):]
		if len(s) < 3 || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[2]) {
			return false
		}
		if len(s) > 3 && isDigit(s[3]) {
			return false
		}
	}
}

// ParseMonetary converts str into an exact decimal using the chosen import
// currency format. An empty field is treated as zero; a field containing no
// digits at all is invalid. Unicode currency symbols are stripped before
// parsing.
func ParseMonetary(str string, currencyFormat int) (decimal.Decimal, error) {
	if str == "" {
		return decimal.Zero, nil
	}

	if !strings.ContainsFunc(str, unicode.IsDigit) {
		return decimal.Zero, ErrMalformedNumber
	}

	var b strings.Builder
	for _, r := range str {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()

	decimalSep, groupSep := currencySeparators(currencyFormat)
	if groupSep != "" {
		if !validGrouping(cleaned, groupSep) {
			return decimal.Zero, fmt.Errorf("%w (unexpected separator)", ErrMalformedNumber)
		}
		cleaned = strings.ReplaceAll(cleaned, groupSep, "")
	}
	if decimalSep != "." {
		if strings.Contains(cleaned, ".") {
			return decimal.Zero, fmt.Errorf("%w (unexpected separator)", ErrMalformedNumber)
		}
		cleaned = strings.ReplaceAll(cleaned, decimalSep, ".")
	}
	cleaned = strings.TrimPrefix(cleaned, "+")

	val, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w (%q)", ErrMalformedNumber, str)
	}
	return val, nil
}

// ParseDate converts str into a date using one of the supported date-format
// selectors (see constants.DateFormats). Any of "-", "/", "." or "'" works
// as a field separator; two-digit years pivot at 70. The formats without a
// year default to the current year.
func ParseDate(str string, dateFormat int) (time.Time, error) {
	if dateFormat < 0 || dateFormat >= len(constants.DateFormats) {
		return time.Time{}, fmt.Errorf("%w (unknown date format %d)", ErrMalformedDate, dateFormat)
	}

	fields := strings.FieldsFunc(str, func(r rune) bool {
		switch r {
		case '-', '/', '.', '\'', ' ':
			return true
		}
		return false
	})

	pattern := strings.Split(constants.DateFormats[dateFormat], "-")
	if len(fields) != len(pattern) {
		return time.Time{}, fmt.Errorf("%w (%q)", ErrMalformedDate, str)
	}

	year, month, day := time.Now().Year(), 0, 0
	haveYear := false
	for i, part := range pattern {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w (%q)", ErrMalformedDate, str)
		}
		switch part {
		case "y":
			year = n
			haveYear = true
		case "m":
			month = n
		case "d":
			day = n
		}
	}

	if haveYear && year < 100 {
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w (%q)", ErrMalformedDate, str)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) {
		// time.Date normalizes out-of-range days (Feb 30 -> Mar 2)
		return time.Time{}, fmt.Errorf("%w (%q)", ErrMalformedDate, str)
	}
	return date, nil
}

// ParseReconciled maps a reconcile-state token to a RecState. A voided
// token maps to not-reconciled; voiding is handled at the transaction
// level, not here.
func ParseReconciled(token string) (model.RecState, error) {
	switch token {
	case constants.RecTokenNotReconciled:
		return model.RecNotReconciled, nil
	case constants.RecTokenCleared:
		return model.RecCleared, nil
	case constants.RecTokenReconciled:
		return model.RecReconciled, nil
	case constants.RecTokenFrozen:
		return model.RecFrozen, nil
	case constants.RecTokenVoided:
		return model.RecNotReconciled, nil
	default:
		return model.RecNotReconciled, fmt.Errorf("%w (%q)", ErrMalformedEnum, token)
	}
}

// ParseCommodity resolves a commodity field. An empty field means no
// commodity. Resolution tries the table-wide unique name first, then the
// mnemonic within the currency namespace, then the mnemonic within every
// other namespace in table order.
func ParseCommodity(str string, table CommodityTable) (*model.Commodity, error) {
	if str == "" {
		return nil, nil
	}

	if comm := table.LookupUnique(str); comm != nil {
		return comm, nil
	}
	if comm := table.Lookup(model.NamespaceCurrency, str); comm != nil {
		return comm, nil
	}
	for _, ns := range table.Namespaces() {
		if ns == model.NamespaceCurrency {
			continue
		}
		if comm := table.Lookup(ns, str); comm != nil {
			return comm, nil
		}
	}
	return nil, fmt.Errorf("%w (commodity %q)", ErrUnresolvableReference, str)
}
