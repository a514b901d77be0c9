package constants

// Date layout for display.
const DateFormat = "2006-01-02"

// Date format selectors for imported data. The index into DateFormats is
// what gets persisted in config and passed around, so the order is fixed.
const (
	DateFormatYMD = iota
	DateFormatDMY
	DateFormatMDY
	DateFormatDM
	DateFormatMD
)

var DateFormats = []string{
	"y-m-d",
	"d-m-y",
	"m-d-y",
	"d-m",
	"m-d",
}

// Currency format selectors for imported data.
const (
	CurrencyFormatLocale = iota // separators taken from config
	CurrencyFormatPeriod        // 1,234.56
	CurrencyFormatComma         // 1.234,56
)

var CurrencyFormats = []string{
	"locale",
	"period",
	"comma",
}

// Reconcile state tokens accepted in import files. Single letters are what
// the register displays; "v" (voided) is handled at the transaction level.
const (
	RecTokenNotReconciled = "n"
	RecTokenCleared       = "c"
	RecTokenReconciled    = "y"
	RecTokenFrozen        = "f"
	RecTokenVoided        = "v"
)
