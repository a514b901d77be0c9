package imports

// PropType enumerates the column roles an import file can be mapped to.
// There should be no two columns with the same type except PropNone.
type PropType int

const (
	PropNone PropType = iota

	// Transaction level properties
	PropUniqueID
	PropDate
	PropNum
	PropDescription
	PropNotes
	PropCommodity
	PropVoidReason

	// Split level properties
	PropAction
	PropAccount
	PropAmount
	PropAmountNeg
	PropPrice
	PropMemo
	PropRecState
	PropRecDate
	PropTAction
	PropTAccount
	PropTAmount
	PropTAmountNeg
	PropTMemo
	PropTRecState
	PropTRecDate
)

// firstSplitProp marks the boundary between the two groups.
const firstSplitProp = PropAction

var propTypeNames = map[PropType]string{
	PropNone:        "None",
	PropUniqueID:    "Transaction ID",
	PropDate:        "Date",
	PropNum:         "Number",
	PropDescription: "Description",
	PropNotes:       "Notes",
	PropCommodity:   "Transaction Commodity",
	PropVoidReason:  "Void Reason",
	PropAction:      "Action",
	PropAccount:     "Account",
	PropAmount:      "Amount",
	PropAmountNeg:   "Amount (Negated)",
	PropPrice:       "Price",
	PropMemo:        "Memo",
	PropRecState:    "Reconciled",
	PropRecDate:     "Reconcile Date",
	PropTAction:     "Transfer Action",
	PropTAccount:    "Transfer Account",
	PropTAmount:     "Transfer Amount",
	PropTAmountNeg:  "Transfer Amount (Negated)",
	PropTMemo:       "Transfer Memo",
	PropTRecState:   "Transfer Reconciled",
	PropTRecDate:    "Transfer Reconcile Date",
}

func (p PropType) String() string {
	if name, ok := propTypeNames[p]; ok {
		return name
	}
	return "None"
}

// PropTypeFromName maps a display name back to its PropType. Unknown names
// map to PropNone.
func PropTypeFromName(name string) PropType {
	for prop, n := range propTypeNames {
		if n == name {
			return prop
		}
	}
	return PropNone
}

// IsTransProp reports whether the property is transaction scoped.
func (p PropType) IsTransProp() bool {
	return p > PropNone && p < firstSplitProp
}

// IsSplitProp reports whether the property is split scoped.
func (p PropType) IsSplitProp() bool {
	return p >= firstSplitProp && p <= PropTRecDate
}

// Below two lists define which properties the user *can't* select in
// two-split or multi-split mode (mostly because they don't make sense in
// that context).
var twoSplitBlacklist = []PropType{
	PropUniqueID,
}

var multiSplitBlacklist = []PropType{
	PropTAction,
	PropTAccount,
	PropTAmount,
	PropTAmountNeg,
	PropTMemo,
	PropTRecState,
	PropTRecDate,
}

// Properties that can be assigned to multiple columns at once. Their
// contributions accumulate by addition (see PreSplit.Add).
var multiColProps = []PropType{
	PropAmount,
	PropAmountNeg,
	PropTAmount,
	PropTAmountNeg,
}

// IsMultiColProp reports whether prop may be assigned to more than one column.
func IsMultiColProp(prop PropType) bool {
	for _, p := range multiColProps {
		if p == prop {
			return true
		}
	}
	return false
}

// SanitizeProp tests a property against the given import context and
// returns it unchanged if it makes sense there, or PropNone if not.
func SanitizeProp(prop PropType, multiSplit bool) PropType {
	bl := twoSplitBlacklist
	if multiSplit {
		bl = multiSplitBlacklist
	}
	for _, p := range bl {
		if p == prop {
			return PropNone
		}
	}
	return prop
}
