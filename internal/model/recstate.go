package model

// RecState is a split's reconciliation state, stored as the single-letter
// code the register uses.
type RecState byte

const (
	RecNotReconciled RecState = 'n'
	RecCleared       RecState = 'c'
	RecReconciled    RecState = 'y'
	RecFrozen        RecState = 'f'
	RecVoided        RecState = 'v'
)

func (r RecState) String() string {
	return string(byte(r))
}
