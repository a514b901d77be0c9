package model

type Account struct {
	ID          int64
	Name        string // full colon-separated path, e.g. "Assets:Bank:Checking"
	Type        string
	ParentID    *int64
	Commodity   *Commodity
	Description string
	IsHidden    bool
}
