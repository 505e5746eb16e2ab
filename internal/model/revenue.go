package model

// Revenue is one precomputed monthly aggregate row. Read-only: no mutation
// path exists for it anywhere in the service.
type Revenue struct {
	Month   string `db:"month" json:"month"`
	Revenue int64  `db:"revenue" json:"revenue"`
}
