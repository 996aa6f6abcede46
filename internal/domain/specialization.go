package domain

// Specialization represents a catalog entry of doctor specializations.
type Specialization struct {
	ID   int64
	Name string
}
