package domain

// Category groups transactions of a single type. Categories form an
// owner-scoped tree through ParentID; the chain must stay acyclic.
type Category struct {
	ID       string
	OwnerID  string
	Name     string
	Type     EntryType
	ParentID string
}
