package ledger

// User is an account holder loaded from the profile file. The PIN is an
// opaque credential compared by exact match.
type User struct {
	ID    int
	Name  string
	PIN   string
	Admin bool
}
