package user

// Principal is the authenticated caller attached to a request context after
// token verification.
type Principal struct {
	UserID string
	Email  string
}
