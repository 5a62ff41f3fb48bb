package account

// Principal is the authenticated manager behind a request.
type Principal struct {
	UserID string
	Email  string
}
