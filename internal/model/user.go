package model

// User is an account row. APIKey holds the user's quote-provider key,
// encrypted before it reaches the database.
type User struct {
	ID       int64
	Username string
	Password string
	Email    string
	APIKey   string
}
