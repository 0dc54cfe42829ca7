package request

// SaveUserRequest is the body for POST /users. The API key, when present,
// is encrypted before it is persisted.
type SaveUserRequest struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	APIKey   string `json:"apiKey"`
}
