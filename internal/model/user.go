package model

// User is the active identity. The email doubles as the storage partition
// key for the user's wardrobe. No credentials are stored or verified; any
// provided identity is accepted (demo-mode authentication).
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
