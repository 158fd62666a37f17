package models

// User represents a registered user as persisted in the users collection.
// PasswordHash is the hex SHA-256 digest of the plaintext; the plaintext is
// never stored. Token is null until the first successful login and is
// overwritten on each subsequent login, so only the latest token resolves.
type User struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"passwordHash"`
	Token        *string `json:"token"`
}

// RegisterRequest represents the POST /register body. All fields required.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // Plaintext; hashed in the service
}

// LoginRequest represents the POST /login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the POST /login success body.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
}
