package models

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by a successful login or signup.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
