package dto

type LoginInput struct {
	Credential string `json:"credential" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type SignupInput struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=4"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

// SafeUser is a user without credentials.
type SafeUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// SessionResponse wraps the signed-in user; User is null when anonymous.
type SessionResponse struct {
	User *SafeUser `json:"user"`
}
