package dto

// SignupRequest: payload for user registration
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	AdminKey string `json:"adminKey"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type UserMessageResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
