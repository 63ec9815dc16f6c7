// Package transport defines the request and response DTOs for the auth
// module.
package transport

// RegisterRequest is the body for POST /users.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Provider bool   `json:"provider"`
}

// SessionRequest is the body for POST /sessions.
type SessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the body for PUT /users. Password changes require the
// current password.
type UpdateUserRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	OldPassword string `json:"oldPassword,omitempty"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=6,required_with=OldPassword"`
	AvatarID    *int64 `json:"avatarId,omitempty"`
}

// AvatarResponse is the embedded avatar file reference.
type AvatarResponse struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Provider bool            `json:"provider"`
	Avatar   *AvatarResponse `json:"avatar,omitempty"`
}

// SessionResponse is the body returned by POST /sessions.
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
