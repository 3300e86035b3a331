// file: model/request.go

package model

// LoginRequest defines the payload for authentication.
// It includes validation tags to ensure data integrity at the entry point.
type LoginRequest struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// RegisterRequest defines the payload for creating a new admin user.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=8"`
	UserTypeID int64  `json:"user_type_id" validate:"required,gt=0"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// LoginResponse is returned by both login and refresh. The tokens are also
// set as cookies; the body carries the access token for header-based clients.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// CurrentUserResponse is the authenticated user's own profile.
type CurrentUserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	UserTypeID  int64     `json:"user_type_id"`
	UserType    *UserType `json:"user_type,omitempty"`
	Permissions []string  `json:"permissions"`
}

// RegisterResponse carries the id of a newly created user.
type RegisterResponse struct {
	ID int64 `json:"id"`
}
