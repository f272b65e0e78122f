package dto

import "strings"

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (r *LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}
