package types

import "Margin/models"

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterResponse struct {
	User *UserItem `json:"user"`
	// 仅调试模式下返回，正式环境通过邮件下发
	ActivationCode string `json:"activation_code,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        *UserItem `json:"user"`
}

type ActivateRequest struct {
	Code string `json:"code" binding:"required"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type UserItem struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Enabled  bool   `json:"enabled"`
}

func NewUserItem(u *models.User) *UserItem {
	return &UserItem{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Enabled:  u.Enabled,
	}
}
