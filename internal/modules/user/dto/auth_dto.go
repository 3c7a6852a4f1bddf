package dto

import "mindhaven-backend/internal/entity"

type SignupInput struct {
	Name        string  `json:"name" binding:"required"`
	Surname     string  `json:"surname"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone,omitempty"`
	Password    string  `json:"password" binding:"required,min=8"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entity.User   `json:"user"`
	Wallet      *entity.Wallet `json:"wallet,omitempty"`
}

type UpdateProfileInput struct {
	Name        *string `json:"name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Location    *string `json:"location,omitempty"`
}
