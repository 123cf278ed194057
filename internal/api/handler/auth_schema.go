package handler

import (
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	UserType  string `json:"user_type" validate:"required,oneof=student alumni faculty recruiter"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserType:  domain.UserType(r.UserType),
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type registerResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	User      *domain.User `json:"user"`
}
