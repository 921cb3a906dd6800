package dto

import "github.com/renexpress/storefront-api/internal/domain/entity"

// LoginRequest credenciales del cliente.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest alta de cliente.
type RegisterRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	AgreeTerms bool   `json:"agree_terms"`
}

// ClientDTO cliente autenticado.
type ClientDTO struct {
	ID       entity.ID `json:"id"`
	Username string    `json:"username,omitempty"`
	FullName string    `json:"full_name,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// AuthResponse token de sesión y cliente.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expires_in"` // segundos
	Client    ClientDTO `json:"client"`
}
