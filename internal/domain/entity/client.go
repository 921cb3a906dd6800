package entity

// Roles de sesión.
const (
	RoleClient = "client" // comprador o vendedor registrado
	RoleStaff  = "staff"
)

// Client cliente del marketplace (comprador y vendedor usan la misma cuenta).
type Client struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}
