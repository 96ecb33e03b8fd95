package domain

import "time"

// Role classifies what an authenticated actor may do in the console.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleStylist  Role = "STYLIST"
	RoleCustomer Role = "CUSTOMER"
)

// User models an authenticated actor. The session replaces it wholesale on
// every refresh; it is never partially mutated in place.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Role          Role      `json:"role"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
