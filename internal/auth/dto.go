package auth

import "github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"

// LoginRequest captures the credentials posted by the login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest captures the registration form.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

// AuthResponse is what the backend returns from login and register.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Type         string `json:"type"`
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
}

// ParsedRole returns the role carried on the response, defaulting to customer.
func (r AuthResponse) ParsedRole() enums.Role {
	role, err := enums.ParseRole(r.Role)
	if err != nil {
		return enums.RoleCustomer
	}
	return role
}

// ProfileUpdate is the profile tab form.
type ProfileUpdate struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

// User is the profile record returned after a profile update.
type User struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Role      enums.Role `json:"role"`
}
