package entity

import "time"

// Roles recognized by the middleware.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User is a cashier or admin account. The checkout pipeline only ever sees
// the id (actor id); authentication stays at the HTTP boundary.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
