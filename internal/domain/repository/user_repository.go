package repository

import "github.com/rkpatel33/pos-api/internal/domain/entity"

// UserRepository persists cashier/admin accounts for the session provider.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
