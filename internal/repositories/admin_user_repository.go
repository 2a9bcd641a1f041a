package repositories

import (
	"context"

	"vocabulary/internal/models"
)

// AdminUserRepository defines the interface for admin user data access.
type AdminUserRepository interface {
	GetAll(ctx context.Context) ([]models.AdminUser, error)
	GetByID(ctx context.Context, id string) (*models.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, admin *models.AdminUser) error
	Update(ctx context.Context, admin *models.AdminUser) error
	Delete(ctx context.Context, id string) error
}
