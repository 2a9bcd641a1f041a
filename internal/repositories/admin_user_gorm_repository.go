package repositories

import (
	"context"

	"vocabulary/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAdminUserRepository is a GORM implementation of AdminUserRepository.
type GORMAdminUserRepository struct {
	admins gormCollection[models.AdminUser]
}

// NewGORMAdminUserRepository creates a new instance of GORMAdminUserRepository.
func NewGORMAdminUserRepository(db *gorm.DB) *GORMAdminUserRepository {
	return &GORMAdminUserRepository{
		admins: gormCollection[models.AdminUser]{db: db, name: "admin user"},
	}
}

func (r *GORMAdminUserRepository) GetAll(ctx context.Context) ([]models.AdminUser, error) {
	return r.admins.all(ctx, "")
}

func (r *GORMAdminUserRepository) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return r.admins.first(ctx, "id = ?", id)
}

func (r *GORMAdminUserRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	return r.admins.first(ctx, "username = ?", username)
}

func (r *GORMAdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return r.admins.first(ctx, "email = ?", email)
}

func (r *GORMAdminUserRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	return r.admins.create(ctx, admin)
}

func (r *GORMAdminUserRepository) Update(ctx context.Context, admin *models.AdminUser) error {
	return r.admins.update(ctx, admin, admin.ID)
}

func (r *GORMAdminUserRepository) Delete(ctx context.Context, id string) error {
	return r.admins.delete(ctx, id)
}
