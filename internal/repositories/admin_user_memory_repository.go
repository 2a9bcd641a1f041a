package repositories

import (
	"context"

	"vocabulary/internal/models"
)

// MemoryAdminUserRepository is an in-memory implementation of AdminUserRepository.
type MemoryAdminUserRepository struct {
	admins *memoryCollection[models.AdminUser]
}

// NewMemoryAdminUserRepository creates a new instance of MemoryAdminUserRepository.
func NewMemoryAdminUserRepository() *MemoryAdminUserRepository {
	return &MemoryAdminUserRepository{
		admins: newMemoryCollection("admin user",
			func(a *models.AdminUser) *string { return &a.ID },
			func(a *models.AdminUser) []string {
				return []string{"username:" + a.Username, "email:" + a.Email}
			},
		),
	}
}

func (r *MemoryAdminUserRepository) GetAll(_ context.Context) ([]models.AdminUser, error) {
	return r.admins.filter(nil), nil
}

func (r *MemoryAdminUserRepository) GetByID(_ context.Context, id string) (*models.AdminUser, error) {
	return r.admins.get(id)
}

func (r *MemoryAdminUserRepository) GetByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	return r.admins.find(func(a *models.AdminUser) bool { return a.Username == username }, "username "+username)
}

func (r *MemoryAdminUserRepository) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	return r.admins.find(func(a *models.AdminUser) bool { return a.Email == email }, "email "+email)
}

func (r *MemoryAdminUserRepository) Create(_ context.Context, admin *models.AdminUser) error {
	return r.admins.create(admin)
}

func (r *MemoryAdminUserRepository) Update(_ context.Context, admin *models.AdminUser) error {
	return r.admins.update(admin)
}

func (r *MemoryAdminUserRepository) Delete(_ context.Context, id string) error {
	return r.admins.delete(id)
}
