package repositories

import (
	"context"

	"vocabulary/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users *memoryCollection[models.User]
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: newMemoryCollection("user",
			func(u *models.User) *string { return &u.ID },
			func(u *models.User) []string {
				return []string{"username:" + u.Username, "email:" + u.Email}
			},
		),
	}
}

func (r *MemoryUserRepository) GetAll(_ context.Context) ([]models.User, error) {
	return r.users.filter(nil), nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.users.get(id)
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.users.find(func(u *models.User) bool { return u.Username == username }, "username "+username)
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.users.find(func(u *models.User) bool { return u.Email == email }, "email "+email)
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	return r.users.create(user)
}

func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	return r.users.update(user)
}

func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	return r.users.delete(id)
}
