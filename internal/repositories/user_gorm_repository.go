package repositories

import (
	"context"

	"vocabulary/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	users gormCollection[models.User]
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		users: gormCollection[models.User]{db: db, name: "user"},
	}
}

// GetAll retrieves all users from the database.
func (r *GORMUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	return r.users.all(ctx, "")
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.users.first(ctx, "id = ?", id)
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.users.first(ctx, "username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.users.first(ctx, "email = ?", email)
}

// Create creates a new user in the database, assigning an ID if none is set.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.users.create(ctx, user)
}

// Update replaces the stored user with the given one.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.users.update(ctx, user, user.ID)
}

// Delete deletes a user by ID.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	return r.users.delete(ctx, id)
}
