package repositories

import (
	"context"

	"vocabulary/internal/models"
)

// VocabularyRepository defines the interface for vocabulary data access.
type VocabularyRepository interface {
	GetAll(ctx context.Context) ([]models.Vocabulary, error)
	GetAllByUserID(ctx context.Context, userID string) ([]models.Vocabulary, error)
	GetByID(ctx context.Context, id string) (*models.Vocabulary, error)
	GetByUserIDAndWord(ctx context.Context, userID, word string) (*models.Vocabulary, error)
	Create(ctx context.Context, vocabulary *models.Vocabulary) error
	Update(ctx context.Context, vocabulary *models.Vocabulary) error
	Delete(ctx context.Context, id string) error
}
