package repositories

import (
	"context"

	"vocabulary/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVocabularyRepository is a GORM implementation of VocabularyRepository.
// The (user_id, word) pair is backed by a composite unique index.
type GORMVocabularyRepository struct {
	entries gormCollection[models.Vocabulary]
}

// NewGORMVocabularyRepository creates a new instance of GORMVocabularyRepository.
func NewGORMVocabularyRepository(db *gorm.DB) *GORMVocabularyRepository {
	return &GORMVocabularyRepository{
		entries: gormCollection[models.Vocabulary]{db: db, name: "vocabulary"},
	}
}

// GetAll retrieves every vocabulary entry.
func (r *GORMVocabularyRepository) GetAll(ctx context.Context) ([]models.Vocabulary, error) {
	return r.entries.all(ctx, "")
}

// GetAllByUserID retrieves the entries owned by a user.
func (r *GORMVocabularyRepository) GetAllByUserID(ctx context.Context, userID string) ([]models.Vocabulary, error) {
	return r.entries.all(ctx, "user_id = ?", userID)
}

// GetByID retrieves a single entry by its ID.
func (r *GORMVocabularyRepository) GetByID(ctx context.Context, id string) (*models.Vocabulary, error) {
	return r.entries.first(ctx, "id = ?", id)
}

// GetByUserIDAndWord retrieves a user's entry for word.
func (r *GORMVocabularyRepository) GetByUserIDAndWord(ctx context.Context, userID, word string) (*models.Vocabulary, error) {
	return r.entries.first(ctx, "user_id = ? AND word = ?", userID, word)
}

// Create creates a new entry, assigning an ID if none is set.
func (r *GORMVocabularyRepository) Create(ctx context.Context, vocabulary *models.Vocabulary) error {
	if vocabulary.ID == "" {
		vocabulary.ID = uuid.New().String()
	}
	return r.entries.create(ctx, vocabulary)
}

// Update replaces the stored entry with the given one.
func (r *GORMVocabularyRepository) Update(ctx context.Context, vocabulary *models.Vocabulary) error {
	return r.entries.update(ctx, vocabulary, vocabulary.ID)
}

// Delete deletes an entry by ID.
func (r *GORMVocabularyRepository) Delete(ctx context.Context, id string) error {
	return r.entries.delete(ctx, id)
}
