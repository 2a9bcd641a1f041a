package repositories

import (
	"context"

	"vocabulary/internal/models"
)

// MemoryVocabularyRepository is an in-memory implementation of VocabularyRepository.
type MemoryVocabularyRepository struct {
	entries *memoryCollection[models.Vocabulary]
}

// NewMemoryVocabularyRepository creates a new instance of MemoryVocabularyRepository.
func NewMemoryVocabularyRepository() *MemoryVocabularyRepository {
	return &MemoryVocabularyRepository{
		entries: newMemoryCollection("vocabulary",
			func(v *models.Vocabulary) *string { return &v.ID },
			func(v *models.Vocabulary) []string {
				return []string{"user_word:" + v.UserID + "\x00" + v.Word}
			},
		),
	}
}

func (r *MemoryVocabularyRepository) GetAll(_ context.Context) ([]models.Vocabulary, error) {
	return r.entries.filter(nil), nil
}

func (r *MemoryVocabularyRepository) GetAllByUserID(_ context.Context, userID string) ([]models.Vocabulary, error) {
	return r.entries.filter(func(v *models.Vocabulary) bool { return v.UserID == userID }), nil
}

func (r *MemoryVocabularyRepository) GetByID(_ context.Context, id string) (*models.Vocabulary, error) {
	return r.entries.get(id)
}

func (r *MemoryVocabularyRepository) GetByUserIDAndWord(_ context.Context, userID, word string) (*models.Vocabulary, error) {
	return r.entries.find(func(v *models.Vocabulary) bool {
		return v.UserID == userID && v.Word == word
	}, "for user "+userID+" and word "+word)
}

func (r *MemoryVocabularyRepository) Create(_ context.Context, vocabulary *models.Vocabulary) error {
	return r.entries.create(vocabulary)
}

func (r *MemoryVocabularyRepository) Update(_ context.Context, vocabulary *models.Vocabulary) error {
	return r.entries.update(vocabulary)
}

func (r *MemoryVocabularyRepository) Delete(_ context.Context, id string) error {
	return r.entries.delete(id)
}
