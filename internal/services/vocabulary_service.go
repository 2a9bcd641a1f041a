package services

import (
	"context"
	"errors"
	"fmt"

	"vocabulary/internal/dto"
	"vocabulary/internal/models"
	"vocabulary/internal/repositories"
	"vocabulary/internal/validation"
)

var vocabularyPatchRules = []validation.FieldRule{
	{Field: "word", Rule: "required,max=255"},
	{Field: "partOfSpeech", Rule: "required,max=50"},
	{Field: "englishDefinition", Rule: "required"},
	{Field: "tagalogDefinition", Rule: "required"},
	{Field: "englishSynonyms", Rule: "required"},
	{Field: "tagalogSynonyms", Rule: "required"},
	{Field: "englishAntonyms", Rule: "required"},
	{Field: "tagalogAntonyms", Rule: "required"},
	{Field: "exampleSentence", Rule: "required"},
}

// VocabularyService handles business logic related to dictionary entries.
// Every entry belongs to an existing user.
type VocabularyService struct {
	repo  repositories.VocabularyRepository
	users repositories.UserRepository
	deps  Deps
}

// NewVocabularyService creates a new VocabularyService. users is consulted
// to check that an entry's owner exists.
func NewVocabularyService(repo repositories.VocabularyRepository, users repositories.UserRepository, deps Deps) *VocabularyService {
	return &VocabularyService{
		repo:  repo,
		users: users,
		deps:  deps.withDefaults(),
	}
}

func (s *VocabularyService) GetAllVocabularies(ctx context.Context) ([]models.Vocabulary, error) {
	return s.repo.GetAll(ctx)
}

// GetVocabulariesByUserID lists the entries owned by userID.
func (s *VocabularyService) GetVocabulariesByUserID(ctx context.Context, userID string) ([]models.Vocabulary, error) {
	return s.repo.GetAllByUserID(ctx, userID)
}

func (s *VocabularyService) GetVocabularyByID(ctx context.Context, id string) (*models.Vocabulary, error) {
	return optional(s.repo.GetByID(ctx, id))
}

// GetVocabularyByUserIDAndWord returns the user's entry for word, or nil.
func (s *VocabularyService) GetVocabularyByUserIDAndWord(ctx context.Context, userID, word string) (*models.Vocabulary, error) {
	return optional(s.repo.GetByUserIDAndWord(ctx, userID, word))
}

// CreateVocabulary validates req, rejects a word the user already has and
// checks that the owning user exists before storing the entry.
func (s *VocabularyService) CreateVocabulary(ctx context.Context, req dto.CreateVocabularyRequest) (*models.Vocabulary, error) {
	if violations := s.deps.Validator.Struct(req); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	release, err := s.deps.claim(ctx, "Vocabulary", []uniqueKey{wordKey(req.UserID, req.Word)})
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.checkUnique(ctx, "", req.UserID, req.Word); err != nil {
		return nil, err
	}

	owner, err := optional(s.users.GetByID(ctx, req.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", req.UserID, err)
	}
	if owner == nil {
		return nil, &NotFoundError{Entity: "user", Key: "userId", ID: req.UserID}
	}

	now := s.deps.now()
	entry := &models.Vocabulary{
		UserID:            req.UserID,
		Word:              req.Word,
		PartOfSpeech:      req.PartOfSpeech,
		EnglishDefinition: req.EnglishDefinition,
		TagalogDefinition: req.TagalogDefinition,
		EnglishSynonyms:   req.EnglishSynonyms,
		TagalogSynonyms:   req.TagalogSynonyms,
		EnglishAntonyms:   req.EnglishAntonyms,
		TagalogAntonyms:   req.TagalogAntonyms,
		ExampleSentence:   req.ExampleSentence,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, s.storeError("create", entry.ID, err)
	}

	s.deps.publish("vocabulary.created", entry.ID)
	return entry, nil
}

// UpdateVocabulary merges the supplied fields onto the stored entry. The
// owner cannot be changed.
func (s *VocabularyService) UpdateVocabulary(ctx context.Context, id string, patch dto.Patch) (*models.Vocabulary, error) {
	if violations := s.deps.Validator.Fields(patch, vocabularyPatchRules); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	entry, err := s.GetVocabularyByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary %s: %w", id, err)
	}
	if entry == nil {
		return nil, &NotFoundError{Entity: "vocabulary", Key: "vocabularyId", ID: id}
	}

	var keys []uniqueKey
	var word string
	if v, ok := patch.Get("word"); ok && v != entry.Word {
		word = v
		keys = append(keys, wordKey(entry.UserID, v))
	}
	release, err := s.deps.claim(ctx, "Vocabulary", keys)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.checkUnique(ctx, entry.ID, entry.UserID, word); err != nil {
		return nil, err
	}

	patch.Apply("word", &entry.Word)
	patch.Apply("partOfSpeech", &entry.PartOfSpeech)
	patch.Apply("englishDefinition", &entry.EnglishDefinition)
	patch.Apply("tagalogDefinition", &entry.TagalogDefinition)
	patch.Apply("englishSynonyms", &entry.EnglishSynonyms)
	patch.Apply("tagalogSynonyms", &entry.TagalogSynonyms)
	patch.Apply("englishAntonyms", &entry.EnglishAntonyms)
	patch.Apply("tagalogAntonyms", &entry.TagalogAntonyms)
	patch.Apply("exampleSentence", &entry.ExampleSentence)
	entry.UpdatedAt = s.deps.stamp(entry.UpdatedAt)

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, s.storeError("update", id, err)
	}

	s.deps.publish("vocabulary.updated", entry.ID)
	return entry, nil
}

// DeleteVocabulary removes the entry and returns it as it was before
// deletion.
func (s *VocabularyService) DeleteVocabulary(ctx context.Context, id string) (*models.Vocabulary, error) {
	entry, err := s.GetVocabularyByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary %s: %w", id, err)
	}
	if entry == nil {
		return nil, &NotFoundError{Entity: "vocabulary", Key: "vocabularyId", ID: id}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, s.storeError("delete", id, err)
	}

	s.deps.publish("vocabulary.deleted", id)
	return entry, nil
}

func wordKey(userID, word string) uniqueKey {
	return uniqueKey{field: "word", value: word, claim: "vocabulary:user_word:" + userID + ":" + word}
}

func (s *VocabularyService) checkUnique(ctx context.Context, selfID, userID, word string) error {
	if word == "" {
		return nil
	}
	existing, err := s.GetVocabularyByUserIDAndWord(ctx, userID, word)
	if err != nil {
		return fmt.Errorf("failed to check word: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return &ConflictError{Entity: "Vocabulary", Field: "word", Value: word}
	}
	return nil
}

func (s *VocabularyService) storeError(op, id string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return &ConflictError{Entity: "Vocabulary", Field: "word"}
	case errors.Is(err, repositories.ErrNotFound):
		return &NotFoundError{Entity: "vocabulary", Key: "vocabularyId", ID: id}
	}
	return fmt.Errorf("failed to %s vocabulary: %w", op, err)
}
