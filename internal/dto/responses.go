package dto

import (
	"time"

	"vocabulary/internal/models"
)

// TimeLayout renders timestamps in public shapes.
const TimeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// UserResponse is the public view of a User.
type UserResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  formatTime(u.CreatedAt),
		UpdatedAt:  formatTime(u.UpdatedAt),
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = *NewUserResponse(&users[i])
	}
	return out
}

// AdminUserResponse is the public view of an AdminUser.
type AdminUserResponse struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func NewAdminUserResponse(a *models.AdminUser) *AdminUserResponse {
	if a == nil {
		return nil
	}
	return &AdminUserResponse{
		ID:         a.ID,
		Role:       string(a.Role),
		FirstName:  a.FirstName,
		MiddleName: a.MiddleName,
		LastName:   a.LastName,
		Username:   a.Username,
		Email:      a.Email,
		CreatedAt:  formatTime(a.CreatedAt),
		UpdatedAt:  formatTime(a.UpdatedAt),
	}
}

func NewAdminUserResponses(admins []models.AdminUser) []AdminUserResponse {
	out := make([]AdminUserResponse, len(admins))
	for i := range admins {
		out[i] = *NewAdminUserResponse(&admins[i])
	}
	return out
}

// VocabularyResponse is the public view of a Vocabulary entry.
type VocabularyResponse struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	Word              string `json:"word"`
	PartOfSpeech      string `json:"partOfSpeech"`
	EnglishDefinition string `json:"englishDefinition"`
	TagalogDefinition string `json:"tagalogDefinition"`
	EnglishSynonyms   string `json:"englishSynonyms"`
	TagalogSynonyms   string `json:"tagalogSynonyms"`
	EnglishAntonyms   string `json:"englishAntonyms"`
	TagalogAntonyms   string `json:"tagalogAntonyms"`
	ExampleSentence   string `json:"exampleSentence"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

func NewVocabularyResponse(v *models.Vocabulary) *VocabularyResponse {
	if v == nil {
		return nil
	}
	return &VocabularyResponse{
		ID:                v.ID,
		UserID:            v.UserID,
		Word:              v.Word,
		PartOfSpeech:      v.PartOfSpeech,
		EnglishDefinition: v.EnglishDefinition,
		TagalogDefinition: v.TagalogDefinition,
		EnglishSynonyms:   v.EnglishSynonyms,
		TagalogSynonyms:   v.TagalogSynonyms,
		EnglishAntonyms:   v.EnglishAntonyms,
		TagalogAntonyms:   v.TagalogAntonyms,
		ExampleSentence:   v.ExampleSentence,
		CreatedAt:         formatTime(v.CreatedAt),
		UpdatedAt:         formatTime(v.UpdatedAt),
	}
}

func NewVocabularyResponses(entries []models.Vocabulary) []VocabularyResponse {
	out := make([]VocabularyResponse, len(entries))
	for i := range entries {
		out[i] = *NewVocabularyResponse(&entries[i])
	}
	return out
}
