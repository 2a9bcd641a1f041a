package dto

// CreateUserRequest is the inbound shape for registering a user.
type CreateUserRequest struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	MiddleName string `json:"middleName" validate:"max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Username   string `json:"username" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,maxbytes=72"`
	Role       string `json:"role" validate:"max=20"`
}

// CreateAdminUserRequest is the inbound shape for registering an admin user.
// Role is upper-cased before validation.
type CreateAdminUserRequest struct {
	Role       string `json:"role" validate:"required,oneof=ADMIN STAFF"`
	FirstName  string `json:"firstName" validate:"required,max=100"`
	MiddleName string `json:"middleName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Username   string `json:"username" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// CreateVocabularyRequest is the inbound shape for adding a dictionary entry.
type CreateVocabularyRequest struct {
	UserID            string `json:"userId" validate:"required"`
	Word              string `json:"word" validate:"required,max=255"`
	PartOfSpeech      string `json:"partOfSpeech" validate:"required,max=50"`
	EnglishDefinition string `json:"englishDefinition" validate:"required"`
	TagalogDefinition string `json:"tagalogDefinition" validate:"required"`
	EnglishSynonyms   string `json:"englishSynonyms" validate:"required"`
	TagalogSynonyms   string `json:"tagalogSynonyms" validate:"required"`
	EnglishAntonyms   string `json:"englishAntonyms" validate:"required"`
	TagalogAntonyms   string `json:"tagalogAntonyms" validate:"required"`
	ExampleSentence   string `json:"exampleSentence" validate:"required"`
}

// Field names accepted in update payloads, per entity kind.
var (
	UserPatchFields = []string{
		"firstName", "middleName", "lastName", "username", "email", "password", "role",
	}
	AdminUserPatchFields = []string{
		"role", "firstName", "middleName", "lastName", "username", "email", "password",
	}
	VocabularyPatchFields = []string{
		"word", "partOfSpeech",
		"englishDefinition", "tagalogDefinition",
		"englishSynonyms", "tagalogSynonyms",
		"englishAntonyms", "tagalogAntonyms",
		"exampleSentence",
	}
)
