package models

import "time"

// Vocabulary is a bilingual (English/Tagalog) dictionary entry owned by a
// user. A user may register a given word only once.
type Vocabulary struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_vocabularies_user_word"`
	Word              string    `json:"word" gorm:"type:varchar(255);not null;uniqueIndex:idx_vocabularies_user_word"`
	PartOfSpeech      string    `json:"partOfSpeech" gorm:"type:varchar(50)"`
	EnglishDefinition string    `json:"englishDefinition" gorm:"type:text"`
	TagalogDefinition string    `json:"tagalogDefinition" gorm:"type:text"`
	EnglishSynonyms   string    `json:"englishSynonyms" gorm:"type:text"`
	TagalogSynonyms   string    `json:"tagalogSynonyms" gorm:"type:text"`
	EnglishAntonyms   string    `json:"englishAntonyms" gorm:"type:text"`
	TagalogAntonyms   string    `json:"tagalogAntonyms" gorm:"type:text"`
	ExampleSentence   string    `json:"exampleSentence" gorm:"type:text"`
	CreatedAt         time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}
