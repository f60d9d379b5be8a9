package history

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxTitleLength is where longer titles are cut.
	MaxTitleLength = 60
	// MaxWordLimit caps the requested length of generated content.
	MaxWordLimit = 5000
	// maxAttributeLength bounds content type, tone, audience and purpose.
	maxAttributeLength = 100
)

// ErrRecordNotFound is returned for missing records and for records that
// belong to another account.
var ErrRecordNotFound = errors.New("history record not found")

// Record is a saved piece of generated content.
type Record struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	ContentType string    `json:"content_type"`
	Tone        string    `json:"tone"`
	Audience    string    `json:"audience"`
	Purpose     string    `json:"purpose"`
	WordLimit   int       `json:"word_limit"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// Draft is the user-supplied part of a Record.
type Draft struct {
	Title       string `form:"title" json:"title"`
	ContentType string `form:"content_type" json:"content_type"`
	Tone        string `form:"tone" json:"tone"`
	Audience    string `form:"audience" json:"audience"`
	Purpose     string `form:"purpose" json:"purpose"`
	WordLimit   int    `form:"word_limit" json:"word_limit"`
	Content     string `form:"content" json:"content"`
}
