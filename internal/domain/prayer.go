package domain

import (
	"time"

	"github.com/google/uuid"
)

// PrayerRequestStatus lifecycle of a prayer request
type PrayerRequestStatus string

const (
	PrayerRequestStatusActive   PrayerRequestStatus = "active"
	PrayerRequestStatusAnswered PrayerRequestStatus = "answered"
	PrayerRequestStatusRemoved  PrayerRequestStatus = "removed"
)

// AnonymousAuthorName shown in place of the author on anonymous requests
const AnonymousAuthorName = "Anônimo"

// PrayerRequest is a community prayer request. Anonymous requests are
// redacted before leaving the service layer: author id and name are stripped.
type PrayerRequest struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	UserID      string              `json:"user_id,omitempty" db:"user_id"`
	AuthorName  string              `json:"author_name" db:"author_name"`
	Content     string              `json:"content" db:"content"`
	Category    string              `json:"category,omitempty" db:"category"`
	Anonymous   bool                `json:"anonymous" db:"anonymous"`
	PrayerCount int                 `json:"prayer_count" db:"prayer_count"`
	Status      PrayerRequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}

// CreatePrayerRequestInput body of POST /prayers
type CreatePrayerRequestInput struct {
	Content   string `json:"content" validate:"required"`
	Category  string `json:"category,omitempty"`
	Anonymous bool   `json:"anonymous"`
}

// Redacted returns a copy safe for public listing.
func (p PrayerRequest) Redacted() PrayerRequest {
	if !p.Anonymous {
		return p
	}
	p.UserID = ""
	p.AuthorName = AnonymousAuthorName
	return p
}
