package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Kind selects the message template for a dispatch.
type Kind string

const (
	KindCollectionNotice Kind = "collection_notice"
	KindReminder         Kind = "reminder"
	KindReturnNotice     Kind = "return_notice"
)

// ParseKind maps a request value onto a known message kind.
func ParseKind(value string) (Kind, bool) {
	switch Kind(value) {
	case KindCollectionNotice, KindReminder, KindReturnNotice:
		return Kind(value), true
	}
	return "", false
}

// StatusSent is the only delivery result this system produces; there is
// no real transport behind dispatch.
const StatusSent = "Sent"

// Recipient is the identity a dispatch copies by value. Events keep no
// live link back to the license record, so later record mutation never
// rewrites dispatch history.
type Recipient struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// TemplateParams parameterizes the fixed message templates.
type TemplateParams struct {
	CollectionPoint string
	Deadline        time.Time
	ReturnDate      time.Time
	Contact         string
}

// Event is one simulated dispatch, immutable once appended.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Mobile    string    `json:"mobile"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}
