package notify

import (
	"fmt"
	"time"
)

type Kind string

const (
	KindStatusChange   Kind = "status_change"
	KindReviewReminder Kind = "review_reminder"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Event is the normalized shape for all notification sources.
type Event struct {
	// ID is globally unique within its source namespace. Reminder IDs
	// carry a "review:" prefix so they can never collide with raw
	// borrow-request IDs.
	ID string `json:"id"`

	Kind         Kind   `json:"kind"`
	Status       Status `json:"status,omitempty"`
	SubjectTitle string `json:"subject_title"`
	Reason       string `json:"reason,omitempty"`

	// Title and Body are rendered once at merge time and stored, so a
	// later template change does not rewrite historical entries.
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewEventID namespaces a review reminder by book ID.
func ReviewEventID(bookID string) string {
	return "review:" + bookID
}

// derive fills Title and Body from kind and status. Called exactly once
// per event, when it is first merged.
func (e *Event) derive() {
	switch e.Kind {
	case KindReviewReminder:
		e.Title = "Review reminder"
		e.Body = fmt.Sprintf("How was %q? Leave a review.", e.SubjectTitle)
	case KindStatusChange:
		switch e.Status {
		case StatusApproved:
			e.Title = "Request approved"
			e.Body = fmt.Sprintf("Your borrow request for %q was approved.", e.SubjectTitle)
		case StatusRejected:
			e.Title = "Request rejected"
			if e.Reason != "" {
				e.Body = fmt.Sprintf("Your borrow request for %q was rejected: %s", e.SubjectTitle, e.Reason)
			} else {
				e.Body = fmt.Sprintf("Your borrow request for %q was rejected.", e.SubjectTitle)
			}
		default:
			e.Title = "Request updated"
			e.Body = fmt.Sprintf("Your borrow request for %q changed.", e.SubjectTitle)
		}
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
}
