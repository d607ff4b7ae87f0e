package fetch

import (
	"context"
	"time"

	"github.com/dawsen1208/shelfd/internal/notify"
)

type reviewReminderRecord struct {
	BookID     string    `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	Reviewed   bool      `json:"reviewed"`
	ReturnedAt time.Time `json:"returned_at"`
}

// ReviewFetcher polls returned-but-unreviewed books and maps them to
// reminder candidates. Reminder IDs are namespaced by book so they can
// never collide with borrow-request IDs.
type ReviewFetcher struct {
	client *Client

	// LeadDays suppresses reminders for books returned less than this
	// many days ago. 0 means remind immediately.
	LeadDays func() int
}

func NewReviewFetcher(client *Client, leadDays func() int) *ReviewFetcher {
	if leadDays == nil {
		leadDays = func() int { return 0 }
	}
	return &ReviewFetcher{client: client, LeadDays: leadDays}
}

func (f *ReviewFetcher) Name() string {
	return "reviews"
}

func (f *ReviewFetcher) Fetch(ctx context.Context, token string) ([]notify.Event, error) {
	var records []reviewReminderRecord
	if err := f.client.getJSON(ctx, "/review-reminders", nil, token, &records); err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -f.LeadDays())

	events := make([]notify.Event, 0, len(records))
	for _, r := range records {
		if r.Reviewed || r.BookID == "" {
			continue
		}
		if !r.ReturnedAt.IsZero() && r.ReturnedAt.After(cutoff) {
			continue
		}

		events = append(events, notify.Event{
			ID:           notify.ReviewEventID(r.BookID),
			Kind:         notify.KindReviewReminder,
			SubjectTitle: r.BookTitle,
			CreatedAt:    r.ReturnedAt,
		})
	}
	return events, nil
}
