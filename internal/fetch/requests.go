package fetch

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/dawsen1208/shelfd/internal/notify"
)

type borrowRequestRecord struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	BookTitle string    `json:"book_title"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusFetcher polls borrow requests whose status changed and maps
// non-pending records to status-change candidates.
type StatusFetcher struct {
	client *Client
}

func NewStatusFetcher(client *Client) *StatusFetcher {
	return &StatusFetcher{client: client}
}

func (f *StatusFetcher) Name() string {
	return "requests"
}

func (f *StatusFetcher) Fetch(ctx context.Context, token string) ([]notify.Event, error) {
	var records []borrowRequestRecord
	query := url.Values{"changed": {"1"}}
	if err := f.client.getJSON(ctx, "/borrow-requests", query, token, &records); err != nil {
		return nil, err
	}

	events := make([]notify.Event, 0, len(records))
	for _, r := range records {
		status := notify.Status(r.Status)
		if status == notify.StatusPending || status == "" {
			continue
		}
		if r.ID == "" {
			slog.Warn("Skipping borrow request without ID", "title", r.BookTitle)
			continue
		}

		events = append(events, notify.Event{
			ID:           r.ID,
			Kind:         notify.KindStatusChange,
			Status:       status,
			SubjectTitle: r.BookTitle,
			Reason:       r.Reason,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return events, nil
}
