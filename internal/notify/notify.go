package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ImportEvent summarises one completed import request.
type ImportEvent struct {
	Source      string // "single" or "batch"
	Files       int
	FilesFailed int
	Imported    int
	Skipped     int
	Accounts    []string // account numbers that received new trades
}

// Notifier receives import summaries. Implementations must not block the import on failure.
type Notifier interface {
	ImportCompleted(ctx context.Context, ev ImportEvent) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) ImportCompleted(context.Context, ImportEvent) error { return nil }

// Webhook posts a Slack-compatible {"text": ...} payload to a fixed URL.
type Webhook struct {
	client *resty.Client
	url    string
}

var _ Notifier = (*Webhook)(nil)

// New returns a Webhook notifier, or Nop when url is empty.
func New(url string) Notifier {
	if strings.TrimSpace(url) == "" {
		return Nop{}
	}
	return NewWebhook(resty.New().SetTimeout(5*time.Second), url)
}

func NewWebhook(client *resty.Client, url string) *Webhook {
	return &Webhook{client: client, url: url}
}

func (w *Webhook) ImportCompleted(ctx context.Context, ev ImportEvent) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": FormatEvent(ev)}).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned %s", resp.Status())
	}
	return nil
}

// FormatEvent renders the human-readable message body.
func FormatEvent(ev ImportEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trade import (%s): %d imported, %d duplicates skipped across %d file(s)",
		ev.Source, ev.Imported, ev.Skipped, ev.Files)
	if ev.FilesFailed > 0 {
		fmt.Fprintf(&b, ", %d failed", ev.FilesFailed)
	}
	if len(ev.Accounts) > 0 {
		fmt.Fprintf(&b, ". Accounts updated: %s", strings.Join(ev.Accounts, ", "))
	}
	return b.String()
}
