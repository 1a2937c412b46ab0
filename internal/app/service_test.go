package app

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/tradedesk/config"
	"github.com/guttosm/tradedesk/internal/notify"
)

func TestNewServices_WiresNotifierFromConfig(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var gotURL string
	old := notifierCtor
	notifierCtor = func(url string) notify.Notifier {
		gotURL = url
		return notify.Nop{}
	}
	t.Cleanup(func() { notifierCtor = old })

	svcs := NewServices(db, config.Config{
		Notify: config.NotifyConfig{WebhookURL: "http://hooks.local/import"},
		Import: config.ImportConfig{BatchSize: 25},
	})
	if svcs.Imports == nil || svcs.Accounts == nil {
		t.Fatalf("services not wired: %+v", svcs)
	}
	if gotURL != "http://hooks.local/import" {
		t.Fatalf("notifier url=%q", gotURL)
	}
}
