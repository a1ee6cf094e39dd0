package notifications_test

import (
	"testing"

	"exchange-office-backend/internal/events"
	"exchange-office-backend/internal/notifications"

	"github.com/google/uuid"
)

func TestForShapesWorkflowNotices(t *testing.T) {
	id := uuid.New()

	nt := notifications.For(events.Event{Type: events.TransactionConfirmed, EntityID: id})
	if nt.Kind != notifications.KindSuccess {
		t.Fatalf("kind = %s, want success", nt.Kind)
	}
	if nt.Title != "Transaction confirmed" {
		t.Fatalf("title = %q", nt.Title)
	}
	if nt.Body != id.String() {
		t.Fatalf("body = %q, want the entity id", nt.Body)
	}

	// Reset events carry no entity.
	nt = notifications.For(events.Event{Type: events.DataReset})
	if nt.Title != "Data reset to defaults" || nt.Body != "" {
		t.Fatalf("reset notice = %+v", nt)
	}

	// Unknown types fall back to the raw event name rather than dropping
	// the notice.
	nt = notifications.For(events.Event{Type: events.Type("vault.rebalanced")})
	if nt.Title != "vault.rebalanced" {
		t.Fatalf("fallback title = %q", nt.Title)
	}
}
