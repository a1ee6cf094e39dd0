// Package notifications is the sink for operator-facing outcome messages.
// The original UI rendered them as toasts; the service renders them as
// structured log lines fed from the event bus.
package notifications

import (
	"log/slog"

	"exchange-office-backend/internal/events"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// For shapes the notice for a bus event. Workflow transitions and rate
// changes are successes; the bus carries no failure events, those die as
// HTTP errors before anything is published.
func For(ev events.Event) Notification {
	titles := map[events.Type]string{
		events.TransactionCreated:   "Transaction created",
		events.TransactionConfirmed: "Transaction confirmed",
		events.TransactionApproved:  "Transaction approved",
		events.TransactionCancelled: "Transaction cancelled",
		events.RateUpdated:          "Exchange rate updated",
		events.DataReset:            "Data reset to defaults",
	}
	title, ok := titles[ev.Type]
	if !ok {
		title = string(ev.Type)
	}
	body := ""
	if ev.EntityID != uuid.Nil {
		body = ev.EntityID.String()
	}
	return Notification{Kind: KindSuccess, Title: title, Body: body}
}

type Notifier struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify is fire-and-forget; callers never consume a return value.
func (n *Notifier) Notify(nt Notification) {
	switch nt.Kind {
	case KindError:
		n.logger.Error("notification", "title", nt.Title, "body", nt.Body)
	default:
		n.logger.Info("notification", "title", nt.Title, "body", nt.Body)
	}
}

// Watch pushes a notice for every bus event until stop is called.
func (n *Notifier) Watch(bus *events.Bus) (stop func()) {
	ch, cancel := bus.Subscribe(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			n.Notify(For(ev))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
