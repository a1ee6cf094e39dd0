package handler

import (
	"io"
	"time"

	"exchange-office-backend/internal/events"

	"github.com/gin-gonic/gin"
)

const eventsKeepAlive = 30 * time.Second

type EventsHandler struct {
	bus *events.Bus
}

func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// Stream pushes bus events to the client as server-sent events. A periodic
// keep-alive comment stops proxies from timing the connection out.
func (h *EventsHandler) Stream(c *gin.Context) {
	ch, cancel := h.bus.Subscribe(32)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(eventsKeepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
