package http

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dashboard"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/logger"
)

const eventsHeartbeat = 25 * time.Second

// EventsHandler pubblica via Server-Sent Events le notifiche di variazione
// dei dati dell'utente. Il client riceve un evento "refresh" e ricarica il
// riassunto; nessun payload di dominio viaggia sullo stream.
type EventsHandler struct {
	loader *dashboard.Loader
	log    *logger.Logger
}

func NewEventsHandler(loader *dashboard.Loader, log *logger.Logger) *EventsHandler {
	return &EventsHandler{loader: loader, log: log}
}

// Stream godoc
// @Summary      Stream SSE delle variazioni (evento "refresh")
// @Tags         dashboard
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Router       /api/dashboard/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	userID := GetUserID(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// Canale con buffer 1: le notifiche si coalescono, al client basta
	// sapere che qualcosa è cambiato.
	notify := make(chan struct{}, 1)
	unsubscribe := h.loader.Subscribe(func(id string) {
		if id != userID {
			return
		}
		select {
		case notify <- struct{}{}:
		default:
		}
	})

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		ticker := time.NewTicker(eventsHeartbeat)
		defer ticker.Stop()

		if err := writeSSE(w, "event: ready\ndata: {}\n\n"); err != nil {
			return
		}
		for {
			select {
			case <-notify:
				if err := writeSSE(w, "event: refresh\ndata: {}\n\n"); err != nil {
					h.log.Debug().Str("user_id", userID).Msg("client SSE disconnesso")
					return
				}
			case <-ticker.C:
				// Commento SSE come heartbeat: tiene viva la connessione
				// attraverso i proxy e fa emergere i client caduti.
				if err := writeSSE(w, ": ping\n\n"); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeSSE(w *bufio.Writer, frame string) error {
	if _, err := fmt.Fprint(w, frame); err != nil {
		return err
	}
	return w.Flush()
}
