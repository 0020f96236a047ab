package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/kikelara/kikelara-backend-go/metrics"
	"github.com/kikelara/kikelara-backend-go/models"
	"github.com/kikelara/kikelara-backend-go/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactMessage stores a contact-form submission and, when SMTP is
// configured, emails it to the shop inbox. The email is best-effort and
// never blocks or fails the request.
func ContactMessage(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "msg": "Invalid payload"})
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "msg": "All fields required"})
	}

	now := time.Now()
	msg := models.Message{
		ID:      utils.NewID(now),
		Name:    name,
		Email:   email,
		Message: message,
		Date:    now.UTC().Format(time.RFC3339),
	}

	messages := store.Messages()
	messages = append(messages, msg)
	if err := store.WriteMessages(messages); err != nil {
		log.Error().Err(err).Msg("failed to save contact message")
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "msg": "Server error"})
	}

	metrics.ContactMessages.Inc()
	go mail.NotifyContact(msg)

	return c.JSON(http.StatusOK, map[string]any{"success": true, "msg": "Message received — we will reply soon!"})
}

// ListMessages returns the admin inbox, newest last.
func ListMessages(c echo.Context) error {
	return c.JSON(http.StatusOK, store.Messages())
}

// DeleteMessage removes a message from the inbox.
func DeleteMessage(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid id"})
	}

	messages := store.Messages()
	next := messages[:0:0]
	for _, m := range messages {
		if m.ID != id {
			next = append(next, m)
		}
	}
	if len(next) == len(messages) {
		return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "Message not found"})
	}

	if err := store.WriteMessages(next); err != nil {
		log.Error().Err(err).Int64("messageId", id).Msg("failed to delete message")
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to delete"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
