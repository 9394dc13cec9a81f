package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nagacare/internal/directory"
	"nagacare/internal/intent"
)

// ContactsHandler expone los contactos de emergencia y el tel: URI para el dialer.
type ContactsHandler struct {
	logger *zap.Logger
	dir    *directory.Directory
}

func NewContactsHandler(logger *zap.Logger, dir *directory.Directory) *ContactsHandler {
	return &ContactsHandler{logger: logger, dir: dir}
}

// ListContacts maneja GET /emergency-contacts.
func (h *ContactsHandler) ListContacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"contacts": h.dir.Contacts(c.Query("category"))})
}

// Dial maneja GET /emergency-contacts/:id/dial.
func (h *ContactsHandler) Dial(c *gin.Context) {
	contact, err := h.dir.Contact(c.Param("id"))
	if err != nil {
		if errors.Is(err, directory.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		h.logger.Error("get contact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get contact"})
		return
	}

	uri, err := intent.DialURI(contact.Number)
	if err != nil {
		h.logger.Error("contact has invalid number", zap.String("contact_id", contact.ID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "contact number is not dialable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"contact_id": contact.ID,
		"number":     contact.Number,
		"uri":        uri,
	})
}
