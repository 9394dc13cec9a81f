package domain

import "time"

// AssistantSession describe una conversacion abierta con el asistente.
type AssistantSession struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}
