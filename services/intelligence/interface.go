package ai

import (
	"context"

	"shopdesk/models"
)

// ChatService is the free-form conversational collaborator. The system
// preamble frames the assistant; the ordered history is replayed verbatim.
type ChatService interface {
	Complete(ctx context.Context, system string, history []models.Turn) (string, error)
}
