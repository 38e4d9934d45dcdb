package interfaces

import (
	"context"

	"github.com/mzezin/alert-bot-parser/src/models"
)

// -----------------------------------------------------------------------------
// IMessageSource interface for fetching message history pages from a remote
// messaging account. The account connection and authentication flow stay
// inside the implementation; consumers only see pages.
// -----------------------------------------------------------------------------

type IMessageSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchPage returns up to limit messages strictly older than offsetID,
	// ordered newest-first (decreasing id). offsetID 0 starts from the most
	// recent message. An empty page means the history is exhausted.
	FetchPage(ctx context.Context, offsetID int, limit int) ([]models.MRawMessage, error)
}
