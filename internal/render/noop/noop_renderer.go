package noop

import (
	"context"
	"fmt"
	"log"

	"budgetflow/internal/port"
)

type noopRenderer struct{}

// NewRenderer creates a DocumentRenderer that emits a placeholder PDF.
// Useful for local development without a LibreOffice install.
func NewRenderer() port.DocumentRenderer {
	return &noopRenderer{}
}

func (r *noopRenderer) RenderPDF(_ context.Context, sourceName string, source []byte) ([]byte, error) {
	log.Printf("[NOOP RENDER] would convert %s (%d bytes) to PDF", sourceName, len(source))
	pdf := fmt.Sprintf("%%PDF-1.4\n%% placeholder render of %s\n%%%%EOF\n", sourceName)
	return []byte(pdf), nil
}
