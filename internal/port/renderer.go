package port

import "context"

// DocumentRenderer converts a source spreadsheet into a printable PDF for
// the signing step. Rendering is slow and external; callers bound it with a
// context deadline and must treat failure as "transition did not complete",
// never as a crash.
type DocumentRenderer interface {
	RenderPDF(ctx context.Context, sourceName string, source []byte) ([]byte, error)
}
