package exec

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// Ensure Clipboard implements the interface.
var _ driven.ClipboardWriter = (*Clipboard)(nil)

// Clipboard writes to the system clipboard.
type Clipboard struct{}

// NewClipboard creates a system clipboard writer.
func NewClipboard() *Clipboard { return &Clipboard{} }

// Write replaces the clipboard contents with text.
func (c *Clipboard) Write(_ context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
