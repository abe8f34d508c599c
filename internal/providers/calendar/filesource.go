package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Ensure FileSource implements the interface.
var _ EventSource = (*FileSource)(nil)

// FileSource reads events from a TOML agenda file, for setups without a
// calendar daemon. A missing file means an empty agenda.
//
// File shape:
//
//	[[events]]
//	id = "standup"
//	title = "Standup"
//	start = 2026-03-02T09:15:00Z
//	end = 2026-03-02T09:30:00Z
//	url = "https://meet.example/abc"
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from the given agenda file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// agendaFile is the TOML document shape.
type agendaFile struct {
	Events []agendaEvent `toml:"events"`
}

type agendaEvent struct {
	ID    string    `toml:"id"`
	Title string    `toml:"title"`
	Start time.Time `toml:"start"`
	End   time.Time `toml:"end"`
	URL   string    `toml:"url"`
}

// Upcoming returns the file's events starting inside the window.
func (s *FileSource) Upcoming(_ context.Context, within time.Duration) ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading agenda file: %w", err)
	}

	var doc agendaFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing agenda file: %w", err)
	}

	horizon := time.Now().Add(within)
	var events []Event
	for _, ev := range doc.Events {
		if ev.Title == "" || ev.Start.After(horizon) {
			continue
		}
		id := ev.ID
		if id == "" {
			id = ev.Title
		}
		events = append(events, Event{
			ID:    id,
			Title: ev.Title,
			Start: ev.Start,
			End:   ev.End,
			URL:   ev.URL,
		})
	}
	return events, nil
}
