package calendar

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Ensure ICSSource implements the interface.
var _ EventSource = (*ICSSource)(nil)

// ICSSource reads events from an iCalendar (text/calendar) file, the
// format most calendar applications export. A missing file means an
// empty agenda.
type ICSSource struct {
	path string
}

// NewICSSource creates a source reading from the given .ics file.
func NewICSSource(path string) *ICSSource {
	return &ICSSource{path: path}
}

// Upcoming returns the file's events starting inside the window.
func (s *ICSSource) Upcoming(_ context.Context, within time.Duration) ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}

	parsed, err := parseICS(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar file: %w", err)
	}

	horizon := time.Now().Add(within)
	var events []Event
	for _, ev := range parsed {
		if ev.Title == "" || ev.Start.After(horizon) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// parseICS extracts VEVENT components from iCalendar content. Only the
// properties the launcher surfaces are read; everything else is skipped.
func parseICS(content string) ([]Event, error) {
	var (
		events  []Event
		current *Event
	)

	for _, line := range unfoldLines(content) {
		name, value, ok := splitProperty(line)
		if !ok {
			continue
		}

		switch name {
		case "BEGIN":
			if value == "VEVENT" {
				current = &Event{}
			}
		case "END":
			if value == "VEVENT" && current != nil {
				if current.ID == "" {
					current.ID = current.Title
				}
				events = append(events, *current)
				current = nil
			}
		case "UID":
			if current != nil {
				current.ID = value
			}
		case "SUMMARY":
			if current != nil {
				current.Title = unescapeText(value)
			}
		case "URL":
			if current != nil {
				current.URL = value
			}
		case "DTSTART":
			if current != nil {
				t, err := parseICSTime(value)
				if err != nil {
					return nil, err
				}
				current.Start = t
			}
		case "DTEND":
			if current != nil {
				t, err := parseICSTime(value)
				if err != nil {
					return nil, err
				}
				current.End = t
			}
		}
	}
	return events, nil
}

// unfoldLines joins folded continuation lines (RFC 5545 section 3.1):
// a line starting with a space or tab continues the previous line.
func unfoldLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var lines []string
	for _, line := range raw {
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitProperty splits "NAME;PARAM=X:value" into its name and value,
// dropping property parameters.
func splitProperty(line string) (name, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	name = line[:idx]
	value = line[idx+1:]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(strings.TrimSpace(name)), strings.TrimSpace(value), true
}

// icsTimeLayouts are tried in order. UTC-suffixed stamps are the common
// export form; floating and date-only values are read in local time.
var icsTimeLayouts = []struct {
	layout string
	utc    bool
}{
	{"20060102T150405Z", true},
	{"20060102T150405", false},
	{"20060102", false},
}

func parseICSTime(value string) (time.Time, error) {
	for _, l := range icsTimeLayouts {
		loc := time.Local
		if l.utc {
			loc = time.UTC
		}
		if t, err := time.ParseInLocation(l.layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time value %q", value)
}

// unescapeText reverses RFC 5545 text escaping.
func unescapeText(value string) string {
	replacer := strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return replacer.Replace(value)
}
