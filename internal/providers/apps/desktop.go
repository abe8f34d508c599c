package apps

import (
	"bufio"
	"os"
	"strings"
)

// parseDesktopFile extracts the display name, exec line, and icon from a
// freedesktop .desktop entry. Hidden entries (NoDisplay/Hidden) and
// files without a name are skipped.
func parseDesktopFile(path string) (entry, bool) {
	f, err := os.Open(path)
	if err != nil {
		return entry{}, false
	}
	defer f.Close()

	e := entry{path: path}
	inDesktopEntry := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			// Only the main group matters; actions and other groups
			// repeat the same keys.
			inDesktopEntry = line == "[Desktop Entry]"
			continue
		case !inDesktopEntry:
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			if e.name == "" {
				e.name = strings.TrimSpace(value)
			}
		case "Exec":
			if e.exec == "" {
				e.exec = stripFieldCodes(strings.TrimSpace(value))
			}
		case "Icon":
			if e.icon == "" {
				e.icon = strings.TrimSpace(value)
			}
		case "NoDisplay", "Hidden":
			if strings.EqualFold(strings.TrimSpace(value), "true") {
				return entry{}, false
			}
		}
	}

	if e.name == "" {
		return entry{}, false
	}
	return e, true
}

// stripFieldCodes removes %f/%u style placeholders from an Exec line.
func stripFieldCodes(exec string) string {
	fields := strings.Fields(exec)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "%") {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
