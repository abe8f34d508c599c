package exec

import (
	"context"
	"fmt"
	osexec "os/exec"
	"runtime"

	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// Ensure SystemOpener implements the interfaces.
var (
	_ driven.AppLauncher = (*SystemOpener)(nil)
	_ driven.Opener      = (*SystemOpener)(nil)
	_ driven.PanelOpener = (*SystemOpener)(nil)
)

// SystemOpener launches applications and opens files, URLs and settings
// panels through the platform's handlers.
type SystemOpener struct {
	goos string
}

// NewSystemOpener creates an opener for the current platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS}
}

// Launch starts the application described by path. On Linux path is a
// .desktop file launched via gio; on macOS it is an application bundle.
func (o *SystemOpener) Launch(ctx context.Context, path string) error {
	var cmd *osexec.Cmd
	switch o.goos {
	case "darwin":
		cmd = osexec.CommandContext(ctx, "open", "-a", path)
	case "windows":
		cmd = osexec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	default:
		cmd = osexec.CommandContext(ctx, "gio", "launch", path)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("launching %s: %w", path, err)
	}
	return nil
}

// OpenFile opens the file with the default handler for its type.
func (o *SystemOpener) OpenFile(ctx context.Context, path string) error {
	if err := o.open(ctx, path); err != nil {
		return fmt.Errorf("opening file %s: %w", path, err)
	}
	return nil
}

// OpenURL opens the URL in the default browser.
func (o *SystemOpener) OpenURL(ctx context.Context, url string) error {
	if err := o.open(ctx, url); err != nil {
		return fmt.Errorf("opening url %s: %w", url, err)
	}
	return nil
}

// OpenPanel opens the named system settings panel.
func (o *SystemOpener) OpenPanel(ctx context.Context, name string) error {
	var cmd *osexec.Cmd
	switch o.goos {
	case "darwin":
		cmd = osexec.CommandContext(ctx, "open",
			"x-apple.systempreferences:com.apple.preference."+name)
	case "windows":
		cmd = osexec.CommandContext(ctx, "cmd", "/c", "start", "", "ms-settings:"+name)
	default:
		cmd = osexec.CommandContext(ctx, "gnome-control-center", name)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("opening panel %s: %w", name, err)
	}
	return nil
}

// open invokes the platform's generic open handler.
func (o *SystemOpener) open(ctx context.Context, target string) error {
	var cmd *osexec.Cmd
	switch o.goos {
	case "darwin":
		cmd = osexec.CommandContext(ctx, "open", target)
	case "windows":
		cmd = osexec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = osexec.CommandContext(ctx, "xdg-open", target)
	}
	return cmd.Run()
}
