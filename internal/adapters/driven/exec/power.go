package exec

import (
	"context"
	"fmt"
	osexec "os/exec"
	"os/user"
	"runtime"

	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// Ensure Power implements the interface.
var _ driven.PowerController = (*Power)(nil)

// Power executes power and session actions through platform commands.
// On Linux it uses systemd's logind and the desktop session tools.
type Power struct {
	goos string
}

// NewPower creates a power controller for the current platform.
func NewPower() *Power {
	return &Power{goos: runtime.GOOS}
}

// EmptyTrash permanently deletes trashed files.
func (p *Power) EmptyTrash(ctx context.Context) error {
	switch p.goos {
	case "darwin":
		return p.run(ctx, "osascript", "-e", `tell application "Finder" to empty trash`)
	default:
		return p.run(ctx, "gio", "trash", "--empty")
	}
}

// Sleep suspends the machine.
func (p *Power) Sleep(ctx context.Context) error {
	switch p.goos {
	case "darwin":
		return p.run(ctx, "pmset", "sleepnow")
	default:
		return p.run(ctx, "systemctl", "suspend")
	}
}

// LockScreen locks the current session.
func (p *Power) LockScreen(ctx context.Context) error {
	switch p.goos {
	case "darwin":
		return p.run(ctx, "pmset", "displaysleepnow")
	default:
		return p.run(ctx, "loginctl", "lock-session")
	}
}

// LogOut ends the current session.
func (p *Power) LogOut(ctx context.Context) error {
	switch p.goos {
	case "darwin":
		return p.run(ctx, "osascript", "-e", `tell application "System Events" to log out`)
	default:
		u, err := user.Current()
		if err != nil {
			return fmt.Errorf("resolving current user: %w", err)
		}
		return p.run(ctx, "loginctl", "terminate-user", u.Username)
	}
}

// Restart reboots the machine.
func (p *Power) Restart(ctx context.Context) error {
	switch p.goos {
	case "darwin":
		return p.run(ctx, "osascript", "-e", `tell application "System Events" to restart`)
	default:
		return p.run(ctx, "systemctl", "reboot")
	}
}

// ShutDown powers off the machine.
func (p *Power) ShutDown(ctx context.Context) error {
	switch p.goos {
	case "darwin":
		return p.run(ctx, "osascript", "-e", `tell application "System Events" to shut down`)
	default:
		return p.run(ctx, "systemctl", "poweroff")
	}
}

func (p *Power) run(ctx context.Context, name string, args ...string) error {
	if err := osexec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}
