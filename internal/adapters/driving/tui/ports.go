package tui

import (
	"github.com/quickcast-app/quickcast/internal/core/ports/driving"
)

// Ports holds the driving ports the palette runs against.
type Ports struct {
	// Session owns query generations. Wired after program creation
	// because the result sink needs the program's Send.
	Session driving.QuerySession

	// Dispatcher executes selected actions.
	Dispatcher driving.Dispatcher
}
