package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickcast-app/quickcast/internal/adapters/driving/tui/messages"
	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// Ensure ProgramSink implements the interface.
var _ driven.ResultSink = (*ProgramSink)(nil)

// ProgramSink bridges the query session to the running Bubbletea
// program: deliveries become messages pumped through Update.
type ProgramSink struct {
	send func(tea.Msg)
}

// NewProgramSink creates a sink sending through the given function,
// typically (*tea.Program).Send.
func NewProgramSink(send func(tea.Msg)) *ProgramSink {
	return &ProgramSink{send: send}
}

// Deliver forwards the generation's ranked results to the program.
func (s *ProgramSink) Deliver(gen uint64, results []domain.Result) {
	s.send(messages.ResultsDelivered{Gen: gen, Results: results})
}

// Complete signals the generation has finished.
func (s *ProgramSink) Complete(gen uint64) {
	s.send(messages.QueryCompleted{Gen: gen})
}
