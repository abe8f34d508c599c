package exec

import (
	"bytes"
	"context"
	"fmt"
	osexec "os/exec"
	"strings"

	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
)

// defaultMeetingBinary is the capture daemon's CLI client, expected on
// PATH when meeting features are installed.
const defaultMeetingBinary = "quickcast-meetingd"

// Ensure MeetingClient implements the interface.
var _ driven.MeetingController = (*MeetingClient)(nil)

// MeetingClient drives the external meeting capture daemon through its
// command-line client.
type MeetingClient struct {
	binary string
}

// NewMeetingClient creates a meeting controller. An empty binary uses
// the default client name.
func NewMeetingClient(binary string) *MeetingClient {
	if binary == "" {
		binary = defaultMeetingBinary
	}
	return &MeetingClient{binary: binary}
}

// Start begins a capture session.
func (m *MeetingClient) Start(ctx context.Context, sessionID string) error {
	return m.run(ctx, "start", "--session", sessionID)
}

// Stop ends the capture session.
func (m *MeetingClient) Stop(ctx context.Context, sessionID string) error {
	return m.run(ctx, "stop", "--session", sessionID)
}

// Summarise returns the daemon's summary of the session so far.
func (m *MeetingClient) Summarise(ctx context.Context, sessionID string) (string, error) {
	var out bytes.Buffer
	cmd := osexec.CommandContext(ctx, m.binary, "summarise", "--session", sessionID)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("summarising session %s: %w", sessionID, err)
	}
	return strings.TrimSpace(out.String()), nil
}

// EnrollSpeaker records a voice profile for the named speaker.
func (m *MeetingClient) EnrollSpeaker(ctx context.Context, name string) error {
	return m.run(ctx, "enroll", "--speaker", name)
}

func (m *MeetingClient) run(ctx context.Context, args ...string) error {
	if err := osexec.CommandContext(ctx, m.binary, args...).Run(); err != nil {
		return fmt.Errorf("running %s %s: %w", m.binary, strings.Join(args, " "), err)
	}
	return nil
}
