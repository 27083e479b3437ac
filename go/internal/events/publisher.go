package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Subjects under the warroom.draft.> hierarchy.
const (
	SubjectPickMade       = "warroom.draft.pick.made"
	SubjectPickUndone     = "warroom.draft.pick.undone"
	SubjectDraftStarted   = "warroom.draft.started"
	SubjectDraftPaused    = "warroom.draft.paused"
	SubjectDraftCompleted = "warroom.draft.completed"
	SubjectTimerSync      = "warroom.draft.timer"
)

// Publisher pushes draft lifecycle events to NATS JetStream for any
// interested consumer (companion UIs, loggers). Publishing is best
// effort: failures are logged and never fail the draft operation.
type Publisher struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the draft event stream
// exists.
func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("warroom"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     "WARROOM_DRAFT",
		Subjects: []string{"warroom.draft.>"},
		Storage:  nats.FileStorage,
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure draft stream: %w", err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

// Publish marshals a payload and publishes it on the given subject.
func (p *Publisher) Publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to marshal event payload")
		return
	}
	if _, err := p.js.Publish(subject, data); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}

// Close drains the connection.
func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		log.Warn().Err(err).Msg("failed to drain NATS connection")
	}
}
