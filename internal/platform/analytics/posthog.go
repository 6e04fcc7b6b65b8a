// Package analytics forwards usage events to PostHog. A tracker without an API
// key is a no-op so the rest of the application never checks for it.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultEndpoint is the PostHog EU ingestion host.
const DefaultEndpoint = "https://eu.i.posthog.com"

// Tracker records a named event for a user.
type Tracker interface {
	Enqueue(distinctID, event string, properties map[string]any)
	Close()
}

// PosthogTracker wraps posthog.Client and tolerates being uninitialized.
type PosthogTracker struct {
	client posthog.Client
	logger *slog.Logger
}

var _ Tracker = (*PosthogTracker)(nil)

// NewPosthogTracker returns a tracker sending to endpoint. An empty apiKey
// yields a tracker that drops every event.
func NewPosthogTracker(apiKey, endpoint string, logger *slog.Logger) *PosthogTracker {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, usage events are disabled")
		return &PosthogTracker{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize PostHog client, usage events are disabled", slog.String("error", err.Error()))
		return &PosthogTracker{logger: logger}
	}
	logger.Info("PostHog client initialized", slog.String("endpoint", endpoint))
	return &PosthogTracker{client: client, logger: logger}
}

// IsInitialized reports whether events are actually sent.
func (t *PosthogTracker) IsInitialized() bool {
	return t != nil && t.client != nil
}

func (t *PosthogTracker) Enqueue(distinctID, event string, properties map[string]any) {
	if !t.IsInitialized() {
		return
	}
	t.logger.Debug("Enqueueing usage event", slog.String("distinct_id", distinctID), slog.String("event", event))
	err := t.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		t.logger.Warn("Failed to enqueue usage event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (t *PosthogTracker) Close() {
	if !t.IsInitialized() {
		return
	}
	if err := t.client.Close(); err != nil {
		t.logger.Warn("Failed to flush PostHog events", slog.String("error", err.Error()))
	}
}
