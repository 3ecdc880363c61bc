package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/itristenx/nova-notify/pkg/channels"
	"github.com/itristenx/nova-notify/pkg/deliveries"
	"github.com/itristenx/nova-notify/pkg/event"
	"github.com/itristenx/nova-notify/pkg/prefs"
	"github.com/itristenx/nova-notify/pkg/recipients"
)

// defaultMaxConcurrentSends bounds the dispatch pool when no option says
// otherwise.
const defaultMaxConcurrentSends = 16

// Summary is the terminal result of processing one event: the canonical
// event ID plus one outcome per attempted (recipient, channel) unit.
// Partial failure is steady state; callers inspect individual statuses
// rather than expecting an error from ProcessEvent.
type Summary struct {
	EventID    string              `json:"eventId"`
	Deliveries []deliveries.Record `json:"deliveries"`
}

// Engine composes normalization, recipient resolution, preference-driven
// channel selection, concurrent dispatch, and delivery accounting behind a
// single ProcessEvent entry point.
type Engine struct {
	storage    deliveries.Storage
	resolver   *recipients.Resolver
	prefs      *prefs.Engine
	dispatcher *channels.Dispatcher

	maxConcurrent int
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxConcurrentSends bounds the dispatch worker pool.
func WithMaxConcurrentSends(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxConcurrent = n
		}
	}
}

// New creates an Engine over its collaborators.
func New(storage deliveries.Storage, resolver *recipients.Resolver, prefEngine *prefs.Engine, dispatcher *channels.Dispatcher, opts ...Option) *Engine {
	e := &Engine{
		storage:       storage,
		resolver:      resolver,
		prefs:         prefEngine,
		dispatcher:    dispatcher,
		maxConcurrent: defaultMaxConcurrentSends,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// dispatchUnit is one independent (recipient, channel) attempt.
type dispatchUnit struct {
	userID  string
	channel string
}

// ProcessEvent runs the full pipeline for one raw event.
//
// Fatal failures: an invalid event (nothing persisted), an event-record
// write failure (processing aborts before dispatch), and recipient
// resolution failure (event row kept for audit, zero deliveries, error
// returned alongside the event ID). Everything past that point is
// best-effort: each unit's outcome lands in the summary and in delivery
// history, and a failed unit never blocks its siblings.
func (e *Engine) ProcessEvent(ctx context.Context, raw event.RawEvent) (Summary, error) {
	ev, err := event.Normalize(raw)
	if err != nil {
		return Summary{}, err
	}

	if err := e.storage.CreateEvent(ctx, ev); err != nil {
		return Summary{}, fmt.Errorf("engine: persist event: %w", err)
	}

	userIDs, err := e.resolver.Resolve(ctx, ev)
	if err != nil {
		// The event row stays for audit even though no recipients were
		// computable.
		return Summary{EventID: ev.ID, Deliveries: []deliveries.Record{}}, err
	}

	var units []dispatchUnit
	for _, userID := range userIDs {
		chans, err := e.prefs.ChannelsFor(ctx, userID, ev)
		if err != nil {
			// A preference-store failure must not silence a recipient.
			// Fall back to the priority defaults and keep going.
			e.logger.LogAttrs(ctx, slog.LevelWarn, "preference lookup failed, using defaults",
				slog.String("event_id", ev.ID),
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
			chans = prefs.DefaultChannels(ev.Priority)
		}
		for _, ch := range chans {
			units = append(units, dispatchUnit{userID: userID, channel: ch})
		}
	}

	records := e.dispatchAll(ctx, ev, units)

	e.logger.LogAttrs(ctx, slog.LevelInfo, "event processed",
		slog.String("event_id", ev.ID),
		slog.String("module", ev.Module),
		slog.String("type", ev.Type),
		slog.Int("recipients", len(userIDs)),
		slog.Int("deliveries", len(records)),
	)

	return Summary{EventID: ev.ID, Deliveries: records}, nil
}

// dispatchAll runs every unit through a bounded worker pool and records
// each outcome. Records may be written in any order; the tracker sorts
// history explicitly on read.
func (e *Engine) dispatchAll(ctx context.Context, ev event.Event, units []dispatchUnit) []deliveries.Record {
	records := make([]deliveries.Record, len(units))

	sem := make(chan struct{}, e.maxConcurrent)
	var wg sync.WaitGroup
	for i, unit := range units {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, unit dispatchUnit) {
			defer wg.Done()
			defer func() { <-sem }()
			records[i] = e.dispatchOne(ctx, ev, unit)
		}(i, unit)
	}
	wg.Wait()

	return records
}

func (e *Engine) dispatchOne(ctx context.Context, ev event.Event, unit dispatchUnit) deliveries.Record {
	rec := deliveries.Record{
		EventID:   ev.ID,
		UserID:    unit.userID,
		Channel:   unit.channel,
		Status:    deliveries.StatusSent,
		CreatedAt: time.Now(),
	}

	if err := e.dispatcher.Send(ctx, unit.channel, unit.userID, ev); err != nil {
		rec.Status = deliveries.StatusFailed
		rec.Error = err.Error()
		e.logger.LogAttrs(ctx, slog.LevelWarn, "delivery failed",
			slog.String("event_id", ev.ID),
			slog.String("user_id", unit.userID),
			slog.String("channel", unit.channel),
			slog.Any("error", err),
		)
	}

	if err := e.storage.CreateDelivery(ctx, rec); err != nil {
		// The attempt still counts toward the summary; only history is
		// short one row. No retry queue in current scope.
		e.logger.LogAttrs(ctx, slog.LevelError, "failed to record delivery",
			slog.String("event_id", ev.ID),
			slog.String("user_id", unit.userID),
			slog.String("channel", unit.channel),
			slog.Any("error", err),
		)
	}

	return rec
}

// GetUserPreferences returns the user's stored preference or the
// synthesized read-time default.
func (e *Engine) GetUserPreferences(ctx context.Context, userID string) (prefs.UserPreference, error) {
	return e.prefs.Get(ctx, userID)
}

// SetUserPreferences fully replaces the user's preference blob.
func (e *Engine) SetUserPreferences(ctx context.Context, userID string, pref prefs.UserPreference) (prefs.UserPreference, error) {
	return e.prefs.Set(ctx, userID, pref)
}

// ListDeliveries returns recent delivery history, newest first.
func (e *Engine) ListDeliveries(ctx context.Context, opts deliveries.ListOptions) ([]deliveries.Record, error) {
	return e.storage.ListDeliveries(ctx, opts)
}
