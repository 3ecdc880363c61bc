package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/itristenx/nova-notify/pkg/deliveries"
	"github.com/itristenx/nova-notify/pkg/engine"
	"github.com/itristenx/nova-notify/pkg/event"
	"github.com/itristenx/nova-notify/pkg/prefs"
	"github.com/itristenx/nova-notify/pkg/recipients"
)

// API exposes the engine's surface over REST, preserving the canonical
// field names and defaulting rules of the event and preference models.
type API struct {
	engine *engine.Engine
	logger *slog.Logger
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the API logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates the REST surface over an engine.
func New(eng *engine.Engine, opts ...Option) *API {
	a := &API{
		engine: eng,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Routes mounts the API on a fresh chi router.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/events", a.processEvent)
	r.Get("/deliveries", a.listDeliveries)
	r.Route("/users/{userID}/preferences", func(r chi.Router) {
		r.Get("/", a.getPreferences)
		r.Put("/", a.setPreferences)
	})
	return r
}

func (a *API) processEvent(w http.ResponseWriter, r *http.Request) {
	var raw event.RawEvent
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	summary, err := a.engine.ProcessEvent(r.Context(), raw)
	switch {
	case errors.Is(err, event.ErrInvalidEvent):
		a.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, recipients.ErrRecipientResolution):
		// The event row exists for audit; tell the caller which one.
		a.writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   err.Error(),
			"eventId": summary.EventID,
		})
	case err != nil:
		a.logger.LogAttrs(r.Context(), slog.LevelError, "process event failed",
			slog.Any("error", err))
		a.writeError(w, http.StatusInternalServerError, "failed to process event")
	default:
		a.writeJSON(w, http.StatusCreated, summary)
	}
}

func (a *API) listDeliveries(w http.ResponseWriter, r *http.Request) {
	opts := deliveries.ListOptions{
		UserID: r.URL.Query().Get("userId"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			a.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = limit
	}

	records, err := a.engine.ListDeliveries(r.Context(), opts)
	if err != nil {
		a.logger.LogAttrs(r.Context(), slog.LevelError, "list deliveries failed",
			slog.Any("error", err))
		a.writeError(w, http.StatusInternalServerError, "failed to list deliveries")
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"deliveries": records})
}

func (a *API) getPreferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	pref, err := a.engine.GetUserPreferences(r.Context(), userID)
	if err != nil {
		a.logger.LogAttrs(r.Context(), slog.LevelError, "get preferences failed",
			slog.String("user_id", userID), slog.Any("error", err))
		a.writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	a.writeJSON(w, http.StatusOK, pref)
}

func (a *API) setPreferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var pref prefs.UserPreference
	if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	saved, err := a.engine.SetUserPreferences(r.Context(), userID, pref)
	switch {
	case errors.Is(err, prefs.ErrInvalidPreference):
		a.writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		a.logger.LogAttrs(r.Context(), slog.LevelError, "set preferences failed",
			slog.String("user_id", userID), slog.Any("error", err))
		a.writeError(w, http.StatusInternalServerError, "failed to store preferences")
	default:
		a.writeJSON(w, http.StatusOK, saved)
	}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.LogAttrs(context.Background(), slog.LevelError, "encode response failed",
			slog.Any("error", err))
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, map[string]string{"error": msg})
}
