// Package daemon provides the long-running budget snapshot service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/log"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/store"
)

// Source supplies the ledger for each poll.
type Source interface {
	LoadData(ctx context.Context, year int) (store.Data, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath          string
	Year            int
	Categories      []model.Category
	CompensationIDs []string
	Interval        time.Duration
	Addr            string
	EventsBuffer    int
	// Watch refreshes as soon as the database file changes, in addition to the ticker.
	Watch  bool
	Logger *log.Logger
}

// Snapshot is a compact KPI state for status/event payloads.
type Snapshot struct {
	At                   time.Time       `json:"at"`
	Year                 int             `json:"year"`
	AnnualBudgetTarget   decimal.Decimal `json:"annual_budget_target"`
	TargetIsSet          bool            `json:"target_is_set"`
	YTDActual            decimal.Decimal `json:"ytd_actual"`
	YTDBudget            decimal.Decimal `json:"ytd_budget"`
	Variance             decimal.Decimal `json:"variance"`
	VariancePercent      decimal.Decimal `json:"variance_percent"`
	BudgetUtilization    decimal.Decimal `json:"budget_utilization"`
	FullYearForecast     decimal.Decimal `json:"full_year_forecast"`
	TargetAchievement    decimal.Decimal `json:"target_achievement"`
	BurnRate             decimal.Decimal `json:"burn_rate"`
	RunwayMonths         decimal.Decimal `json:"runway_months"`
	RunwayUnconstrained  bool            `json:"runway_unconstrained"`
	VarianceTrend        model.Trend     `json:"variance_trend"`
	LastMonthWithActuals int             `json:"last_month_with_actuals"`
	FinalMonths          []int           `json:"final_months"`
	Entries              int             `json:"entries"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	YTDActual        decimal.Decimal `json:"ytd_actual"`
	FullYearForecast decimal.Decimal `json:"full_year_forecast"`
	Variance         decimal.Decimal `json:"variance"`
	FinalMonths      int             `json:"final_months"`
	Entries          int             `json:"entries"`
	TrendChanged     bool            `json:"trend_changed"`
	TargetChanged    bool            `json:"target_changed"`
}

func (d Delta) isZero() bool {
	return d.YTDActual.IsZero() &&
		d.FullYearForecast.IsZero() &&
		d.Variance.IsZero() &&
		d.FinalMonths == 0 &&
		d.Entries == 0 &&
		!d.TrendChanged &&
		!d.TargetChanged
}

// Event is emitted whenever the KPI snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Year            int       `json:"year"`
	Watching        bool      `json:"watching"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// QuarterView is one quarter of the /v1/forecast payload.
type QuarterView struct {
	Quarter      int             `json:"quarter"`
	Budget       decimal.Decimal `json:"budget"`
	Actual       decimal.Decimal `json:"actual"`
	Reforecast   decimal.Decimal `json:"reforecast"`
	Variance     decimal.Decimal `json:"variance"`
	AllFinal     bool            `json:"all_final"`
	Contribution decimal.Decimal `json:"contribution"`
}

// ForecastView is served at /v1/forecast.
type ForecastView struct {
	Year             int             `json:"year"`
	Quarters         []QuarterView   `json:"quarters"`
	FullYearForecast decimal.Decimal `json:"full_year_forecast"`
	Runway           model.Runway    `json:"runway"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	src    Source
	logger *log.Logger

	pollMu sync.Mutex

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	watching    bool
	hasSnapshot bool
	snapshot    Snapshot
	computed    pipeline.Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading from src.
func New(cfg Config, src Source) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 60 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		logger:    logger.WithComponent(log.ComponentDaemon),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/v1/forecast", s.handleForecast)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("daemon listening", log.FieldOperation, log.OpStartup, log.FieldAddr, s.cfg.Addr, log.FieldYear, s.cfg.Year)

	// Seed initial snapshot so status is useful immediately.
	s.PollOnce(ctx)

	if s.cfg.Watch && s.cfg.DBPath != "" {
		w, err := newDBWatcher(s.cfg.DBPath, 500*time.Millisecond, func() { s.PollOnce(ctx) })
		if err != nil {
			s.logger.Warn("file watching disabled", log.FieldError, err)
		} else {
			s.mu.Lock()
			s.watching = true
			s.mu.Unlock()
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					errCh <- err
				}
			}()
		}
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.PollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon: %w", err)
		}
	}
}

// PollOnce reloads the ledger, recomputes the snapshot and publishes an event
// when anything changed.
func (s *Service) PollOnce(ctx context.Context) {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	start := time.Now()
	data, err := s.src.LoadData(ctx, s.cfg.Year)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		s.logger.Error("poll failed", log.FieldOperation, log.OpPoll, log.FieldError, err)
		return
	}

	computed := pipeline.Compute(pipeline.Input{
		Entries:         data.Entries,
		Categories:      s.cfg.Categories,
		Modes:           data.Modes,
		Targets:         data.Targets,
		CompensationIDs: s.cfg.CompensationIDs,
		Year:            s.cfg.Year,
	})
	now := time.Now()
	snap := snapshotFromKPIs(computed, data.Modes, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.computed = computed
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "kpi_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}

	s.logger.Debug("poll complete",
		log.FieldOperation, log.OpPoll,
		log.FieldEntries, snap.Entries,
		log.FieldDurationMs, time.Since(start).Milliseconds())
}

func snapshotFromKPIs(c pipeline.Snapshot, modes model.ForecastModes, at time.Time) Snapshot {
	k := c.KPIs
	return Snapshot{
		At:                   at,
		Year:                 k.Year,
		AnnualBudgetTarget:   k.AnnualBudgetTarget,
		TargetIsSet:          k.TargetIsSet,
		YTDActual:            k.YTDActual,
		YTDBudget:            k.YTDBudget,
		Variance:             k.Variance,
		VariancePercent:      k.VariancePercent,
		BudgetUtilization:    k.BudgetUtilization,
		FullYearForecast:     k.FullYearForecast,
		TargetAchievement:    k.TargetAchievement,
		BurnRate:             k.BurnRate,
		RunwayMonths:         k.RunwayMonths,
		RunwayUnconstrained:  k.RunwayUnconstrained,
		VarianceTrend:        k.VarianceTrend,
		LastMonthWithActuals: k.LastMonthWithActuals,
		FinalMonths:          modes.FinalMonths(k.Year),
		Entries:              c.EntryCount,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		YTDActual:        curr.YTDActual.Sub(prev.YTDActual),
		FullYearForecast: curr.FullYearForecast.Sub(prev.FullYearForecast),
		Variance:         curr.Variance.Sub(prev.Variance),
		FinalMonths:      len(curr.FinalMonths) - len(prev.FinalMonths),
		Entries:          curr.Entries - prev.Entries,
		TrendChanged:     curr.VarianceTrend != prev.VarianceTrend,
		TargetChanged:    !curr.AnnualBudgetTarget.Equal(prev.AnnualBudgetTarget),
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Year:            s.cfg.Year,
		Watching:        s.watching,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) forecastView() ForecastView {
	s.mu.RLock()
	c := s.computed
	s.mu.RUnlock()

	view := ForecastView{
		Year:             s.cfg.Year,
		Quarters:         make([]QuarterView, 0, len(c.Quarters)),
		FullYearForecast: c.KPIs.FullYearForecast,
		Runway:           c.Runway,
	}
	for _, q := range c.Quarters {
		view.Quarters = append(view.Quarters, QuarterView{
			Quarter:      q.Quarter,
			Budget:       q.Tracking.Budget,
			Actual:       q.Tracking.Actual,
			Reforecast:   q.Tracking.Reforecast,
			Variance:     q.Tracking.Variance,
			AllFinal:     q.AllFinal,
			Contribution: q.ForecastContribution,
		})
	}
	return view
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleForecast(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.forecastView())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
