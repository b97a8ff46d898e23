package question

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// DefaultStoreTimeout bounds a single durable store call.
const DefaultStoreTimeout = 5 * time.Second

var errNoRepository = errors.New("no durable repository configured")

// Source says where a read result came from.
type Source string

const (
	SourceDurable  Source = "durable"
	SourceFallback Source = "fallback"
)

// Reason says why a read fell back to the catalog.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonEmpty      Reason = "empty"
	ReasonStoreError Reason = "store_error"
)

// AddResult reports how an add was persisted.
type AddResult struct {
	Question Question
	// Degraded is true when the question went to the fallback catalog only.
	Degraded bool
}

// GetResult is the outcome of a read. Questions is never nil.
type GetResult struct {
	Questions []Question
	Source    Source
	Reason    Reason
}

// Gateway answers add and get requests against a durable Repository and
// degrades to a Catalog whenever the repository fails or has nothing to say.
// None of its operations report failure to the caller.
type Gateway struct {
	repo         Repository
	catalog      *Catalog
	stats        *Stats
	logger       *slog.Logger
	storeTimeout time.Duration
	now          func() time.Time
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for degraded paths.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithStoreTimeout bounds each durable store call. Zero disables the bound.
func WithStoreTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.storeTimeout = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// NewGateway creates a Gateway. repo may be nil, in which case every call
// takes the degraded path. A nil catalog gets the shipped one.
func NewGateway(repo Repository, catalog *Catalog, opts ...Option) *Gateway {
	if catalog == nil {
		catalog = NewCatalog()
	}
	g := &Gateway{
		repo:         repo,
		catalog:      catalog,
		stats:        &Stats{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		storeTimeout: DefaultStoreTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the fallback catalog owned by the gateway.
func (g *Gateway) Catalog() *Catalog {
	return g.catalog
}

// Stats returns a snapshot of the gateway counters.
func (g *Gateway) Stats() StatsSnapshot {
	return g.stats.Snapshot()
}

// Add stores q durably, or in the fallback catalog when the store fails.
func (g *Gateway) Add(ctx context.Context, q Question) AddResult {
	q = q.WithDefaults()
	q.ID = ""
	q.CreatedAt = time.Time{}

	stored, err := g.insert(ctx, q)
	if err == nil {
		g.stats.recordDurableWrite(g.now())
		return AddResult{Question: stored}
	}

	g.catalog.Append(q)
	g.stats.recordDegraded(g.now(), true, err)
	g.logger.WarnContext(ctx, "durable write failed, question kept in fallback catalog",
		slog.String("op", "add"),
		slog.String("track", q.TrackKey()),
		slog.Int("catalog_size", g.catalog.Len()),
		slog.Any("err", err),
	)
	return AddResult{Question: q, Degraded: true}
}

// Get returns the questions for filter. Durable results win when there are
// any; otherwise the catalog supplies entries for the track plus general ones.
func (g *Gateway) Get(ctx context.Context, filter string) GetResult {
	key := NormalizeTrack(filter)

	found, err := g.find(ctx, key)
	if err != nil {
		g.stats.recordDegraded(g.now(), false, err)
		g.logger.WarnContext(ctx, "durable read failed, serving fallback catalog",
			slog.String("op", "get"),
			slog.String("track", key),
			slog.Any("err", err),
		)
		return GetResult{
			Questions: g.catalog.Select(key),
			Source:    SourceFallback,
			Reason:    ReasonStoreError,
		}
	}

	g.stats.recordDurableRead(g.now(), len(found) == 0)
	if len(found) > 0 {
		return GetResult{Questions: found, Source: SourceDurable}
	}

	g.logger.DebugContext(ctx, "durable read empty, serving fallback catalog",
		slog.String("op", "get"),
		slog.String("track", key),
	)
	return GetResult{
		Questions: g.catalog.Select(key),
		Source:    SourceFallback,
		Reason:    ReasonEmpty,
	}
}

func (g *Gateway) insert(ctx context.Context, q Question) (Question, error) {
	if g.repo == nil {
		return Question{}, errNoRepository
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	return g.repo.Insert(ctx, q)
}

func (g *Gateway) find(ctx context.Context, key string) ([]Question, error) {
	if g.repo == nil {
		return nil, errNoRepository
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()
	return g.repo.Find(ctx, key)
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.storeTimeout)
}
