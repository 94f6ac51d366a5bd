// Package session keeps one client's view of the ledger consistent with the
// backend: filters, derived dashboards and mutations all flow through it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-ledger/internal/aggregate"
	"github.com/carson-networks/budget-ledger/internal/backend"
	"github.com/carson-networks/budget-ledger/internal/ledger"
	"github.com/carson-networks/budget-ledger/internal/metrics"
	"github.com/carson-networks/budget-ledger/internal/query"
)

var ErrClosed = errors.New("session: closed")

const (
	triggerHydrate  = "hydrate"
	triggerFilter   = "filter"
	triggerMutation = "mutation"
	triggerManual   = "manual"
)

type Option func(*Session)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

func WithRecentLimit(n int) Option {
	return func(s *Session) { s.recentLimit = n }
}

func WithLogger(log *logrus.Logger) Option {
	return func(s *Session) { s.log = logrus.NewEntry(log) }
}

// WithFilter sets the initial filter.
func WithFilter(spec ledger.FilterSpec) Option {
	return func(s *Session) { s.state.Filter = spec }
}

// Session owns the ledger state of one client. Mutations are serialized;
// refreshes run concurrently and only the newest one publishes.
type Session struct {
	backend     backend.Backend
	metrics     *metrics.Metrics
	log         *logrus.Entry
	recentLimit int

	mutateMu sync.Mutex

	mu           sync.Mutex
	state        State
	closed       bool
	inflight     int
	issued       uint64
	filterSeq    uint64
	filterCancel context.CancelFunc
	subs         map[int]chan State
	nextSub      int
}

// New returns an empty session over b. Call Hydrate to load it.
func New(b backend.Backend, opts ...Option) *Session {
	s := &Session{
		backend:     b,
		log:         logrus.NewEntry(logrus.StandardLogger()),
		recentLimit: aggregate.DefaultRecentLimit,
		subs:        make(map[int]chan State),
		state: State{
			Filter: ledger.FilterSpec{Period: ledger.PeriodMonthly, Page: 1, Limit: query.DefaultLimit},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.ViewFilter = s.state.Filter
	s.log = s.log.WithField("component", "session")
	return s
}

// Hydrate performs the first fetch of every view.
func (s *Session) Hydrate(ctx context.Context) error {
	return s.refresh(ctx, triggerHydrate)
}

// RefreshAll re-fetches every view for the current filter.
func (s *Session) RefreshAll(ctx context.Context) error {
	return s.refresh(ctx, triggerManual)
}

// ApplyFilter merges patch into the current filter and refreshes. A newer
// ApplyFilter cancels this one's refresh; that is not an error.
func (s *Session) ApplyFilter(ctx context.Context, patch ledger.FilterPatch) (ledger.FilterSpec, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ledger.FilterSpec{}, ErrClosed
	}
	merged := s.state.Filter.Merge(patch)
	s.state.Filter = merged
	if s.filterCancel != nil {
		s.filterCancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	s.filterSeq++
	token := s.filterSeq
	s.filterCancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.filterSeq == token {
			s.filterCancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	err := s.refresh(fctx, triggerFilter)
	if err != nil && ctx.Err() == nil && fctx.Err() != nil {
		return merged, nil
	}
	return merged, err
}

// Create records a transaction and refreshes every view before returning.
// A non-nil transaction with an error means the write succeeded but the
// refresh did not.
func (s *Session) Create(ctx context.Context, payload ledger.Payload) (*ledger.Transaction, error) {
	var tx *ledger.Transaction
	err := s.mutate(ctx, "Create", func(ctx context.Context) error {
		var err error
		tx, err = s.backend.CreateTransaction(ctx, payload)
		return err
	})
	return tx, err
}

func (s *Session) Update(ctx context.Context, id uuid.UUID, payload ledger.Payload) (*ledger.Transaction, error) {
	var tx *ledger.Transaction
	err := s.mutate(ctx, "Update", func(ctx context.Context) error {
		var err error
		tx, err = s.backend.UpdateTransaction(ctx, id, payload)
		return err
	})
	return tx, err
}

func (s *Session) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "Delete", func(ctx context.Context) error {
		return s.backend.DeleteTransaction(ctx, id)
	})
}

// Transfer moves amount between two accounts. An empty description becomes
// "Transfer from <from> to <to>".
func (s *Session) Transfer(ctx context.Context, from, to, amount, description string, date *time.Time) (*ledger.Transaction, error) {
	if strings.TrimSpace(description) == "" {
		description = fmt.Sprintf("Transfer from %s to %s", from, to)
	}
	return s.Create(ctx, ledger.Payload{
		Type:        ledger.TypeTransfer.String(),
		Amount:      amount,
		Description: description,
		Account:     from,
		ToAccount:   to,
		Date:        date,
	})
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = nil
	s.notifyLocked()
}

// Subscribe delivers every state change. Slow readers only see the latest
// state. The channel closes on cancel or Close.
func (s *Session) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// Close cancels any filter refresh and closes subscriptions. Later calls
// return ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.filterCancel != nil {
		s.filterCancel()
	}
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Session) mutate(ctx context.Context, name string, fn func(context.Context) error) error {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	if !s.beginWork() {
		return ErrClosed
	}
	err := fn(ctx)
	s.endWork(err)
	if err != nil {
		s.log.WithError(err).WithField("kind", ledger.KindOf(err).String()).Warnf("Session.%s.rejected", name)
		return err
	}
	return s.refresh(ctx, triggerMutation)
}

func (s *Session) beginWork() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.inflight++
	s.state.Loading = true
	s.notifyLocked()
	return true
}

func (s *Session) endWork(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.state.Loading = s.inflight > 0
	if err != nil {
		s.state.LastError = err
	}
	s.notifyLocked()
}

func (s *Session) refresh(ctx context.Context, trigger string) error {
	start := time.Now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.issued++
	gen := s.issued
	spec := s.state.Filter
	s.inflight++
	s.state.Loading = true
	s.notifyLocked()
	s.mu.Unlock()

	v, err := s.fetch(ctx, spec)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.state.Loading = s.inflight > 0

	outcome := "published"
	switch {
	case err != nil && ctx.Err() != nil:
		outcome = "superseded"
		err = ctx.Err()
	case err != nil:
		outcome = "failed"
		s.state.LastError = err
		s.log.WithError(err).WithFields(logrus.Fields{
			"trigger":    trigger,
			"generation": gen,
		}).Error("Session.refresh.failed")
	case gen < s.state.Generation:
		outcome = "superseded"
	default:
		s.publishLocked(gen, spec, v)
	}
	s.notifyLocked()
	s.metrics.ObserveRefresh(trigger, outcome, time.Since(start))
	return err
}

func (s *Session) fetch(ctx context.Context, spec ledger.FilterSpec) (views, error) {
	var v views
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		v.page, err = s.backend.ListTransactions(ctx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		v.accounts, err = s.backend.ListAccounts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		v.summary, err = s.backend.GetSummary(ctx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		v.chart, err = s.backend.GetChartData(ctx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		v.categories, err = s.backend.GetCategorySummary(ctx, spec)
		return err
	})
	g.Go(func() error {
		var err error
		v.recent, err = s.backend.GetRecentTransactions(ctx, spec, s.recentLimit)
		return err
	})

	return v, g.Wait()
}

func (s *Session) publishLocked(gen uint64, spec ledger.FilterSpec, v views) {
	s.state.Generation = gen
	s.state.ViewFilter = spec
	s.state.Page = v.page
	s.state.Accounts = v.accounts
	s.state.TotalBalance = aggregate.TotalBalance(v.accounts)
	s.state.Summary = v.summary
	s.state.Chart = v.chart
	s.state.CategorySummary = v.categories
	s.state.Recent = v.recent
}

func (s *Session) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.state
	}
}
