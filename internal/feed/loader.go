// Package feed owns the article load lifecycle of the reader screen.
//
// A Screen starts Pending. Every activation issues exactly one fetch and
// carries a generation number; the first outcome for the current generation
// moves the screen to Settled and clears Loading. Failures never surface as
// a separate state: they settle to an empty list and are kept in LastErr.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mithrel/kbreader/internal/contentapi"
	"github.com/mithrel/kbreader/pkg/api"
)

type State int

const (
	Pending State = iota
	Settled
)

func (s State) String() string {
	if s == Settled {
		return "settled"
	}
	return "pending"
}

// Fetcher retrieves the full article list in one call.
type Fetcher interface {
	FetchArticles(ctx context.Context) ([]api.Article, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]api.Article, error)

func (f FetcherFunc) FetchArticles(ctx context.Context) ([]api.Article, error) { return f(ctx) }

// Outcome is the result of one load. Err is nil on success.
type Outcome struct {
	Gen      uint64
	Articles []api.Article
	Err      error
	Dur      time.Duration
}

// Activation identifies one load request. Ctx is canceled once the
// activation is superseded or the screen is deactivated.
type Activation struct {
	Gen uint64
	Ctx context.Context
}

// Screen is the state owned by one active reader screen. It is not safe
// for concurrent use; the UI event loop is its only writer.
type Screen struct {
	Articles []api.Article
	Loading  bool
	// LastErr keeps the failure behind an empty list. It is never shown.
	LastErr error
	Digest  string

	state  State
	gen    uint64
	cancel context.CancelFunc
}

func NewScreen() *Screen {
	return &Screen{Articles: []api.Article{}, Loading: true}
}

func (s *Screen) State() State       { return s.state }
func (s *Screen) Generation() uint64 { return s.gen }

// Activate starts a new generation and cancels any load still in flight.
func (s *Screen) Activate(parent context.Context) Activation {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.gen++
	s.cancel = cancel
	s.state = Pending
	s.Loading = true
	return Activation{Gen: s.gen, Ctx: ctx}
}

// Deactivate cancels the in-flight load; its outcome will be discarded.
func (s *Screen) Deactivate() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// Settle applies an outcome. It reports false, changing nothing, when the
// outcome belongs to a superseded generation or the generation has already
// settled.
func (s *Screen) Settle(o Outcome) bool {
	if o.Gen != s.gen || s.state == Settled {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	articles := o.Articles
	if o.Err != nil || articles == nil {
		articles = []api.Article{}
	}
	s.Articles = articles
	s.LastErr = o.Err
	s.Digest = api.Digest(articles)
	s.state = Settled
	s.Loading = false
	return true
}

// Load performs the fetch for one generation. It never returns an error:
// a failure is logged and carried in Outcome.Err with an empty list.
func Load(ctx context.Context, f Fetcher, log *logrus.Logger, gen uint64) Outcome {
	start := time.Now()
	articles, err := f.FetchArticles(ctx)
	dur := time.Since(start)
	if err != nil {
		entry := log.WithError(err).WithFields(logrus.Fields{"gen": gen, "dur": dur})
		var fe *contentapi.FetchError
		if errors.As(err, &fe) {
			entry = entry.WithFields(logrus.Fields{"op": fe.Op, "url": fe.URL})
		}
		if errors.Is(err, context.Canceled) {
			entry.Debug("load articles canceled")
		} else {
			entry.Error("load articles failed")
		}
		return Outcome{Gen: gen, Articles: []api.Article{}, Err: err, Dur: dur}
	}
	if articles == nil {
		articles = []api.Article{}
	}
	log.WithFields(logrus.Fields{"gen": gen, "count": len(articles), "dur": dur}).Debug("load articles settled")
	return Outcome{Gen: gen, Articles: articles, Dur: dur}
}

// Run activates the screen, loads and settles in one call. It serves the
// non-interactive outputs, where nothing else can supersede the load.
func Run(ctx context.Context, s *Screen, f Fetcher, log *logrus.Logger) Outcome {
	act := s.Activate(ctx)
	o := Load(act.Ctx, f, log, act.Gen)
	if s.Settle(o) {
		log.WithFields(logrus.Fields{"gen": o.Gen, "digest": s.Digest}).Debug("screen settled")
	}
	return o
}
