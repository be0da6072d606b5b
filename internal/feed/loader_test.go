package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/kbreader/internal/content"
	"github.com/mithrel/kbreader/internal/contentapi"
	"github.com/mithrel/kbreader/pkg/api"
)

const sampleBody = `{"data":[{"id":1,"title":"T","content":[{"type":"paragraph","children":[{"type":"text","text":"Hello"}]}],"category":{"id":1,"name":"Cat"}}]}`

func bodyServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestNewScreenIsPending(t *testing.T) {
	s := NewScreen()
	assert.True(t, s.Loading)
	assert.Equal(t, Pending, s.State())
	assert.NotNil(t, s.Articles)
	assert.Empty(t, s.Articles)
}

func TestRunEndToEndSuccess(t *testing.T) {
	ts := bodyServer(t, sampleBody)
	log, hook := logtest.NewNullLogger()
	s := NewScreen()

	o := Run(context.Background(), s, contentapi.New(ts.URL, "", 0), log)
	require.NoError(t, o.Err)
	require.False(t, s.Loading)
	require.Equal(t, Settled, s.State())
	require.NoError(t, s.LastErr)

	views := content.BuildViews(s.Articles)
	require.Equal(t, []content.View{{ID: 1, Title: "T", Category: "Cat", Paragraphs: []string{"Hello"}}}, views)
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, e.Level)
	}
}

func TestRunEndToEndNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	log, hook := logtest.NewNullLogger()
	s := NewScreen()
	require.NotPanics(t, func() {
		Run(context.Background(), s, contentapi.New(url, "/api", 0), log)
	})

	require.False(t, s.Loading)
	require.Equal(t, Settled, s.State())
	require.NotNil(t, s.Articles)
	require.Empty(t, s.Articles)

	var fe *contentapi.FetchError
	require.True(t, errors.As(s.LastErr, &fe))
	require.Equal(t, contentapi.OpTransport, fe.Op)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, contentapi.OpTransport, last.Data["op"])
}

func TestRunMalformedJSON(t *testing.T) {
	ts := bodyServer(t, `{"data": [`)
	log, hook := logtest.NewNullLogger()
	s := NewScreen()

	o := Run(context.Background(), s, contentapi.New(ts.URL, "", 0), log)
	require.Error(t, o.Err)
	require.False(t, s.Loading)
	require.Empty(t, s.Articles)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "load articles failed", hook.LastEntry().Message)
}

func TestRunLegitimateEmptyList(t *testing.T) {
	ts := bodyServer(t, `{"data":[]}`)
	log, _ := logtest.NewNullLogger()
	s := NewScreen()

	o := Run(context.Background(), s, contentapi.New(ts.URL, "", 0), log)
	require.NoError(t, o.Err)
	require.NoError(t, s.LastErr)
	require.False(t, s.Loading)
	require.Empty(t, s.Articles)
}

func TestLoadingClearsExactlyOnce(t *testing.T) {
	outcomes := []struct {
		name  string
		fetch FetcherFunc
	}{
		{"success", func(context.Context) ([]api.Article, error) { return []api.Article{{ID: 1}}, nil }},
		{"empty", func(context.Context) ([]api.Article, error) { return nil, nil }},
		{"failure", func(context.Context) ([]api.Article, error) { return nil, errors.New("boom") }},
	}
	for _, tc := range outcomes {
		t.Run(tc.name, func(t *testing.T) {
			log, _ := logtest.NewNullLogger()
			s := NewScreen()
			act := s.Activate(context.Background())
			require.True(t, s.Loading, "loading until the outcome is known")

			o := Load(act.Ctx, tc.fetch, log, act.Gen)
			require.True(t, s.Loading, "loading until the outcome is applied")

			require.True(t, s.Settle(o))
			require.False(t, s.Loading)
			require.False(t, s.Settle(o), "a generation settles once")
			require.False(t, s.Loading)
		})
	}
}

func TestStaleOutcomeIsDiscarded(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	s := NewScreen()

	first := s.Activate(context.Background())
	second := s.Activate(context.Background())
	require.ErrorIs(t, first.Ctx.Err(), context.Canceled, "reactivation cancels the previous load")
	require.NoError(t, second.Ctx.Err())

	late := Load(first.Ctx, FetcherFunc(func(context.Context) ([]api.Article, error) {
		return []api.Article{{ID: 99, Title: "old"}}, nil
	}), log, first.Gen)
	require.False(t, s.Settle(late))
	require.True(t, s.Loading)
	require.Empty(t, s.Articles)

	fresh := Load(second.Ctx, FetcherFunc(func(context.Context) ([]api.Article, error) {
		return []api.Article{{ID: 1, Title: "new"}}, nil
	}), log, second.Gen)
	require.True(t, s.Settle(fresh))
	require.Equal(t, "new", s.Articles[0].Title)
}

func TestDeactivateDiscardsInFlight(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	s := NewScreen()
	act := s.Activate(context.Background())
	s.Deactivate()

	o := Load(act.Ctx, FetcherFunc(func(ctx context.Context) ([]api.Article, error) {
		return nil, ctx.Err()
	}), log, act.Gen)
	require.ErrorIs(t, o.Err, context.Canceled)
	require.False(t, s.Settle(o))
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level, "cancellation is not reported as a failure")
}

func TestRepeatedActivationsAreIdempotent(t *testing.T) {
	ts := bodyServer(t, sampleBody)
	log, _ := logtest.NewNullLogger()
	client := contentapi.New(ts.URL, "", 0)
	s := NewScreen()

	Run(context.Background(), s, client, log)
	first := s.Articles
	digest := s.Digest
	require.Len(t, first, 1)

	for i := 0; i < 3; i++ {
		Run(context.Background(), s, client, log)
		require.Len(t, s.Articles, 1, "no accumulation across loads")
		require.Equal(t, first, s.Articles)
		require.Equal(t, digest, s.Digest)
	}
	require.Equal(t, uint64(4), s.Generation())
}

func TestFailureAfterSuccessReplacesList(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	s := NewScreen()
	Run(context.Background(), s, FetcherFunc(func(context.Context) ([]api.Article, error) {
		return []api.Article{{ID: 1}}, nil
	}), log)
	require.Len(t, s.Articles, 1)

	Run(context.Background(), s, FetcherFunc(func(context.Context) ([]api.Article, error) {
		return nil, errors.New("down")
	}), log)
	require.Empty(t, s.Articles)
	require.EqualError(t, s.LastErr, "down")
}
