package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts one provider's behavior per call.
type fakeProvider struct {
	name       string
	configured bool
	results    []RawResult
	err        error
	calls      int
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Search(ctx context.Context, query string) ([]RawResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func serperRaw(title, link string) RawResult {
	return RawResult{Provider: "serper", Serper: &serperResult{Title: title, Link: link}}
}

func testController(providers []Provider, fallback bool, retries int) *Controller {
	c := NewController(providers, ControllerConfig{
		FallbackEnabled: fallback,
		MaxRetries:      retries,
		BaseDelay:       time.Millisecond,
		CallTimeout:     time.Second,
	}, slog.New(slog.DiscardHandler))
	c.sleep = func(context.Context, time.Duration) {}
	return c
}

func TestControllerFirstProviderWins(t *testing.T) {
	primary := &fakeProvider{name: "brave", configured: true, results: []RawResult{serperRaw("hit", "https://a")}}
	secondary := &fakeProvider{name: "serper", configured: true, results: []RawResult{serperRaw("other", "https://b")}}

	out := testController([]Provider{primary, secondary}, true, 3).Search(context.Background(), "q")

	require.True(t, out.Success)
	assert.Equal(t, "brave", out.Provider)
	assert.Equal(t, 0, secondary.calls, "secondary should not be consulted")
}

func TestControllerFallsThroughOnError(t *testing.T) {
	primary := &fakeProvider{name: "brave", configured: true, err: errors.New("timeout")}
	secondary := &fakeProvider{name: "serper", configured: true, results: []RawResult{serperRaw("hit", "https://b")}}

	out := testController([]Provider{primary, secondary}, true, 3).Search(context.Background(), "q")

	require.True(t, out.Success)
	assert.Equal(t, "serper", out.Provider)
	assert.Equal(t, 1, primary.calls)
}

func TestControllerSkipsUnconfigured(t *testing.T) {
	skipped := &fakeProvider{name: "brave", configured: false, results: []RawResult{serperRaw("no", "https://a")}}
	used := &fakeProvider{name: "serper", configured: true, results: []RawResult{serperRaw("yes", "https://b")}}

	out := testController([]Provider{skipped, used}, true, 3).Search(context.Background(), "q")

	require.True(t, out.Success)
	assert.Equal(t, 0, skipped.calls)
	assert.Equal(t, "serper", out.Provider)
}

func TestControllerEmptyResultsFallThrough(t *testing.T) {
	empty := &fakeProvider{name: "brave", configured: true, results: nil}
	full := &fakeProvider{name: "serper", configured: true, results: []RawResult{serperRaw("hit", "https://b")}}

	out := testController([]Provider{empty, full}, true, 3).Search(context.Background(), "q")

	require.True(t, out.Success)
	assert.Equal(t, "serper", out.Provider)
}

func TestControllerExhaustionAfterMaxRetries(t *testing.T) {
	failing := &fakeProvider{name: "brave", configured: true, err: errors.New("boom")}

	out := testController([]Provider{failing}, true, 3).Search(context.Background(), "q")

	assert.False(t, out.Success)
	assert.Empty(t, out.Results)
	assert.Equal(t, "none", out.Provider)
	assert.NotEmpty(t, out.Err)
	assert.Equal(t, 3, failing.calls, "should run exactly MaxRetries cycles")
}

func TestControllerNoRetryWhenFallbackDisabled(t *testing.T) {
	failing := &fakeProvider{name: "brave", configured: true, err: errors.New("boom")}

	out := testController([]Provider{failing}, false, 3).Search(context.Background(), "q")

	assert.False(t, out.Success)
	assert.Equal(t, 1, failing.calls, "disabled fallback means a single cycle")
}

func TestControllerBackoffScalesWithAttempt(t *testing.T) {
	failing := &fakeProvider{name: "brave", configured: true, err: errors.New("boom")}
	c := NewController([]Provider{failing}, ControllerConfig{
		FallbackEnabled: true,
		MaxRetries:      3,
		BaseDelay:       time.Second,
		CallTimeout:     time.Second,
	}, slog.New(slog.DiscardHandler))

	var delays []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) { delays = append(delays, d) }

	c.Search(context.Background(), "q")

	require.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, delays)
}

// fakeRecorder captures per-provider metric records.
type fakeRecorder struct {
	ops       []string
	results   []int64
	successes []bool
}

func (f *fakeRecorder) RecordSearch(op string, _ time.Duration, results int64, success bool) {
	f.ops = append(f.ops, op)
	f.results = append(f.results, results)
	f.successes = append(f.successes, success)
}

func TestControllerRecordsProviderMetrics(t *testing.T) {
	failing := &fakeProvider{name: "brave", configured: true, err: errors.New("boom")}
	working := &fakeProvider{name: "serper", configured: true, results: []RawResult{serperRaw("hit", "https://b")}}
	rec := &fakeRecorder{}

	c := NewController([]Provider{failing, working}, ControllerConfig{
		FallbackEnabled: true,
		MaxRetries:      3,
		BaseDelay:       time.Millisecond,
		CallTimeout:     time.Second,
		Metrics:         rec,
	}, slog.New(slog.DiscardHandler))
	c.sleep = func(context.Context, time.Duration) {}

	out := c.Search(context.Background(), "q")

	require.True(t, out.Success)
	assert.Equal(t, []string{"provider_brave", "provider_serper"}, rec.ops)
	assert.Equal(t, []bool{false, true}, rec.successes)
	assert.Equal(t, []int64{0, 1}, rec.results)
}

func TestControllerNoProviders(t *testing.T) {
	out := testController(nil, true, 3).Search(context.Background(), "q")
	assert.False(t, out.Success)
	assert.Empty(t, out.Results)
}
