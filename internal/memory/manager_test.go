package memory

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdalert/nerdalert-go/internal/metrics"
)

// tickingClock hands out strictly increasing timestamps so eviction
// order is deterministic.
type tickingClock struct {
	t time.Time
}

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func testManager(t *testing.T) (*Manager, *tickingClock) {
	t.Helper()
	clock := &tickingClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(DefaultLimits(), WordOverlapMatcher{}, slog.New(slog.DiscardHandler), WithClock(clock.Now))
	return m, clock
}

func TestTopicsLowercasedAndDeduplicated(t *testing.T) {
	m, _ := testManager(t)

	m.AddDiscussedTopic("s1", "Deadpool")
	m.AddDiscussedTopic("s1", "DEADPOOL")
	m.AddDiscussedTopic("s1", "Wolverine")

	got, ok := m.Get("s1")
	require.True(t, ok)
	assert.Equal(t, []string{"deadpool", "wolverine"}, got.DiscussedTopics)
}

func TestBoundedGrowth(t *testing.T) {
	m, _ := testManager(t)

	for i := 0; i < 40; i++ {
		m.AddDiscussedTopic("s1", fmt.Sprintf("topic-%d", i))
		m.AddRecentMessage("s1", fmt.Sprintf("message %d", i))
		m.AddCorrection("s1", Correction{
			OriginalClaim: fmt.Sprintf("claim %d", i),
			CorrectedInfo: fmt.Sprintf("fix %d", i),
		})
	}

	got, ok := m.Get("s1")
	require.True(t, ok)
	assert.Len(t, got.DiscussedTopics, 20)
	assert.Len(t, got.RecentMessages, 5)
	assert.Len(t, got.Corrections, 10)

	// Oldest entries are the ones discarded.
	assert.Equal(t, "topic-20", got.DiscussedTopics[0])
	assert.Equal(t, "message 35", got.RecentMessages[0])
	assert.Equal(t, "claim 30", got.Corrections[0].OriginalClaim)
}

func TestSessionEviction(t *testing.T) {
	m, _ := testManager(t)

	for i := 0; i < 60; i++ {
		m.AddDiscussedTopic(fmt.Sprintf("session-%d", i), "topic")
	}

	assert.Equal(t, 50, m.Len())

	// The ten oldest-by-lastUpdate sessions are gone, the rest survive.
	for i := 0; i < 10; i++ {
		_, ok := m.Get(fmt.Sprintf("session-%d", i))
		assert.False(t, ok, "session-%d should be evicted", i)
	}
	for i := 10; i < 60; i++ {
		_, ok := m.Get(fmt.Sprintf("session-%d", i))
		assert.True(t, ok, "session-%d should survive", i)
	}
}

func TestEvictionPrefersStaleSessions(t *testing.T) {
	m, _ := testManager(t)

	m.AddDiscussedTopic("session-0", "topic")
	for i := 1; i < 50; i++ {
		m.AddDiscussedTopic(fmt.Sprintf("session-%d", i), "topic")
	}
	// Touching session-0 makes session-1 the oldest.
	m.AddDiscussedTopic("session-0", "another topic")

	m.AddDiscussedTopic("session-50", "topic")

	_, ok := m.Get("session-0")
	assert.True(t, ok)
	_, ok = m.Get("session-1")
	assert.False(t, ok)
}

func TestIsRepetitiveContent(t *testing.T) {
	m, _ := testManager(t)

	m.AddRecentMessage("s1", "the quick brown fox jumps over the lazy dog today")

	// Seven of nine distinct words shared: above the 0.7 threshold.
	assert.True(t, m.IsRepetitiveContent("s1", "the quick brown fox jumps over the lazy cat tomorrow"))
	// Well under half the words shared: below the threshold.
	assert.False(t, m.IsRepetitiveContent("s1", "quick brown fox jumps wildly through dense green forest trails"))
	// Unknown session never matches.
	assert.False(t, m.IsRepetitiveContent("missing", "the quick brown fox jumps over the lazy dog today"))
}

func TestHasBeenCorrected(t *testing.T) {
	m, _ := testManager(t)

	m.AddCorrection("s1", Correction{
		OriginalClaim: "Actor A plays Hero",
		CorrectedInfo: "Actor B plays Hero",
		Topic:         "Hero",
	})

	t.Run("exact claim", func(t *testing.T) {
		c, ok := m.HasBeenCorrected("s1", "Actor A plays Hero")
		require.True(t, ok)
		assert.Equal(t, "Actor B plays Hero", c.CorrectedInfo)
	})

	t.Run("claim containing the original", func(t *testing.T) {
		_, ok := m.HasBeenCorrected("s1", "I heard that Actor A plays Hero in the sequel")
		assert.True(t, ok)
	})

	t.Run("similar wording", func(t *testing.T) {
		_, ok := m.HasBeenCorrected("s1", "Actor A plays Hero convincingly")
		assert.True(t, ok)
	})

	t.Run("unrelated claim", func(t *testing.T) {
		_, ok := m.HasBeenCorrected("s1", "The movie releases in June")
		assert.False(t, ok)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, ok := m.HasBeenCorrected("missing", "Actor A plays Hero")
		assert.False(t, ok)
	})
}

func TestMemorySummary(t *testing.T) {
	m, _ := testManager(t)

	assert.Empty(t, m.MemorySummary("missing"))

	for i := 0; i < 7; i++ {
		m.AddDiscussedTopic("s1", fmt.Sprintf("topic-%d", i))
	}
	m.AddCorrection("s1", Correction{
		OriginalClaim: "Actor A plays Hero",
		CorrectedInfo: "Actor B plays Hero",
	})

	summary := m.MemorySummary("s1")
	assert.Contains(t, summary, "Session: s1")
	assert.Contains(t, summary, "topic-6")
	assert.NotContains(t, summary, "topic-0", "only the five most recent topics are rendered")
	assert.Contains(t, summary, `"Actor A plays Hero"`)
	assert.Contains(t, summary, `"Actor B plays Hero"`)
	assert.Contains(t, summary, "Do NOT repeat")
}

func TestClearIsIdempotent(t *testing.T) {
	m, _ := testManager(t)

	m.AddDiscussedTopic("s1", "topic")
	m.Clear("s1")
	m.Clear("s1")

	_, ok := m.Get("s1")
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestCorrectionTimestampDefaults(t *testing.T) {
	m, clock := testManager(t)

	before := clock.t
	m.AddCorrection("s1", Correction{OriginalClaim: "x", CorrectedInfo: "y"})

	got, ok := m.Get("s1")
	require.True(t, ok)
	require.Len(t, got.Corrections, 1)
	assert.True(t, got.Corrections[0].Timestamp.After(before))
}

func TestWritesRecordedInMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	m := NewManager(DefaultLimits(), WordOverlapMatcher{}, slog.New(slog.DiscardHandler),
		WithMetrics(collector))

	m.AddDiscussedTopic("s1", "deadpool")
	m.AddRecentMessage("s1", "some answer")
	m.AddCorrection("s1", Correction{OriginalClaim: "x", CorrectedInfo: "y"})

	snap := collector.Snapshot()
	require.NotNil(t, snap.MemoryWrite)
	assert.Equal(t, int64(3), snap.MemoryWrite.Count)
}
