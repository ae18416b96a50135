// Package memory tracks what each conversation session has already
// covered: discussed topics, recent agent output, and user-issued
// corrections.
package memory

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Limits bound per-session and manager-wide growth.
type Limits struct {
	MaxSessions         int
	MaxTopics           int
	MaxRecentMessages   int
	MaxCorrections      int
	RepetitionThreshold float64
	CorrectionThreshold float64
}

// DefaultLimits returns the standard caps.
func DefaultLimits() Limits {
	return Limits{
		MaxSessions:         50,
		MaxTopics:           20,
		MaxRecentMessages:   5,
		MaxCorrections:      10,
		RepetitionThreshold: 0.7,
		CorrectionThreshold: 0.6,
	}
}

// Memory is a read snapshot of one session's state.
type Memory struct {
	SessionID       string       `json:"sessionId"`
	DiscussedTopics []string     `json:"discussedTopics"`
	RecentMessages  []string     `json:"recentMessages,omitempty"`
	Corrections     []Correction `json:"corrections,omitempty"`
	LastUpdate      time.Time    `json:"lastUpdate"`
}

// session is the mutable record owned by the manager. Topics keep
// insertion order so trimming discards oldest first.
type session struct {
	topics      []string
	topicSet    map[string]struct{}
	messages    []string
	corrections []Correction
	lastUpdate  time.Time
}

// TimingRecorder receives the duration of each memory write.
type TimingRecorder interface {
	RecordTiming(op string, duration time.Duration)
}

// Manager owns all session memories. Callers only ever see snapshots;
// eviction is enforced here and nowhere else.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	limits   Limits
	matcher  ClaimMatcher
	logger   *slog.Logger
	metrics  TimingRecorder

	// now is swapped out in tests.
	now func() time.Time
}

// ManagerOption tunes a Manager at construction.
type ManagerOption func(*Manager)

// WithClock overrides the manager's time source (tests).
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithMetrics records each write as operation "memory_write".
func WithMetrics(rec TimingRecorder) ManagerOption {
	return func(m *Manager) { m.metrics = rec }
}

// NewManager creates an empty session memory manager.
func NewManager(limits Limits, matcher ClaimMatcher, logger *slog.Logger, opts ...ManagerOption) *Manager {
	defaults := DefaultLimits()
	if limits.MaxSessions <= 0 {
		limits.MaxSessions = defaults.MaxSessions
	}
	if limits.MaxTopics <= 0 {
		limits.MaxTopics = defaults.MaxTopics
	}
	if limits.MaxRecentMessages <= 0 {
		limits.MaxRecentMessages = defaults.MaxRecentMessages
	}
	if limits.MaxCorrections <= 0 {
		limits.MaxCorrections = defaults.MaxCorrections
	}
	if limits.RepetitionThreshold <= 0 {
		limits.RepetitionThreshold = defaults.RepetitionThreshold
	}
	if limits.CorrectionThreshold <= 0 {
		limits.CorrectionThreshold = defaults.CorrectionThreshold
	}
	if matcher == nil {
		matcher = WordOverlapMatcher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		sessions: make(map[string]*session),
		limits:   limits,
		matcher:  matcher,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddDiscussedTopic records a topic (lowercased) for the session,
// creating the session on first write.
func (m *Manager) AddDiscussedTopic(sessionID, topic string) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return
	}

	defer m.recordWrite(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session(sessionID)
	if _, ok := s.topicSet[topic]; !ok {
		s.topics = append(s.topics, topic)
		s.topicSet[topic] = struct{}{}
		for len(s.topics) > m.limits.MaxTopics {
			delete(s.topicSet, s.topics[0])
			s.topics = s.topics[1:]
		}
	}
	s.lastUpdate = m.now()
}

// AddRecentMessage records agent output for later repetition checks.
func (m *Manager) AddRecentMessage(sessionID, message string) {
	defer m.recordWrite(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session(sessionID)
	s.messages = append(s.messages, message)
	if len(s.messages) > m.limits.MaxRecentMessages {
		s.messages = s.messages[len(s.messages)-m.limits.MaxRecentMessages:]
	}
	s.lastUpdate = m.now()
}

// AddCorrection records a user-issued correction.
func (m *Manager) AddCorrection(sessionID string, correction Correction) {
	defer m.recordWrite(time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session(sessionID)
	if correction.Timestamp.IsZero() {
		correction.Timestamp = m.now()
	}
	s.corrections = append(s.corrections, correction)
	if len(s.corrections) > m.limits.MaxCorrections {
		s.corrections = s.corrections[len(s.corrections)-m.limits.MaxCorrections:]
	}
	s.lastUpdate = m.now()

	m.logger.Debug("correction recorded",
		"session_id", sessionID, "topic", correction.Topic)
}

// IsRepetitiveContent reports whether content overlaps any stored
// recent message above the repetition threshold.
func (m *Manager) IsRepetitiveContent(sessionID, content string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return false
	}
	for _, msg := range s.messages {
		if m.matcher.Similarity(content, msg) > m.limits.RepetitionThreshold {
			return true
		}
	}
	return false
}

// HasBeenCorrected returns the stored correction whose original claim
// matches (substring or above-threshold similarity), if any.
func (m *Manager) HasBeenCorrected(sessionID, claim string) (Correction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return Correction{}, false
	}
	loweredClaim := strings.ToLower(claim)
	for _, c := range s.corrections {
		loweredOriginal := strings.ToLower(c.OriginalClaim)
		if strings.Contains(loweredClaim, loweredOriginal) || strings.Contains(loweredOriginal, loweredClaim) {
			return c, true
		}
		if m.matcher.Similarity(claim, c.OriginalClaim) > m.limits.CorrectionThreshold {
			return c, true
		}
	}
	return Correction{}, false
}

// MemorySummary renders the session's recent topics and corrections as
// directive text for the model. Empty string when no memory exists.
func (m *Manager) MemorySummary(sessionID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ""
	}

	topics := s.topics
	if len(topics) > 5 {
		topics = topics[len(topics)-5:]
	}
	corrections := s.corrections
	if len(corrections) > 3 {
		corrections = corrections[len(corrections)-3:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CONVERSATION MEMORY (Session: %s):\n", sessionID)
	if len(topics) > 0 {
		fmt.Fprintf(&b, "Previously discussed topics: %s\n", strings.Join(topics, ", "))
	} else {
		b.WriteString("Previously discussed topics: none\n")
	}
	if len(corrections) > 0 {
		b.WriteString("User corrections to honor:\n")
		for _, c := range corrections {
			fmt.Fprintf(&b, "- NOT %q, instead: %q\n", c.OriginalClaim, c.CorrectedInfo)
		}
	}
	b.WriteString("IMPORTANT: Do NOT repeat explanations for these topics unless specifically asked. Always use the corrected information above.")
	return b.String()
}

// Get returns a snapshot of the session's memory.
func (m *Manager) Get(sessionID string) (Memory, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return Memory{}, false
	}
	return Memory{
		SessionID:       sessionID,
		DiscussedTopics: append([]string(nil), s.topics...),
		RecentMessages:  append([]string(nil), s.messages...),
		Corrections:     append([]Correction(nil), s.corrections...),
		LastUpdate:      s.lastUpdate,
	}, true
}

// Clear removes the session's memory. No-op if none exists.
func (m *Manager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// recordWrite reports a completed write to the metrics recorder, if any.
func (m *Manager) recordWrite(start time.Time) {
	if m.metrics != nil {
		m.metrics.RecordTiming("memory_write", time.Since(start))
	}
}

// session returns the live record for the id, creating it (and running
// eviction) on first write. Caller holds the lock.
func (m *Manager) session(sessionID string) *session {
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}
	s := &session{
		topicSet:   make(map[string]struct{}),
		lastUpdate: m.now(),
	}
	m.sessions[sessionID] = s
	m.evictOldest()
	return s
}

// evictOldest drops oldest-lastUpdate sessions until at or under the
// cap. Caller holds the lock.
func (m *Manager) evictOldest() {
	if len(m.sessions) <= m.limits.MaxSessions {
		return
	}

	type aged struct {
		id   string
		last time.Time
	}
	all := make([]aged, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, aged{id: id, last: s.lastUpdate})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].last.Before(all[j].last) })

	for _, candidate := range all[:len(all)-m.limits.MaxSessions] {
		delete(m.sessions, candidate.id)
		m.logger.Debug("session evicted", "session_id", candidate.id)
	}
}
