package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Outcome classifies what happened to one candidate during a dispatch.
type Outcome uint8

const (
	// OutcomeHandled means the command consumed the event.
	OutcomeHandled Outcome = iota
	// OutcomeNotHandled means the command ran and declined the event.
	OutcomeNotHandled
	// OutcomeInactive means the command's When was false.
	OutcomeInactive
	// OutcomeInInput means the command was skipped because a text field
	// had focus.
	OutcomeInInput
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*CommandMetrics

	totalDispatches uint64
	totalHandled    uint64
	totalDuration   time.Duration
}

// CommandMetrics holds statistics for one command ID.
type CommandMetrics struct {
	ID              string
	HandledCount    uint64
	NotHandledCount uint64
	InactiveCount   uint64
	InInputCount    uint64
	TotalDuration   time.Duration
	MaxDuration     time.Duration
	LastHandled     time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*CommandMetrics),
	}
}

// RecordDispatch records one key or mouse event that had candidates.
func (m *Metrics) RecordDispatch(duration time.Duration, handled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration
	if handled {
		m.totalHandled++
	}
}

// RecordCandidate records the outcome for a single candidate. duration is
// the handler run time and is zero for skipped candidates.
func (m *Metrics) RecordCandidate(id string, outcome Outcome, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cm := m.commands[id]
	if cm == nil {
		cm = &CommandMetrics{ID: id}
		m.commands[id] = cm
	}

	switch outcome {
	case OutcomeHandled:
		cm.HandledCount++
		cm.LastHandled = time.Now()
	case OutcomeNotHandled:
		cm.NotHandledCount++
	case OutcomeInactive:
		cm.InactiveCount++
	case OutcomeInInput:
		cm.InInputCount++
	}

	cm.TotalDuration += duration
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}
}

// TotalDispatches returns the number of events that had candidates.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalHandled returns the number of events a command consumed.
func (m *Metrics) TotalHandled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalHandled
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// CommandStats returns a copy of the statistics for id, or nil.
func (m *Metrics) CommandStats(id string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commands[id]
	if cm == nil {
		return nil
	}
	cp := *cm
	return &cp
}

// TopCommands returns the n commands that handled the most events.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*CommandMetrics, 0, len(m.commands))
	for _, cm := range m.commands {
		cp := *cm
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].HandledCount != out[j].HandledCount {
			return out[i].HandledCount > out[j].HandledCount
		}
		return out[i].ID < out[j].ID
	})

	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = make(map[string]*CommandMetrics)
	m.totalDispatches = 0
	m.totalHandled = 0
	m.totalDuration = 0
}
