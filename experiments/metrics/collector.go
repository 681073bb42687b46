package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Depth      int
	ExtraTurns bool
	Duration   time.Duration
	Nodes      int
	Cutoffs    int
}

type MoveMetric struct {
	Step    int
	Player  int // Player index
	Pit     int
	Outcome string
	Hash    uint64 // Board hash after the move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player index
	Winner         int // Player index, or game.Draw / game.NoWinner
	Stores         []int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID         int
	Kind       string // "random" or "minimax"
	Depth      int
	Goroutines int
	ExtraTurns bool
	Seed       uint64
}

type Collector interface {
	Start(goroutines, depth int, extraTurns bool)
	AddNode()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	extraTurns bool
	startTime  time.Time
	nodes      atomic.Int64
	cutoffs    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int, extraTurns bool) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.extraTurns = extraTurns
	m.nodes.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		ExtraTurns: m.extraTurns,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int, extraTurns bool) {}
func (m *dummyCollector) AddNode()                                     {}
func (m *dummyCollector) AddCutoff()                                   {}
func (m *dummyCollector) Complete() SearchMetric                       { return SearchMetric{} }
