package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy string
	Duration time.Duration
	Nodes    int
	Prunes   int
	Depth    int // Deepest fully completed depth bound
	TimedOut bool
}

type MoveMetric struct {
	Step    int
	Block   string // Block placed before the escaper moved
	Escaper string // Escaper coordinate after the move
	Blocks  int    // Blocks on the board when the escaper moved
	Board   uint64 // Hash of the board the escaper searched
	Value   float64
	SearchMetric
}

type GameMetric struct {
	Size       int
	Outcome    string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(strategy string)
	AddNode()
	AddPrune()
	CompleteDepth(depth int)
	SetTimedOut()
	Complete() SearchMetric
}

type collector struct {
	strategy  string
	startTime time.Time
	nodes     atomic.Int64
	prunes    atomic.Int64
	depth     atomic.Int32
	timedOut  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.prunes.Store(0)
	m.depth.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy: m.strategy,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Prunes:   int(m.prunes.Load()),
		Depth:    int(m.depth.Load()),
		TimedOut: m.timedOut.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)   {}
func (m *dummyCollector) AddNode()                {}
func (m *dummyCollector) AddPrune()               {}
func (m *dummyCollector) CompleteDepth(depth int) {}
func (m *dummyCollector) SetTimedOut()            {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
