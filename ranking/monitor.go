package ranking

import "github.com/poiesic/catalogrank/core"

// Monitor provides hooks to observe a ranking call.
// Implement this interface to inspect intermediate steps of a query.
type Monitor interface {
	Start(q Query)
	AfterFilter(candidates int)
	Excluded(item *core.Item)
	Scored(item *core.Item, score float64)
	Finish(results []*core.RankedResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)                  {}
func (n *noopMonitor) AfterFilter(_ int)              {}
func (n *noopMonitor) Excluded(_ *core.Item)          {}
func (n *noopMonitor) Scored(_ *core.Item, _ float64) {}
func (n *noopMonitor) Finish(_ []*core.RankedResult)  {}
