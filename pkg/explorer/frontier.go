package explorer

import "mercator-hq/ganymede/pkg/machine"

// frontierItem is one pending expansion.
type frontierItem struct {
	id    string
	state *machine.State
	depth int
}

// frontier is the pending-expansion queue. BFS pops from the front,
// DFS from the back; push always appends.
type frontier struct {
	strategy Strategy
	items    []frontierItem
	head     int
}

func newFrontier(strategy Strategy) *frontier {
	return &frontier{strategy: strategy}
}

func (f *frontier) push(item frontierItem) {
	f.items = append(f.items, item)
}

func (f *frontier) pop() (frontierItem, bool) {
	if f.head >= len(f.items) {
		return frontierItem{}, false
	}
	if f.strategy == StrategyDFS {
		last := len(f.items) - 1
		item := f.items[last]
		f.items = f.items[:last]
		return item, true
	}
	item := f.items[f.head]
	f.items[f.head] = frontierItem{}
	f.head++
	return item, true
}

func (f *frontier) len() int {
	return len(f.items) - f.head
}
