package explorer

// Strategy selects the frontier expansion order.
type Strategy string

const (
	// StrategyBFS expands the frontier first-in-first-out.
	StrategyBFS Strategy = "bfs"

	// StrategyDFS expands the frontier last-in-first-out.
	StrategyDFS Strategy = "dfs"
)

// Config bounds and orders an exploration.
type Config struct {
	// MaxStates caps the number of states the machine may hold,
	// counting the initial state. Once reached, no new states are
	// created; transitions into already-discovered states are still
	// recorded. Zero or negative means unlimited.
	MaxStates int

	// MaxDepth caps the expansion depth. A state discovered at this
	// depth is kept but not expanded. Zero or negative means
	// unlimited.
	MaxDepth int

	// Strategy is the expansion order. Empty defaults to BFS.
	Strategy Strategy
}

// DefaultConfig returns an unlimited BFS configuration.
func DefaultConfig() Config {
	return Config{Strategy: StrategyBFS}
}
