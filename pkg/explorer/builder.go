package explorer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"mercator-hq/ganymede/pkg/machine"
	"mercator-hq/ganymede/pkg/rule"
)

// Builder explores the reachable-state graph and assembles it into a
// StateMachine. The zero value is not usable; construct with New.
type Builder struct {
	logger *slog.Logger
}

// New creates a Builder. A nil logger discards all events; level
// filtering is the logger's responsibility, the builder always emits.
func New(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{logger: logger}
}

// Build explores every state reachable from initial under the given
// rules, subject to the limits in cfg, and returns the resulting
// machine.
//
// Rules are tried in slice order on every expanded state. An error
// from a rule's IsAvailable or Execute aborts the build; no partial
// machine is returned.
func (b *Builder) Build(initial *machine.State, rules []rule.Rule, cfg Config) (*machine.StateMachine, error) {
	if initial == nil {
		return nil, &machine.ArgumentError{Name: "initial", Message: "initial state cannot be nil"}
	}
	if rules == nil {
		return nil, &machine.ArgumentError{Name: "rules", Message: "rules cannot be nil"}
	}
	for i, rl := range rules {
		if rl == nil {
			return nil, &machine.ArgumentError{Name: fmt.Sprintf("rules[%d]", i), Message: "rule cannot be nil"}
		}
	}

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = StrategyBFS
	}
	if strategy != StrategyBFS && strategy != StrategyDFS {
		return nil, &machine.ArgumentError{Name: "config.strategy", Message: fmt.Sprintf("unknown exploration strategy %q", strategy)}
	}

	logger := b.logger.With("run_id", uuid.New().String())
	logger.Info("exploration started",
		"strategy", strategy,
		"rules", len(rules),
		"max_states", cfg.MaxStates,
		"max_depth", cfg.MaxDepth,
	)

	m := machine.NewStateMachine()
	seen := make(map[string]string) // variable fingerprint -> state id
	nextID := 0
	newID := func() string {
		id := fmt.Sprintf("s%d", nextID)
		nextID++
		return id
	}

	// The initial state is cloned so later caller mutations cannot
	// reach into the machine.
	start := initial.Clone()
	startID := newID()
	if err := m.AddState(startID, start); err != nil {
		return nil, err
	}
	if err := m.SetStartingState(startID); err != nil {
		return nil, err
	}
	seen[start.Fingerprint()] = startID

	fr := newFrontier(strategy)
	fr.push(frontierItem{id: startID, state: start, depth: 0})

	maxStatesLogged := false

	for {
		current, ok := fr.pop()
		if !ok {
			break
		}

		if cfg.MaxDepth > 0 && current.depth >= cfg.MaxDepth {
			logger.Debug("max depth reached",
				"state_id", current.id,
				"depth", current.depth,
			)
			continue
		}

		for _, rl := range rules {
			available, err := rl.IsAvailable(current.state)
			if err != nil {
				logger.Error("rule availability check failed",
					"rule", rl.Name(),
					"state_id", current.id,
					"error", err,
				)
				return nil, fmt.Errorf("rule %q availability check on state %s: %w", rl.Name(), current.id, err)
			}
			if !available {
				continue
			}

			next, err := rl.Execute(current.state)
			if err != nil {
				logger.Error("rule execution failed",
					"rule", rl.Name(),
					"state_id", current.id,
					"error", err,
				)
				return nil, fmt.Errorf("rule %q execution on state %s: %w", rl.Name(), current.id, err)
			}
			if next == nil {
				return nil, fmt.Errorf("rule %q execution on state %s returned no state", rl.Name(), current.id)
			}

			fp := next.Fingerprint()
			if targetID, known := seen[fp]; known {
				// Convergence: reuse the discovered id and do not
				// re-enqueue, which is what terminates cycles.
				if err := m.AddTransition(machine.Transition{SourceID: current.id, TargetID: targetID, RuleName: rl.Name()}); err != nil {
					return nil, err
				}
				logger.Debug("cycle detected",
					"rule", rl.Name(),
					"source", current.id,
					"target", targetID,
				)
				continue
			}

			if cfg.MaxStates > 0 && m.StateCount() >= cfg.MaxStates {
				if !maxStatesLogged {
					logger.Info("max states limit reached",
						"max_states", cfg.MaxStates,
					)
					maxStatesLogged = true
				}
				continue
			}

			targetID := newID()
			if err := m.AddState(targetID, next); err != nil {
				return nil, err
			}
			seen[fp] = targetID
			if err := m.AddTransition(machine.Transition{SourceID: current.id, TargetID: targetID, RuleName: rl.Name()}); err != nil {
				return nil, err
			}
			logger.Debug("new state",
				"rule", rl.Name(),
				"source", current.id,
				"target", targetID,
				"depth", current.depth+1,
			)
			fr.push(frontierItem{id: targetID, state: next, depth: current.depth + 1})
		}
	}

	logger.Info("exploration complete",
		"states", m.StateCount(),
		"transitions", m.TransitionCount(),
	)
	return m, nil
}
