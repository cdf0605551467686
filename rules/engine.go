package rules

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/sealer/model"
)

// Decision is the engine's output for one agent.
type Decision struct {
	Rule  string // name of the rule that fired; empty when none did
	State model.State
	Task  *model.Task
}

// Engine runs the compiled guard chain for one agent at a time.
// It holds no per-agent state, so Select is safe to call from any number
// of sessions concurrently.
type Engine struct {
	mu    sync.RWMutex
	rules []*Rule

	// OnConditionError, when set, is called for every condition that fails
	// at runtime. The failing guard is treated as not satisfied.
	OnConditionError func(rule string, err error)
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Select walks the chain and returns the first matching rule's task.
// When nothing matches the agent has no actionable work and idles.
func (e *Engine) Select(env RuleEnv) Decision {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "agent", env.Agent.Name, "error", err)
			if e.OnConditionError != nil {
				e.OnConditionError(r.Name, err)
			}
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		task := r.Action(env)
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "agent", env.Agent.Name, "state", r.State)
		return Decision{Rule: r.Name, State: r.State, Task: task}
	}

	return Decision{State: model.StateIdleNoTargets}
}

// Swap atomically replaces the rule set. Compiles first; if compilation
// fails the old rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.rules = compiled
	e.mu.Unlock()

	slog.Info("rule set swapped", "count", len(compiled), "rules", ruleNames(compiled))
	return nil
}

// RuleNames lists the active chain in evaluation order.
func (e *Engine) RuleNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ruleNames(e.rules)
}

func ruleNames(rules []*Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		if r.Action == nil {
			return nil, fmt.Errorf("rule %q has no action", r.Name)
		}
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sorted := slices.Clone(rules)
	// Stable so equal priorities keep their declaration order.
	slices.SortStableFunc(sorted, func(a, b *Rule) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	return sorted, nil
}
