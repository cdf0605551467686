package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/sealer/model"
)

// ActionFunc builds the task for an agent whose guard matched. Returning
// nil leaves the agent idle for the cycle.
type ActionFunc func(env RuleEnv) *model.Task

// Rule is one guard of the selection chain: a condition paired with the
// action that produces the agent's task. The engine evaluates rules by
// descending priority and stops at the first match.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	State        model.State // state the agent enters when this rule fires
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
