package rules

import (
	"log/slog"

	"github.com/nstehr/sealer/model"
)

func ActionRecharge(env RuleEnv) *model.Task {
	return &model.Task{Kind: model.TaskRecharge}
}

// ActionTravel sends the agent toward the directive. Paths are always
// recomputed and may cross zones that are only temporarily unsafe.
func ActionTravel(env RuleEnv) *model.Task {
	dest := env.Target
	return &model.Task{
		Kind:           model.TaskTravel,
		Destination:    &dest,
		FreshPath:      true,
		TolerateUnsafe: true,
	}
}

// ActionAwaitController idles: without a visible controller the area is not
// ours to work on yet.
func ActionAwaitController(env RuleEnv) *model.Task {
	slog.Debug("no controller visible", "agent", env.Agent.Name, "room", env.Target.Room)
	return nil
}

func ActionUpgrade(env RuleEnv) *model.Task {
	c, ok := env.controller()
	if !ok {
		return nil
	}
	return &model.Task{Kind: model.TaskUpgrade, TargetID: c.ID}
}

// ActionFortify repairs the weakest barrier below the durability threshold.
func ActionFortify(env RuleEnv) *model.Task {
	wall, ok := minBy(env.WeakBarriers(), func(s model.Structure) int { return s.Hits })
	if !ok {
		return nil
	}
	return &model.Task{Kind: model.TaskFortify, TargetID: wall.ID}
}

// ActionBuild takes the first pending marker. Which site gets built first
// is the directive's call: it owns the marker queue.
func ActionBuild(env RuleEnv) *model.Task {
	site, ok := first(env.ConstructionMarkers())
	if !ok {
		return nil
	}
	return &model.Task{Kind: model.TaskBuild, TargetID: site.ID}
}

// ActionReposition moves the agent off tiles that may receive construction.
func ActionReposition(env RuleEnv) *model.Task {
	targets := env.SafePositions()
	if len(targets) == 0 {
		return nil
	}
	return &model.Task{
		Kind:    model.TaskReposition,
		Targets: targets,
		Range:   env.Params.FleeRange,
	}
}
