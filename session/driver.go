package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nstehr/sealer/model"
	"github.com/nstehr/sealer/rules"
	"github.com/nstehr/sealer/telemetry"
)

// Dispatcher forwards the cycle's decisions to the simulation, which owns
// spawning and task execution.
type Dispatcher interface {
	RequestPopulation(tick int, req model.PopulationRequest) error
	Assign(tick int, agent string, d rules.Decision) error
}

// Driver runs one control cycle: population sizing first, then one
// independent decision per agent.
type Driver struct {
	Engine  *rules.Engine
	Params  rules.Params // validated on every read
	Metrics *telemetry.Metrics

	// Held for reading across a whole cycle so a reload never mixes the
	// old chain with new params.
	mu sync.RWMutex
}

// CycleReport summarizes a completed cycle.
type CycleReport struct {
	Tick                int
	PopulationRequested bool
	States              map[model.State]int
	Settled             int // repositioning agents that already keep clearance
}

// CurrentParams returns the active thresholds, clamped to their valid ranges.
func (d *Driver) CurrentParams() rules.Params {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.params()
}

func (d *Driver) params() rules.Params {
	p := d.Params
	p.Validate()
	return p
}

// Reload compiles a chain from p and installs it together with p. On a
// compile error the running chain and params are kept.
func (d *Driver) Reload(p rules.Params) error {
	p.Validate()

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.Engine.Swap(rules.CompileGuards(p)); err != nil {
		return err
	}
	d.Params = p
	slog.Info("selector params reloaded", "params", p)
	return nil
}

// Run decides for every agent in pool and writes each task onto its agent.
// tmpl is the body requested from the spawning collaborator.
// Dispatch failures are logged and never stop the cycle; the next cycle
// re-derives the same decision from fresh facts anyway.
func (d *Driver) Run(ctx context.Context, w model.World, pool *model.Pool, tmpl model.AgentTemplate, out Dispatcher) CycleReport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	params := d.params()

	report := CycleReport{Tick: w.Tick, States: make(map[model.State]int)}
	area := w.AreaFacts()

	areaName := w.Target.Room
	if area != nil {
		areaName = area.Name()
	}
	defer d.Metrics.RecordCycle(ctx, areaName)

	if req, ok := rules.SizePopulation(area, params, tmpl); ok {
		report.PopulationRequested = true
		d.Metrics.RecordPopulationRequest(ctx, req.Target, req.Template.Role)
		if err := out.RequestPopulation(w.Tick, req); err != nil {
			slog.Error("population request failed", "tick", w.Tick, "error", err)
			d.Metrics.RecordDispatchError(ctx, "spawn")
		}
	}

	for _, h := range pool.Handles() {
		a, _ := pool.Get(h)
		env := rules.RuleEnv{
			Agent:  a,
			Home:   w.Home,
			Target: w.Target,
			Area:   area,
			Params: params,
		}
		dec := d.Engine.Select(env)
		pool.Assign(h, dec.Task)

		report.States[dec.State]++
		if dec.Task != nil && dec.Task.Kind == model.TaskReposition && dec.Task.ClearanceMet(a.Pos) {
			report.Settled++
		}
		d.Metrics.RecordAssignment(ctx, dec.State, dec.Rule)

		if err := out.Assign(w.Tick, a.Name, dec); err != nil {
			slog.Error("assignment dispatch failed", "tick", w.Tick, "agent", a.Name, "error", err)
			d.Metrics.RecordDispatchError(ctx, "assign")
		}
	}

	return report
}
