// Package telemetry exports decision counters through OpenTelemetry.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nstehr/sealer/model"
)

// Metrics counts what the controller decided. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	cycles         metric.Int64Counter
	assignments    metric.Int64Counter
	populationReqs metric.Int64Counter
	guardErrors    metric.Int64Counter
	dispatchErrors metric.Int64Counter
}

// NewMetrics registers the instruments on meter. A nil meter falls back to
// the global provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter("sealer")
	}

	cycles, err := meter.Int64Counter(
		"sealer.cycles",
		metric.WithDescription("Completed control cycles"),
	)
	if err != nil {
		return nil, err
	}

	assignments, err := meter.Int64Counter(
		"sealer.assignments",
		metric.WithDescription("Per-agent decisions by resulting state"),
	)
	if err != nil {
		return nil, err
	}

	populationReqs, err := meter.Int64Counter(
		"sealer.population.requests",
		metric.WithDescription("Population requests sent to the spawning collaborator"),
	)
	if err != nil {
		return nil, err
	}

	guardErrors, err := meter.Int64Counter(
		"sealer.guard.errors",
		metric.WithDescription("Guard conditions that failed at runtime, by rule"),
	)
	if err != nil {
		return nil, err
	}

	dispatchErrors, err := meter.Int64Counter(
		"sealer.dispatch.errors",
		metric.WithDescription("Decisions that could not be forwarded to the simulation"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		cycles:         cycles,
		assignments:    assignments,
		populationReqs: populationReqs,
		guardErrors:    guardErrors,
		dispatchErrors: dispatchErrors,
	}, nil
}

func (m *Metrics) RecordCycle(ctx context.Context, area string) {
	if m == nil {
		return
	}
	m.cycles.Add(ctx, 1, metric.WithAttributes(attribute.String("area", area)))
}

func (m *Metrics) RecordAssignment(ctx context.Context, state model.State, rule string) {
	if m == nil {
		return
	}
	m.assignments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", string(state)),
		attribute.String("rule", rule),
		attribute.Bool("idle", state.Idle()),
	))
}

func (m *Metrics) RecordPopulationRequest(ctx context.Context, target int, role string) {
	if m == nil {
		return
	}
	m.populationReqs.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("target", target),
		attribute.String("role", role),
	))
}

func (m *Metrics) RecordGuardError(ctx context.Context, rule string) {
	if m == nil {
		return
	}
	m.guardErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", rule)))
}

func (m *Metrics) RecordDispatchError(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.dispatchErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
