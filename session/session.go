// Package session serves one simulation connection: it answers the hello
// handshake and runs a control cycle for every world message.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/sealer/ipc"
	"github.com/nstehr/sealer/model"
)

var errNoTarget = errors.New("world received before a target area is known")

// Session owns the decision loop for a single directive's connection.
type Session struct {
	ID     string
	Conn   *ipc.Connection
	Driver *Driver

	colony   string
	target   model.Position
	template model.AgentTemplate
	prev     *stateSnapshot
	out      Dispatcher
}

// New binds a session to conn. tmpl is used until the hello message
// names a template of its own.
func New(conn *ipc.Connection, driver *Driver, tmpl model.AgentTemplate) *Session {
	id := uuid.NewString()
	conn.Session = id
	return &Session{
		ID:       id,
		Conn:     conn,
		Driver:   driver,
		template: tmpl,
		out:      connDispatcher{conn: conn},
	}
}

// Register installs the session's handlers on its connection.
func (s *Session) Register() {
	s.Conn.RegisterHandler(ipc.TypeHello, s.HandleHello)
	s.Conn.RegisterHandler(ipc.TypeWorld, s.HandleWorld)
}

// HandleHello completes the handshake so the simulation knows the controller is ready.
func (s *Session) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	s.colony = hello.Colony
	s.target = hello.Target
	if hello.Template != nil {
		s.template = *hello.Template
	}
	slog.Info("directive identified",
		"session", s.ID,
		"colony", s.colony,
		"target", s.target.String(),
		"role", s.template.Role,
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleWorld runs one control cycle against the received world state.
func (s *Session) HandleWorld(env ipc.Envelope) (*ipc.Envelope, error) {
	var w ipc.WorldMessage
	if err := json.Unmarshal(env.Data, &w); err != nil {
		return nil, fmt.Errorf("unmarshal world: %w", err)
	}
	if w.Home == "" {
		w.Home = s.colony
	}
	if w.Target.Room == "" {
		w.Target = s.target
	}
	if w.Target.Room == "" {
		return nil, errNoTarget
	}

	s.logEvents(w)

	pool := model.NewPool(w.Agents)
	report := s.Driver.Run(context.Background(), w, pool, s.template, s.out)

	slog.Info("cycle complete",
		"session", s.ID,
		"tick", w.Tick,
		"agents", pool.Len(),
		"population", report.PopulationRequested,
		"states", report.States,
		"settled", report.Settled,
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", Tick: w.Tick})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

func (s *Session) logEvents(w model.World) {
	p := s.Driver.CurrentParams()
	for _, e := range detectEvents(w, p, s.prev) {
		slog.Info("area event", "session", s.ID, "kind", e.Kind, "tick", e.Tick, "detail", e.Detail)
	}
	snap := takeSnapshot(w, p)
	s.prev = &snap
}
