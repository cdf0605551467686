package session

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nstehr/sealer/ipc"
	"github.com/nstehr/sealer/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// startSession serves one session over an in-memory pipe and returns the
// simulation's end. The read loop exits when the client closes.
func startSession(t *testing.T) (net.Conn, *Session, chan struct{}) {
	t.Helper()
	server, client := net.Pipe()
	conn := ipc.NewConnection(server, nil)
	s := New(conn, newDriver(t), poisoner)
	s.Register()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.ReadLoop()
	}()
	t.Cleanup(func() {
		client.Close()
		<-done
	})
	return client, s, done
}

func send(t *testing.T, c net.Conn, msgType string, data any) {
	t.Helper()
	env, err := ipc.NewEnvelope(msgType, data)
	require.NoError(t, err)
	require.NoError(t, ipc.WriteEnvelope(c, env))
}

func recv(t *testing.T, c net.Conn) ipc.Envelope {
	t.Helper()
	env, err := ipc.ReadEnvelope(c)
	require.NoError(t, err)
	return env
}

func TestSessionCycle(t *testing.T) {
	client, s, _ := startSession(t)
	assert.NotEmpty(t, s.ID)

	send(t, client, ipc.TypeHello, ipc.HelloMessage{Colony: homeRoom, Target: at(25, 25)})
	assert.Equal(t, ipc.TypeAck, recv(t, client).Type)

	w := world()
	w.Home = ""
	w.Target = model.Position{}
	send(t, client, ipc.TypeWorld, w)

	spawn := recv(t, client)
	require.Equal(t, ipc.TypeSpawn, spawn.Type)
	var sc ipc.SpawnCommand
	require.NoError(t, json.Unmarshal(spawn.Data, &sc))
	assert.Equal(t, 1, sc.Target)
	assert.Equal(t, poisoner, sc.Template)
	assert.Equal(t, 42, sc.Tick)

	wantStates := []model.State{model.StateRecharge, model.StateTravel, model.StateFortify}
	for i, want := range wantStates {
		env := recv(t, client)
		require.Equal(t, ipc.TypeAssign, env.Type)
		var cmd ipc.AssignCommand
		require.NoError(t, json.Unmarshal(env.Data, &cmd))
		assert.Equal(t, w.Agents[i].Name, cmd.Agent)
		assert.Equal(t, want, cmd.State)
	}

	ack := recv(t, client)
	require.Equal(t, ipc.TypeAck, ack.Type)
	var am ipc.AckMessage
	require.NoError(t, json.Unmarshal(ack.Data, &am))
	assert.Equal(t, 42, am.Tick)
}

func TestSessionHelloTemplateOverrides(t *testing.T) {
	client, _, _ := startSession(t)

	custom := model.AgentTemplate{Role: "sealer", Body: []string{"work", "move"}}
	send(t, client, ipc.TypeHello, ipc.HelloMessage{Colony: homeRoom, Target: at(25, 25), Template: &custom})
	recv(t, client)

	w := world()
	w.Agents = nil
	send(t, client, ipc.TypeWorld, w)

	var sc ipc.SpawnCommand
	require.NoError(t, json.Unmarshal(recv(t, client).Data, &sc))
	assert.Equal(t, custom, sc.Template)
	assert.Equal(t, ipc.TypeAck, recv(t, client).Type)
}

func TestSessionWorldBeforeHello(t *testing.T) {
	_, s, _ := startSession(t)

	w := world()
	w.Target = model.Position{}
	env, err := ipc.NewEnvelope(ipc.TypeWorld, w)
	require.NoError(t, err)

	_, err = s.HandleWorld(env)
	assert.ErrorIs(t, err, errNoTarget)
}

func TestSessionBadPayload(t *testing.T) {
	_, s, _ := startSession(t)
	_, err := s.HandleHello(ipc.Envelope{Type: ipc.TypeHello, Data: json.RawMessage(`"nope"`)})
	assert.ErrorContains(t, err, "unmarshal hello")
}
