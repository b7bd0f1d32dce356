package engine

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// RunState represents the lifecycle state of one provisioning run.
type RunState string

const (
	// RunPending indicates the run has not started.
	RunPending RunState = "pending"
	// RunRunning indicates steps are being executed.
	RunRunning RunState = "running"
	// RunCompleted indicates all steps were processed.
	RunCompleted RunState = "completed"
	// RunFailed indicates a critical step errored and the run stopped.
	RunFailed RunState = "failed"
)

// Event types for the run state machine.
const (
	eventStart    = "START"
	eventComplete = "COMPLETE"
	eventFail     = "FAIL"
	eventReset    = "RESET"
)

// machineContext is the statekit context for a run; the machine only tracks
// the lifecycle, all run data lives in the Report.
type machineContext struct{}

// runMachine wraps the statekit interpreter for the run lifecycle:
// pending -> running -> {completed | failed}.
type runMachine struct {
	interp *statekit.Interpreter[machineContext]
}

// newRunMachine builds and starts the lifecycle state machine.
func newRunMachine() (*runMachine, error) {
	machine, err := statekit.NewMachine[machineContext]("provision-run").
		WithInitial("pending").
		WithContext(machineContext{}).
		State("pending").
		On(eventStart).Target("running").Done().
		State("running").
		On(eventComplete).Target("completed").
		On(eventFail).Target("failed").Done().
		State("completed").
		On(eventReset).Target("pending").Done().
		State("failed").
		On(eventReset).Target("pending").Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("build run state machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()

	return &runMachine{interp: interp}, nil
}

func (m *runMachine) start() {
	m.interp.Send(statekit.Event{Type: eventStart})
}

func (m *runMachine) complete() {
	m.interp.Send(statekit.Event{Type: eventComplete})
}

func (m *runMachine) fail() {
	m.interp.Send(statekit.Event{Type: eventFail})
}

func (m *runMachine) state() RunState {
	return RunState(m.interp.State().Value)
}

func (m *runMachine) stop() {
	m.interp.Stop()
}
