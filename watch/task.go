package watch

import (
	"os/exec"

	"go.uber.org/zap"

	"github.com/MohinVinayak/Code-Dog/core"
	"github.com/MohinVinayak/Code-Dog/engine"
	"github.com/MohinVinayak/Code-Dog/events"
)

// TaskRunner executes a shell command and maps its lifecycle onto task
// signals: TaskStarted at launch, TaskEnded with the real exit code.
type TaskRunner struct {
	sched *engine.Scheduler
	log   *zap.Logger
}

// NewTaskRunner creates a runner pushing into the given scheduler
func NewTaskRunner(sched *engine.Scheduler) *TaskRunner {
	return &TaskRunner{sched: sched, log: core.Log()}
}

// Run launches command asynchronously via the shell. The dog shows Run
// while it executes, then the success hold or the death lock depending on
// the exit code.
func (t *TaskRunner) Run(command string) {
	t.sched.Push(events.Signal{Type: events.SignalTaskStarted})

	core.Go(func() {
		cmd := exec.Command("sh", "-c", command)
		err := cmd.Run()

		exitCode := 0
		if err != nil {
			exitCode = 1
			if ee, ok := err.(*exec.ExitError); ok {
				exitCode = ee.ExitCode()
			}
			t.log.Debug("task failed", zap.String("command", command), zap.Error(err))
		}

		t.sched.Push(events.Signal{
			Type:    events.SignalTaskEnded,
			Payload: &events.TaskEndedPayload{ExitCode: exitCode},
		})
	})
}
