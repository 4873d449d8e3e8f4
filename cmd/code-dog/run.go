package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/MohinVinayak/Code-Dog/asset"
	"github.com/MohinVinayak/Code-Dog/audio"
	"github.com/MohinVinayak/Code-Dog/config"
	"github.com/MohinVinayak/Code-Dog/core"
	"github.com/MohinVinayak/Code-Dog/dog"
	"github.com/MohinVinayak/Code-Dog/engine"
	"github.com/MohinVinayak/Code-Dog/events"
	"github.com/MohinVinayak/Code-Dog/render"
	"github.com/MohinVinayak/Code-Dog/status"
	"github.com/MohinVinayak/Code-Dog/watch"
)

// runDog wires the controller to its collaborators and blocks until quit
func runDog() error {
	store := config.NewStore(flagConfig)
	defer store.Close()

	if flagDebug || store.Config().DebugLog {
		core.InitLogging(debugLogPath())
		defer core.SyncLogging()
	}

	events.InitRegistry()

	// Render surface
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	// Assets: user directory when configured, built-in art otherwise
	assetRoot := flagAssets
	if assetRoot == "" {
		assetRoot = store.Config().AssetDir
	}
	library := asset.NewLibrary(assetRoot, func() string { return store.Config().Size })

	// Sound degrades to silence without an audio device
	sounds := audio.NewSoundManager()
	if err := sounds.Initialize(); err != nil {
		core.Log().Debug("audio unavailable, running silent", zap.Error(err))
	}
	sounds.SetMuted(flagMute || store.Config().Mute)

	// Dispatch plumbing
	queue := events.NewSignalQueue()
	clock := engine.NewTimeProvider()
	sched := engine.NewScheduler(clock, queue)

	renderer := render.NewRenderer(screen, library)
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	reg := status.NewRegistry()
	ctrl := dog.NewController(
		sched, clock, library,
		&audio.DirectiveSounds{Next: renderer, Manager: sounds},
		store,
		rand.New(rand.NewSource(seed)),
		reg,
	)
	sched.RegisterHandler(ctrl)
	sched.RegisterHandler(newSignalLogger())

	quit := make(chan struct{})
	renderer.OnClick = func() {
		sched.Push(events.Signal{Type: events.SignalClicked})
	}
	renderer.OnQuit = func() {
		select {
		case <-quit:
		default:
			close(quit)
		}
	}
	renderer.OnMute = func() { sounds.ToggleMute() }

	// Optional standalone activity sources
	if flagWorkspace != "" {
		watcher, err := watch.NewWatcher(sched, flagWorkspace)
		if err != nil {
			return fmt.Errorf("watching workspace: %w", err)
		}
		watcher.Start()
		defer watcher.Stop()
	}
	if err := store.Watch(); err != nil {
		core.Log().Warn("config watch unavailable", zap.Error(err))
	}

	// First directive goes out before dispatch starts racing with producers
	ctrl.Start()
	sched.Start()
	renderer.Start()

	if flagTask != "" {
		watch.NewTaskRunner(sched).Run(flagTask)
	}

	// Block until the user quits or the process is signaled
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-sigs:
	}

	renderer.Stop()
	sched.Stop()
	ctrl.Dispose()
	sounds.Cleanup()

	logCounters(reg)
	return nil
}

// debugLogPath places the debug log in the user cache directory
func debugLogPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "code-dog.log"
	}
	return filepath.Join(base, "code-dog", "debug.log")
}

// logCounters records the session's counters at shutdown
func logCounters(reg *status.Registry) {
	fields := make([]zap.Field, 0, reg.TotalCount())
	for key, val := range reg.Snapshot() {
		fields = append(fields, zap.Int64(key, val))
	}
	core.Log().Info("session counters", fields...)
}

// signalLogger is a debug tap that records every inbound signal
type signalLogger struct {
	log *zap.Logger
}

func newSignalLogger() *signalLogger {
	return &signalLogger{log: core.Log()}
}

func (sl *signalLogger) SignalTypes() []events.SignalType {
	return []events.SignalType{
		events.SignalEditChanged,
		events.SignalSaved,
		events.SignalEditorClosed,
		events.SignalActiveEditorChanged,
		events.SignalDiagnosticsChanged,
		events.SignalTaskStarted,
		events.SignalTaskEnded,
		events.SignalDebugStarted,
		events.SignalDebugEnded,
		events.SignalClicked,
	}
}

func (sl *signalLogger) HandleSignal(now time.Time, sig events.Signal) {
	sl.log.Debug("signal",
		zap.String("type", events.GetSignalName(sig.Type)),
		zap.Time("at", now),
	)
}
