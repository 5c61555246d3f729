package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"antsim.dev/internal/persistence/indexdb"
	persistlog "antsim.dev/internal/persistence/log"
	"antsim.dev/internal/sim/readings"
	"antsim.dev/internal/sim/runner"
	"antsim.dev/internal/sim/scenario"
	"antsim.dev/internal/sim/simulator"
	"antsim.dev/internal/sim/tuning"
)

func main() {
	var (
		tuningPath     = flag.String("tuning", "", "path to tuning.yaml (empty: built-in defaults)")
		dataDir        = flag.String("data", "./data", "runtime data directory")
		runID          = flag.String("run", "run_1", "run id (subdirectory of <data>/runs)")
		maxSteps       = flag.Uint64("steps", 0, "stop after this many simulation steps (0: run until signalled)")
		speed          = flag.Int("speed", 0, "simulation speed 1..8 (0: tuning start_speed)")
		disableDB      = flag.Bool("disable_db", false, "disable the sqlite tick index")
		disableTickLog = flag.Bool("disable_ticklog", false, "disable the compressed tick log")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[antsim] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(strings.TrimSpace(*tuningPath))
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}
	if err := overrideSpeed(&tune, *speed); err != nil {
		logger.Fatalf("-speed: %v", err)
	}

	sim, err := scenario.Build(tune, readings.Empty{})
	if err != nil {
		logger.Fatalf("build scenario: %v", err)
	}
	logger.Printf("scenario ants=%d food_cells=%d homes=%d speed=%d update_hz=%d",
		sim.NumAnts(), len(sim.World().Food), len(sim.World().Homes), tune.StartSpeed, tune.UpdateHz)

	runDir := filepath.Join(*dataDir, "runs", *runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		logger.Fatalf("create run dir: %v", err)
	}

	var sinks tickSinks
	if !*disableTickLog {
		tl := persistlog.NewTickLogger(runDir)
		defer tl.Close()
		sinks = append(sinks, tl)
	}
	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(runDir, "index.sqlite"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer func() {
			st := idx.Stats()
			if err := idx.Close(); err != nil {
				logger.Printf("close index: %v", err)
			}
			logger.Printf("index written=%d dropped=%d", idx.Stats().WrittenTotal, st.DropTickTotal)
		}()
		if digest, err := idx.UpsertTuning(tune); err != nil {
			logger.Printf("index: upsert tuning: %v", err)
		} else {
			logger.Printf("index: tuning digest=%s", digest)
		}
		sinks = append(sinks, idx)
	}
	if len(sinks) > 0 {
		sim.SetTickLogger(sinks)
	}

	ctx, cancel := signalContext()
	defer cancel()

	st := &progressStepper{
		sim:      sim,
		every:    uint64(tune.LogEveryTicks),
		maxSteps: *maxSteps,
		done:     cancel,
		logf:     logger.Printf,
	}
	r := runner.New(st, tune.StartSpeed)
	go forwardControlSignals(ctx, r.Control(), logger)

	if err := r.Run(ctx, tune.UpdateHz); err != nil && err != context.Canceled {
		logger.Printf("runner stopped: %v", err)
	}
	logger.Printf("stopped at tick=%d digest=%s", sim.Tick(), sim.World().Digest())
}

// overrideSpeed applies a non-zero -speed flag and re-validates the tuning.
func overrideSpeed(tune *tuning.Tuning, speed int) error {
	if speed == 0 {
		return nil
	}
	tune.StartSpeed = speed
	return tune.Validate()
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

// forwardControlSignals maps SIGUSR1 to pause/resume and SIGUSR2 to a speed increase.
func forwardControlSignals(ctx context.Context, ctl chan<- runner.Command, logger *log.Logger) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(ch)
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			cmd := signalCommand(sig)
			if cmd == 0 {
				continue
			}
			logger.Printf("signal %v", sig)
			select {
			case ctl <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}
}

func signalCommand(sig os.Signal) runner.Command {
	switch sig {
	case syscall.SIGUSR1:
		return runner.CmdTogglePause
	case syscall.SIGUSR2:
		return runner.CmdSpeedUp
	default:
		return 0
	}
}

var _ simulator.TickLogger = tickSinks(nil)
