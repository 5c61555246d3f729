package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	persistlog "antsim.dev/internal/persistence/log"
	"antsim.dev/internal/sim/readings"
	"antsim.dev/internal/sim/scenario"
	"antsim.dev/internal/sim/simulator"
	"antsim.dev/internal/sim/tuning"
)

func main() {
	var (
		tuningPath = flag.String("tuning", "", "path to the tuning.yaml the run was started with (empty: defaults)")
		runDir     = flag.String("run_dir", "", "run directory containing ticks/ticks-*.jsonl.zst")
		toTick     = flag.Uint64("to_tick", 0, "stop at tick (inclusive, optional)")
	)
	flag.Parse()

	if *runDir == "" {
		fmt.Fprintln(os.Stderr, "missing -run_dir")
		os.Exit(2)
	}

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(1)
	}
	sim, err := scenario.Build(tune, readings.Empty{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "build scenario:", err)
		os.Exit(1)
	}

	checked, err := verify(sim, persistlog.TicksDir(*runDir), *toTick)
	if err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}
	fmt.Printf("replay ok: checked=%d ticks ants=%d run=%s\n", checked, sim.NumAnts(), filepath.Base(*runDir))
}

var errDone = errors.New("done")

// verify steps sim alongside the recorded tick log and compares digests tick by tick.
func verify(sim *simulator.Simulator, ticksDir string, toTick uint64) (uint64, error) {
	var checked uint64
	err := persistlog.ReadTicks(ticksDir, func(entry simulator.TickLogEntry) error {
		if toTick != 0 && entry.Tick > toTick {
			return errDone
		}
		if want := sim.Tick() + 1; entry.Tick != want {
			return fmt.Errorf("tick mismatch: want=%d got=%d", want, entry.Tick)
		}
		tick, gotDigest := sim.StepOnce()
		if gotDigest != entry.Digest {
			return fmt.Errorf("digest mismatch at tick %d: got=%s want=%s", tick, gotDigest, entry.Digest)
		}
		if entry.Ants != sim.NumAnts() {
			return fmt.Errorf("ant count mismatch at tick %d: got=%d want=%d", tick, sim.NumAnts(), entry.Ants)
		}
		checked++
		return nil
	})
	if err == errDone {
		err = nil
	}
	if err == nil && checked == 0 {
		err = fmt.Errorf("no ticks found in %s", ticksDir)
	}
	return checked, err
}
