package log

import (
	"os"
	"path/filepath"
	"sort"

	"antsim.dev/internal/sim/simulator"
)

const ticksPrefix = "ticks"

func TicksDir(runDir string) string { return filepath.Join(runDir, "ticks") }

// TickLogger writes one compressed JSONL entry per simulated tick. Segments carry the run
// directory's name so they stay identifiable when copied out of the run.
type TickLogger struct{ w *JSONLZstdWriter }

func NewTickLogger(runDir string) *TickLogger {
	return &TickLogger{w: NewJSONLZstdWriter(TicksDir(runDir), ticksPrefix, runName(runDir))}
}

func (l *TickLogger) WriteTick(e simulator.TickLogEntry) error { return l.w.Write(e) }
func (l *TickLogger) Flush() error                              { return l.w.Flush() }
func (l *TickLogger) Close() error                              { return l.w.Close() }

func runName(runDir string) string {
	name := filepath.Base(filepath.Clean(runDir))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// ListTickFiles returns the tick segments in dir ordered by hour, then run.
func ListTickFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type found struct {
		seg  Segment
		path string
	}
	var segs []found
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		if seg, ok := ParseSegment(e.Name(), ticksPrefix); ok {
			segs = append(segs, found{seg: seg, path: filepath.Join(dir, e.Name())})
		}
	}
	sort.Slice(segs, func(i, j int) bool {
		if !segs[i].seg.Hour.Equal(segs[j].seg.Hour) {
			return segs[i].seg.Hour.Before(segs[j].seg.Hour)
		}
		return segs[i].seg.Run < segs[j].seg.Run
	})
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.path
	}
	return out, nil
}

// ReadTicks streams every tick entry in dir to fn, oldest segment first.
func ReadTicks(dir string, fn func(simulator.TickLogEntry) error) error {
	files, err := ListTickFiles(dir)
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := ReadJSONL(path, fn); err != nil {
			return err
		}
	}
	return nil
}
