package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

const (
	hourLayout = "2006-01-02-15"
	segmentExt = ".jsonl.zst"
)

// Segment names one hourly file of a JSONL stream: <prefix>[-<run>]-<hour>.jsonl.zst.
type Segment struct {
	Prefix string
	Run    string
	Hour   time.Time
}

func (s Segment) Name() string {
	hour := s.Hour.UTC().Format(hourLayout)
	if s.Run == "" {
		return s.Prefix + "-" + hour + segmentExt
	}
	return s.Prefix + "-" + s.Run + "-" + hour + segmentExt
}

// ParseSegment is the inverse of Segment.Name. The hour is read from the right, so run ids
// may contain dashes.
func ParseSegment(name, prefix string) (Segment, bool) {
	rest, ok := strings.CutPrefix(name, prefix+"-")
	if !ok {
		return Segment{}, false
	}
	rest, ok = strings.CutSuffix(rest, segmentExt)
	if !ok || len(rest) < len(hourLayout) {
		return Segment{}, false
	}
	hour, err := time.Parse(hourLayout, rest[len(rest)-len(hourLayout):])
	if err != nil {
		return Segment{}, false
	}
	run := rest[:len(rest)-len(hourLayout)]
	if run != "" {
		run, ok = strings.CutSuffix(run, "-")
		if !ok || run == "" {
			return Segment{}, false
		}
	}
	return Segment{Prefix: prefix, Run: run, Hour: hour}, true
}

// JSONLZstdWriter appends JSON lines to hourly zstd segments in dir. Reopening an hour that
// already has a segment appends a new zstd frame to it.
type JSONLZstdWriter struct {
	dir    string
	prefix string
	run    string
	now    func() time.Time

	mu  sync.Mutex
	cur *segmentFile
}

type segmentFile struct {
	hour time.Time
	f    *os.File
	zw   *zstd.Encoder
	bw   *bufio.Writer
}

func NewJSONLZstdWriter(dir, prefix, run string) *JSONLZstdWriter {
	return &JSONLZstdWriter{dir: dir, prefix: prefix, run: run, now: time.Now}
}

// Write appends v as one line, rotating when the UTC hour changes.
func (w *JSONLZstdWriter) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	hour := w.now().UTC().Truncate(time.Hour)
	if w.cur == nil || !w.cur.hour.Equal(hour) {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}
	_, err = w.cur.bw.Write(b)
	return err
}

// Flush pushes buffered lines into the compressor.
func (w *JSONLZstdWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cur == nil {
		return nil
	}
	return w.cur.bw.Flush()
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) rotateLocked(hour time.Time) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	seg := Segment{Prefix: w.prefix, Run: w.run, Hour: hour}
	f, err := os.OpenFile(filepath.Join(w.dir, seg.Name()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.cur = &segmentFile{hour: hour, f: f, zw: zw, bw: bufio.NewWriterSize(zw, 128*1024)}
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	if w.cur == nil {
		return nil
	}
	s := w.cur
	w.cur = nil
	return errors.Join(s.bw.Flush(), s.zw.Close(), s.f.Close())
}

// ReadJSONL decodes every non-empty line of the zstd segment at path and hands it to fn in
// file order. A non-nil error from fn stops the scan and is returned as is.
func ReadJSONL[T any](path string, fn func(T) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer zr.Close()

	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	for line := 1; sc.Scan(); line++ {
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("%s:%d: %w", filepath.Base(path), line, err)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return sc.Err()
}
