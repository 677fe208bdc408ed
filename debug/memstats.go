package debug

// Memory logging enabled when config.Debug is true. Go heap stats are logged
// next to the process resident set so native growth (decoded TIFF buffers,
// Tk photos) can be told apart from heap growth.

import (
	"log/slog"
	"runtime"
	"time"
)

// Snapshot is one reading of process memory.
type Snapshot struct {
	Goroutines int
	HeapAlloc  uint64
	HeapInuse  uint64
	HeapSys    uint64
	NextGC     uint64
	NumGC      uint32
	RSS        uint64 // 0 when the platform query failed
}

// ReadSnapshot samples runtime and OS memory counters.
func ReadSnapshot() (Snapshot, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Snapshot{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		HeapInuse:  ms.HeapInuse,
		HeapSys:    ms.HeapSys,
		NextGC:     ms.NextGC,
		NumGC:      ms.NumGC,
	}
	rss, err := residentSetSize()
	s.RSS = rss
	return s, err
}

// Attrs renders the snapshot as slog attributes.
func (s Snapshot) Attrs() []any {
	return []any{
		slog.Int("goroutines", s.Goroutines),
		slog.Uint64("heap_alloc", s.HeapAlloc),
		slog.Uint64("heap_inuse", s.HeapInuse),
		slog.Uint64("heap_sys", s.HeapSys),
		slog.Uint64("next_gc", s.NextGC),
		slog.Uint64("num_gc", uint64(s.NumGC)),
		slog.Uint64("rss", s.RSS),
	}
}

// LogMemStats logs a single snapshot. Extra key/value pairs are appended,
// e.g. the movie that was just processed.
func LogMemStats(logger *slog.Logger, args ...any) {
	if logger == nil {
		return
	}
	s, err := ReadSnapshot()
	if err != nil {
		logger.Debug("memlog: rss query failed", slog.String("err", err.Error()))
	}
	logger.Info("memstats", append(s.Attrs(), args...)...)
}

// StartMemLogger launches a goroutine that logs memory stats every interval
// until stop is closed. RSS failures are logged once and suppressed.
func StartMemLogger(interval time.Duration, logger *slog.Logger, stop <-chan struct{}) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
			s, err := ReadSnapshot()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("memstats", s.Attrs()...)
		}
	}()
}
