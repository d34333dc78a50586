package performance

import (
	"log"
	"runtime"

	"github.com/dustin/go-humanize"
)

// GoMemoryStats is a subset of runtime.MemStats, in bytes.
type GoMemoryStats struct {
	Alloc      uint64
	TotalAlloc uint64
	Sys        uint64
	NumGC      uint32
}

// GetGoMemory reads Go runtime memory statistics.
func GetGoMemory() GoMemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return GoMemoryStats{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}

func (s GoMemoryStats) String() string {
	return "alloc=" + humanize.IBytes(s.Alloc) +
		" sys=" + humanize.IBytes(s.Sys) +
		" total=" + humanize.IBytes(s.TotalAlloc) +
		" gc=" + humanize.Comma(int64(s.NumGC))
}

// LogStats logs the frame report and memory usage on one line.
func LogStats(m *FrameMonitor) {
	log.Printf("Stats: %s | Memory: %s", m.Report(), GetGoMemory())
}
