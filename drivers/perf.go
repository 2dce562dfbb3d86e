package drivers

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// DefaultPerfDriver implements PerfDriver with wall-clock timers, named
// after original_source's DefaultPerfDriver. It does not attempt to read
// real CPU feature flags or hardware perf counters (neither is exposed
// portably by the Go standard library); GetCPUFeatures always reports 0,
// which cores are required to treat as "no accelerated paths available".
type DefaultPerfDriver struct {
	mu       sync.Mutex
	counters map[int]*perfCounter
	next     int
	start    time.Time
}

type perfCounter struct {
	name     string
	started  time.Time
	total    time.Duration
	running  bool
}

func NewDefaultPerfDriver() *DefaultPerfDriver {
	return &DefaultPerfDriver{
		counters: make(map[int]*perfCounter),
		start:    time.Now(),
	}
}

func (d *DefaultPerfDriver) GetTimeUsec() int64 {
	return time.Since(d.start).Microseconds()
}

func (d *DefaultPerfDriver) GetCPUFeatures() uint64 {
	return 0
}

func (d *DefaultPerfDriver) GetPerfCounter() int64 {
	return time.Now().UnixNano()
}

func (d *DefaultPerfDriver) Register(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	handle := d.next
	d.counters[handle] = &perfCounter{name: name}
	return handle
}

func (d *DefaultPerfDriver) Start(handle int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.counters[handle]; ok {
		c.started = time.Now()
		c.running = true
	}
}

func (d *DefaultPerfDriver) Stop(handle int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok := d.counters[handle]; ok && c.running {
		c.total += time.Since(c.started)
		c.running = false
	}
}

func (d *DefaultPerfDriver) Log() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.counters {
		log.Printf("[perf] %s: %s (GOMAXPROCS=%d)", c.name, c.total, runtime.GOMAXPROCS(0))
	}
}
