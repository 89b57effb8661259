// Package profiler captures CPU profiles and execution traces when the game
// loop stalls, and wraps whole-run CPU profiling for the headless runner.
package profiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrCooldown is returned when a capture was requested too soon after the last one
	ErrCooldown = errors.New("capture on cooldown")

	// ErrBusy is returned while a capture is still running
	ErrBusy = errors.New("already profiling")
)

// Profiler handles automatic performance profiling
type Profiler struct {
	mu              sync.Mutex
	logger          *zap.Logger
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	done            chan struct{}
}

// New creates a profiler writing into dir
func New(dir string, logger *zap.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		logger:          logger,
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
	}, nil
}

// SetCapture overrides the capture length and the minimum gap between captures
func (p *Profiler) SetCapture(duration, cooldown time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.captureDuration = duration
	p.captureCooldown = cooldown
}

// CaptureProfile starts a CPU profile and a trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return ErrBusy
	}
	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrCooldown, since.Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	p.done = make(chan struct{})

	baseName := fmt.Sprintf("stall-%s-%s", time.Now().Format("20060102-150405"), reason)
	duration := p.captureDuration
	done := p.done

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
			close(done)
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName, duration); err != nil {
				p.logger.Warn("cpu profile failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName, duration); err != nil {
				p.logger.Warn("trace failed", zap.Error(err))
			}
		}()
		wg.Wait()

		p.analyzeProfile(baseName)
	}()

	return nil
}

// Wait blocks until the running capture, if any, has finished
func (p *Profiler) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string, duration time.Duration) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(duration)
	pprof.StopCPUProfile()

	p.logger.Info("cpu profile saved", zap.String("path", profilePath))
	return nil
}

func (p *Profiler) captureTrace(baseName string, duration time.Duration) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(duration)
	trace.Stop()

	p.logger.Info("trace saved", zap.String("path", tracePath))
	return nil
}

// analyzeProfile logs the profile size and memory stats at capture time
func (p *Profiler) analyzeProfile(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Warn("could not analyze profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("performance capture",
		zap.String("profile", profilePath),
		zap.Int64("sizeBytes", info.Size()),
		zap.Uint64("allocKB", m.Alloc/1024),
		zap.Uint64("sysKB", m.Sys/1024),
		zap.Uint32("numGC", m.NumGC),
		zap.Uint64("heapObjects", m.HeapObjects),
		zap.String("view", "go tool pprof -http=:8080 "+profilePath),
	)
}

// StartCPU profiles the whole process into path until the returned stop
// function is called
func StartCPU(path string) (stop func() error, err error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() error {
		pprof.StopCPUProfile()
		return file.Close()
	}, nil
}

// SpikeDetector asks the profiler for a capture when a tick runs long
type SpikeDetector struct {
	profiler  *Profiler
	threshold time.Duration
	warmup    int
	ticks     int
}

// NewSpikeDetector ignores the first warmup ticks, when loading dominates
func NewSpikeDetector(p *Profiler, threshold time.Duration, warmup int) *SpikeDetector {
	return &SpikeDetector{profiler: p, threshold: threshold, warmup: warmup}
}

// Observe records one tick's duration and reports whether a capture started
func (d *SpikeDetector) Observe(elapsed time.Duration, reason func() string) bool {
	d.ticks++
	if d.profiler == nil || d.ticks <= d.warmup || elapsed < d.threshold {
		return false
	}
	return d.profiler.CaptureProfile(reason()) == nil
}
