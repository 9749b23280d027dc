package bench

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/oubench/oubench/pkg/config"
	"github.com/oubench/oubench/pkg/rng"
)

// Fixed parameters of the simulated Ornstein-Uhlenbeck process. These are
// part of the cross-implementation contract and are never configurable.
const (
	horizon = 1.0 // total time T
	theta   = 1.0 // mean-reversion rate
	mu      = 0.0 // long-run mean
	sigma   = 0.1 // volatility
)

// sentinel defends the warmup loop against dead-code elimination: the
// checksum is compared against a value it can never take, and the losing
// branch prints. The compiler cannot prove the loop's results unused.
const sentinel = 123456789.0

// TrialRecord holds the stage and total durations of one timed iteration
type TrialRecord struct {
	Gen   time.Duration // noise generation
	Sim   time.Duration // OU recurrence
	Chk   time.Duration // checksum pass
	Total time.Duration
}

// Runner owns the benchmark buffers and executes warmup and timed trials.
// Both buffers are allocated once at construction so no allocation ever
// happens inside a timed region.
type Runner struct {
	cfg config.Config

	// Per-step constants derived from the process parameters
	dt         float64
	decay      float64 // 1 - theta*dt
	drift      float64 // theta*mu*dt
	noiseScale float64 // sigma*sqrt(dt)

	noise      []float64 // n-1 scaled Gaussian increments
	trajectory []float64 // n simulated values

	warmupSink io.Writer
}

// NewRunner creates a runner for the given configuration. The configuration
// must already be validated; NewRunner only derives constants and allocates.
func NewRunner(cfg config.Config) *Runner {
	dt := horizon / float64(cfg.N)
	return &Runner{
		cfg:        cfg,
		dt:         dt,
		decay:      1.0 - theta*dt,
		drift:      theta * mu * dt,
		noiseScale: sigma * math.Sqrt(dt),
		noise:      make([]float64, cfg.N-1),
		trajectory: make([]float64, cfg.N),
		warmupSink: os.Stderr,
	}
}

// Run executes the configured benchmark: optional noise pre-fill, warmup,
// then the timed trials, and returns the aggregated summary.
func (r *Runner) Run() Summary {
	// mode=ou times only the recurrence, so the noise buffer is filled once
	// here with a fresh generator pair, outside all timing including warmup.
	if r.cfg.Mode == config.ModeSimulate {
		prefillRng := rng.NewXorShift128(r.cfg.Seed)
		prefillNorm := rng.NewNormalPolar()
		r.generateNoise(prefillRng, prefillNorm)
	}

	r.warmup()

	// One generator pair across every timed trial: later trials consume
	// further into the same deterministic stream, never reseeding.
	gen := rng.NewXorShift128(r.cfg.Seed)
	norm := rng.NewNormalPolar()

	trials := make([]TrialRecord, 0, r.cfg.Runs)
	checksum := 0.0
	for i := 0; i < r.cfg.Runs; i++ {
		rec, sum := r.runTrial(gen, norm)
		trials = append(trials, rec)
		checksum += sum
	}

	return summarize(r.cfg, trials, checksum)
}

// warmup runs the active mode with a fresh generator pair seeded identically
// to the timed run, discarding all timings. This lets cache and branch
// predictor state stabilize before measurement.
func (r *Runner) warmup() {
	gen := rng.NewXorShift128(r.cfg.Seed)
	norm := rng.NewNormalPolar()

	for i := 0; i < r.cfg.Warmup; i++ {
		_, sum := r.runTrial(gen, norm)
		if sum == sentinel {
			fmt.Fprintln(r.warmupSink, "impossible")
		}
	}
}

// runTrial executes one iteration of the active mode, recording a monotonic
// timestamp at every stage boundary, and returns the record plus the
// iteration's checksum.
func (r *Runner) runTrial(gen *rng.XorShift128, norm *rng.NormalPolar) (TrialRecord, float64) {
	switch r.cfg.Mode {
	case config.ModeNoise:
		t0 := time.Now()
		r.generateNoise(gen, norm)
		t1 := time.Now()
		sum := sumBuffer(r.noise)
		t2 := time.Now()

		return TrialRecord{
			Gen:   t1.Sub(t0),
			Chk:   t2.Sub(t1),
			Total: t2.Sub(t0),
		}, sum

	case config.ModeSimulate:
		t0 := time.Now()
		r.simulate()
		t1 := time.Now()
		sum := sumBuffer(r.trajectory)
		t2 := time.Now()

		return TrialRecord{
			Sim:   t1.Sub(t0),
			Chk:   t2.Sub(t1),
			Total: t2.Sub(t0),
		}, sum

	default: // config.ModeFull
		t0 := time.Now()
		r.generateNoise(gen, norm)
		t1 := time.Now()
		r.simulate()
		t2 := time.Now()
		sum := sumBuffer(r.trajectory)
		t3 := time.Now()

		return TrialRecord{
			Gen:   t1.Sub(t0),
			Sim:   t2.Sub(t1),
			Chk:   t3.Sub(t2),
			Total: t3.Sub(t0),
		}, sum
	}
}

// generateNoise fills the noise buffer with scaled standard-normal draws
func (r *Runner) generateNoise(gen *rng.XorShift128, norm *rng.NormalPolar) {
	for i := range r.noise {
		r.noise[i] = r.noiseScale * norm.NextStandard(gen)
	}
}

// simulate runs the Euler-Maruyama discretization of the OU process over the
// current noise buffer
func (r *Runner) simulate() {
	x := 0.0
	r.trajectory[0] = x
	for i := 1; i < len(r.trajectory); i++ {
		x = r.decay*x + r.drift + r.noise[i-1]
		r.trajectory[i] = x
	}
}

func sumBuffer(buf []float64) float64 {
	s := 0.0
	for _, v := range buf {
		s += v
	}
	return s
}
