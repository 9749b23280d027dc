package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/oubench/oubench/pkg/config"
)

// Summary aggregates the results of one benchmark invocation
type Summary struct {
	Config config.Config
	Trials []TrialRecord

	TotalS   float64 // sum of all per-trial totals, seconds
	AvgMs    float64
	MedianMs float64
	MinMs    float64
	MaxMs    float64

	// Per-stage totals across all trials, seconds
	GenS float64
	SimS float64
	ChkS float64

	// Running sum of every per-trial checksum. Only a guard against the
	// computation being optimized away; not a statistic.
	Checksum float64
}

// summarize computes the robust statistics over the recorded trials
func summarize(cfg config.Config, trials []TrialRecord, checksum float64) Summary {
	totals := make([]float64, len(trials))
	var genS, simS, chkS, totalS float64
	for i, rec := range trials {
		totals[i] = rec.Total.Seconds()
		genS += rec.Gen.Seconds()
		simS += rec.Sim.Seconds()
		chkS += rec.Chk.Seconds()
		totalS += rec.Total.Seconds()
	}

	return Summary{
		Config:   cfg,
		Trials:   trials,
		TotalS:   totalS,
		AvgMs:    averageFloat64(totals) * 1000,
		MedianMs: medianFloat64(totals) * 1000,
		MinMs:    minFloat64(totals) * 1000,
		MaxMs:    maxFloat64(totals) * 1000,
		GenS:     genS,
		SimS:     simS,
		ChkS:     chkS,
		Checksum: checksum,
	}
}

// TrialTotalsMs returns the per-trial total durations in milliseconds, in
// trial order. Used by the duration chart.
func (s Summary) TrialTotalsMs() []float64 {
	totals := make([]float64, len(s.Trials))
	for i, rec := range s.Trials {
		totals[i] = rec.Total.Seconds() * 1000
	}
	return totals
}

// WriteText writes the human-readable report. The line structure matches the
// companion implementations so runs can be diffed side by side; the checksum
// is printed at full float64 precision.
func (s Summary) WriteText(w io.Writer) {
	fmt.Fprintf(w, "== OU benchmark (Go, unified algorithms) ==\n")
	fmt.Fprintf(w, "n=%d runs=%d warmup=%d seed=%d mode=%s\n",
		s.Config.N, s.Config.Runs, s.Config.Warmup, s.Config.Seed, s.Config.Mode)
	fmt.Fprintf(w, "total_s=%.6f\n", s.TotalS)
	fmt.Fprintf(w, "avg_ms=%.6f median_ms=%.6f min_ms=%.6f max_ms=%.6f\n",
		s.AvgMs, s.MedianMs, s.MinMs, s.MaxMs)
	fmt.Fprintf(w, "breakdown_s gen_normals=%.6f simulate=%.6f checksum=%.6f\n",
		s.GenS, s.SimS, s.ChkS)
	fmt.Fprintf(w, "checksum=%.17g\n", s.Checksum)
}

// fixed6 marshals a timing value with exactly six decimal places, so the
// JSON bytes line up with the companion implementations (which print %.6f)
// and runs can be diffed without parsing.
type fixed6 float64

func (f fixed6) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(f), 'f', 6, 64), nil
}

// jsonReport fixes the key set and nesting shared by every implementation of
// this benchmark; automated comparison tooling diffs these fields by name.
type jsonReport struct {
	Language  string        `json:"language"`
	Mode      string        `json:"mode"`
	N         int           `json:"n"`
	Runs      int           `json:"runs"`
	Warmup    int           `json:"warmup"`
	Seed      uint32        `json:"seed"`
	TotalS    fixed6        `json:"total_s"`
	AvgMs     fixed6        `json:"avg_ms"`
	MedianMs  fixed6        `json:"median_ms"`
	MinMs     fixed6        `json:"min_ms"`
	MaxMs     fixed6        `json:"max_ms"`
	Breakdown jsonBreakdown `json:"breakdown_s"`
	Checksum  float64       `json:"checksum"`
}

type jsonBreakdown struct {
	GenNormals fixed6 `json:"gen_normals"`
	Simulate   fixed6 `json:"simulate"`
	Checksum   fixed6 `json:"checksum"`
}

// WriteJSON writes the single-line JSON report. Timing fields carry six
// fixed decimals like the text report; the checksum keeps full round-trip
// precision.
func (s Summary) WriteJSON(w io.Writer) error {
	report := jsonReport{
		Language: "Go",
		Mode:     s.Config.Mode,
		N:        s.Config.N,
		Runs:     s.Config.Runs,
		Warmup:   s.Config.Warmup,
		Seed:     s.Config.Seed,
		TotalS:   fixed6(s.TotalS),
		AvgMs:    fixed6(s.AvgMs),
		MedianMs: fixed6(s.MedianMs),
		MinMs:    fixed6(s.MinMs),
		MaxMs:    fixed6(s.MaxMs),
		Breakdown: jsonBreakdown{
			GenNormals: fixed6(s.GenS),
			Simulate:   fixed6(s.SimS),
			Checksum:   fixed6(s.ChkS),
		},
		Checksum: s.Checksum,
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
