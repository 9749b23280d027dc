package visualization

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/oubench/oubench/pkg/bench"
)

// Generator renders benchmark results as charts
type Generator struct{}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateDurationChart renders the per-trial total durations of a benchmark
// run as a PNG line chart, with a dashed overlay at the median. Rendering
// happens strictly after all timing has completed.
func (g *Generator) GenerateDurationChart(summary bench.Summary, filename string) error {
	totals := summary.TrialTotalsMs()
	if len(totals) < 2 {
		return fmt.Errorf("need at least 2 trials to chart, got %d", len(totals))
	}

	trialNumbers := make([]float64, len(totals))
	medianLine := make([]float64, len(totals))
	for i := range totals {
		trialNumbers[i] = float64(i + 1)
		medianLine[i] = summary.MedianMs
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("OU Benchmark: n=%d, mode=%s", summary.Config.N, summary.Config.Mode),
		Width:  1200,
		Height: 800,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
		},
		XAxis: chart.XAxis{
			Name: "Trial",
		},
		YAxis: chart.YAxis{
			Name: "Duration (ms)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Trial Duration (ms)",
				XValues: trialNumbers,
				YValues: totals,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1,
				},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("Median (%.3f ms)", summary.MedianMs),
				XValues: trialNumbers,
				YValues: medianLine,
				Style: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendThin(&graph),
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// DefaultChartFilename derives a chart path from the active mode
func DefaultChartFilename(mode string) string {
	return fmt.Sprintf("oubench_%s.png", mode)
}
