package main

import (
	"fmt"
	"os"

	"github.com/oubench/oubench/pkg/bench"
	"github.com/oubench/oubench/pkg/config"
	"github.com/oubench/oubench/pkg/visualization"
)

func main() {
	parser := config.NewParser()
	cfg, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.ShowHelp {
		parser.ShowDetailedHelp(os.Stdout)
		return
	}

	runner := bench.NewRunner(*cfg)
	summary := runner.Run()

	switch cfg.Output {
	case config.OutputJSON:
		if err := summary.WriteJSON(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		summary.WriteText(os.Stdout)
	}

	if cfg.EnableGraph {
		filename := cfg.ChartFile
		if filename == "" {
			filename = visualization.DefaultChartFilename(cfg.Mode)
		}
		if err := visualization.NewGenerator().GenerateDurationChart(summary, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to generate chart: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Chart saved to %s\n", filename)
		}
	}
}
