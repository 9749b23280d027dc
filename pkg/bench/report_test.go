package bench

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/oubench/oubench/pkg/config"
)

func sampleSummary() Summary {
	cfg := config.Default()
	cfg.N = 1000
	cfg.Runs = 2
	cfg.Warmup = 0

	trials := []TrialRecord{
		{Gen: 2 * time.Millisecond, Sim: time.Millisecond, Chk: 500 * time.Microsecond, Total: 3500 * time.Microsecond},
		{Gen: 3 * time.Millisecond, Sim: time.Millisecond, Chk: 500 * time.Microsecond, Total: 4500 * time.Microsecond},
	}
	return summarize(cfg, trials, 12.345678901234567)
}

func TestWriteTextFormat(t *testing.T) {
	var buf bytes.Buffer
	sampleSummary().WriteText(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 report lines, got %d:\n%s", len(lines), buf.String())
	}

	if lines[0] != "== OU benchmark (Go, unified algorithms) ==" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "n=1000 runs=2 warmup=0 seed=1 mode=full" {
		t.Errorf("unexpected parameter line: %q", lines[1])
	}
	if lines[2] != "total_s=0.008000" {
		t.Errorf("unexpected total line: %q", lines[2])
	}
	if lines[3] != "avg_ms=4.000000 median_ms=4.000000 min_ms=3.500000 max_ms=4.500000" {
		t.Errorf("unexpected stats line: %q", lines[3])
	}
	if lines[4] != "breakdown_s gen_normals=0.005000 simulate=0.002000 checksum=0.001000" {
		t.Errorf("unexpected breakdown line: %q", lines[4])
	}
	if lines[5] != "checksum=12.345678901234567" {
		t.Errorf("unexpected checksum line: %q", lines[5])
	}
}

func TestWriteJSONSingleLine(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleSummary().WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Errorf("expected exactly one newline-terminated line, got %q", out)
	}
}

func TestWriteJSONFixedDecimalTiming(t *testing.T) {
	// Timing fields must serialize with exactly six decimals so JSON output
	// is byte-comparable with the companion implementations, which print
	// them as %.6f.
	var buf bytes.Buffer
	if err := sampleSummary().WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	out := buf.String()
	for _, part := range []string{
		`"total_s":0.008000`,
		`"avg_ms":4.000000`,
		`"median_ms":4.000000`,
		`"min_ms":3.500000`,
		`"max_ms":4.500000`,
		`"gen_normals":0.005000`,
		`"simulate":0.002000`,
		`"breakdown_s":{"gen_normals":0.005000,"simulate":0.002000,"checksum":0.001000}`,
	} {
		if !strings.Contains(out, part) {
			t.Errorf("JSON output missing %s:\n%s", part, out)
		}
	}
}

func TestWriteJSONKeySet(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleSummary().WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	// The key set is the cross-implementation contract for automated diffing
	topKeys := []string{
		"language", "mode", "n", "runs", "warmup", "seed",
		"total_s", "avg_ms", "median_ms", "min_ms", "max_ms",
		"breakdown_s", "checksum",
	}
	for _, key := range topKeys {
		if _, ok := parsed[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	if len(parsed) != len(topKeys) {
		t.Errorf("expected %d top-level keys, got %d", len(topKeys), len(parsed))
	}

	breakdown, ok := parsed["breakdown_s"].(map[string]any)
	if !ok {
		t.Fatalf("breakdown_s is not an object: %T", parsed["breakdown_s"])
	}
	for _, key := range []string{"gen_normals", "simulate", "checksum"} {
		if _, ok := breakdown[key]; !ok {
			t.Errorf("missing breakdown_s key %q", key)
		}
	}

	if parsed["language"] != "Go" {
		t.Errorf("language: expected Go, got %v", parsed["language"])
	}
	if parsed["mode"] != "full" {
		t.Errorf("mode: expected full, got %v", parsed["mode"])
	}
	if parsed["checksum"] != 12.345678901234567 {
		t.Errorf("checksum lost precision: got %v", parsed["checksum"])
	}
}

func TestSummarizeBreakdownSums(t *testing.T) {
	s := sampleSummary()

	if math.Abs(s.GenS-0.005) > 1e-12 {
		t.Errorf("gen total: expected 0.005, got %v", s.GenS)
	}
	if math.Abs(s.SimS-0.002) > 1e-12 {
		t.Errorf("sim total: expected 0.002, got %v", s.SimS)
	}
	if math.Abs(s.ChkS-0.001) > 1e-12 {
		t.Errorf("chk total: expected 0.001, got %v", s.ChkS)
	}
	if math.Abs(s.TotalS-0.008) > 1e-12 {
		t.Errorf("total: expected 0.008, got %v", s.TotalS)
	}
}
