package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // test binary path is set in TestMain
var testBinaryPath string

// TestMain builds the CLI binary once for the entire package and reuses it.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "sar-runner-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1) //nolint:gocritic // Mkdir failed, nothing to cleanup
	}
	defer os.RemoveAll(dir)

	bin := filepath.Join(dir, "sar-runner-test")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build test binary: %v\nOutput: %s\n", err, string(out))
		os.Exit(1) //nolint:gocritic // Binary failed, nothing to cleanup
	}
	testBinaryPath = bin

	code := m.Run()
	os.Exit(code)
}

func buildTestBinary(t *testing.T) string {
	t.Helper()
	if testBinaryPath == "" {
		t.Fatalf("test binary not built")
	}
	return testBinaryPath
}

// newCmd runs the binary with HOME pointed at an empty directory so a
// developer's own config never changes the outcome.
func newCmd(t *testing.T, args ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(buildTestBinary(t), args...)
	cmd.Env = append(os.Environ(),
		"HOME="+t.TempDir(),
		"SAR_RUNNER_CONFIG=",
		"SAR_RUNNER_SPEED=",
		"SAR_RUNNER_SPEED_UNIT=",
		"SAR_RUNNER_DISTANCE_UNIT=",
		"SAR_RUNNER_LOG_LEVEL=",
	)
	return cmd
}

type planJSON struct {
	Kind         string  `json:"kind"`
	Speed        string  `json:"speed"`
	TotalLengthM float64 `json:"total_length_m"`
	TotalSeconds int     `json:"total_seconds"`
	Legs         []struct {
		Leg     int    `json:"leg"`
		Bearing string `json:"bearing"`
		Seconds int    `json:"seconds"`
	} `json:"legs"`
}

func runPlanJSON(t *testing.T, args ...string) planJSON {
	t.Helper()
	cmd := newCmd(t, append([]string{"plan", "--json"}, args...)...)
	output, err := cmd.Output()
	require.NoError(t, err, "Output: %s", string(output))

	var got planJSON
	require.NoError(t, json.Unmarshal(output, &got), "Output should be valid JSON: %s", string(output))
	return got
}

func TestCLI_HelpOutput(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "root help",
			args:     []string{"--help"},
			contains: []string{"sar-runner", "search pattern", "plan", "--config", "--speed", "--speed-unit", "--log-file", "--verbose"},
		},
		{
			name:     "plan help",
			args:     []string{"plan", "--help"},
			contains: []string{"--pattern", "--sweep-width", "--leg-length", "--legs", "--multiplier", "--iterations", "--start", "--distance-unit", "--json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := newCmd(t, tt.args...).CombinedOutput()
			require.NoError(t, err)
			for _, expected := range tt.contains {
				assert.Contains(t, string(output), expected)
			}
		})
	}
}

func TestCLI_Version(t *testing.T) {
	output, err := newCmd(t, "--version").CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "sar-runner dev")
	assert.Contains(t, string(output), "commit: none")
}

func TestCLI_PlanDefaultsToSector(t *testing.T) {
	output, err := newCmd(t, "plan").CombinedOutput()
	require.NoError(t, err, "Output: %s", string(output))
	assert.Contains(t, string(output), "SECTOR SEARCH")
	assert.Contains(t, string(output), "sector(sweep=200,multiplier=1,iterations=1,start=0)")
	assert.Contains(t, string(output), "Total:")
}

func TestCLI_PlanDistanceUnit(t *testing.T) {
	output, err := newCmd(t, "plan", "--pattern", "cla", "--distance-unit", "nm").CombinedOutput()
	require.NoError(t, err, "Output: %s", string(output))
	assert.Contains(t, string(output), "0.54 nm")
	assert.Contains(t, string(output), "Total: 9 legs, 3.13 nm")
}

func TestCLI_PlanCreepingLineAheadJSON(t *testing.T) {
	got := runPlanJSON(t, "--pattern", "cla")
	assert.Equal(t, "creeping-line-ahead", got.Kind)
	require.Len(t, got.Legs, 9)
	assert.Equal(t, "090", got.Legs[0].Bearing)
	assert.Equal(t, 49, got.Legs[0].Seconds)
	assert.InDelta(t, 5800.0, got.TotalLengthM, 1e-9)
	assert.Equal(t, 285, got.TotalSeconds)
}

func TestCLI_PlanSpeedFlags(t *testing.T) {
	got := runPlanJSON(t, "--pattern", "cla", "--speed", "80")
	assert.Equal(t, "80.0 knots", got.Speed)
	assert.Equal(t, 24, got.Legs[0].Seconds)
	assert.Equal(t, 5*24+4*5, got.TotalSeconds)

	got = runPlanJSON(t, "--pattern", "ss", "--iterations", "2", "--speed", "10", "--speed-unit", "m/s")
	assert.Equal(t, "expanding-square", got.Kind)
	assert.Equal(t, "10.0 m/s", got.Speed)
	assert.Len(t, got.Legs, 4)
	assert.Equal(t, 20, got.Legs[0].Seconds)
}

func TestCLI_PlanFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "speed:\n  value: 10\n  unit: knots\npattern:\n  kind: cla\n  sweep_width: 100\n  leg_length: 500\n  legs: 2\n  start_direction: 90\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	got := runPlanJSON(t, "--config", path)
	assert.Equal(t, "creeping-line-ahead", got.Kind)
	assert.Equal(t, "10.0 knots", got.Speed)
	require.Len(t, got.Legs, 3)
	assert.Equal(t, "180", got.Legs[0].Bearing)
	assert.Equal(t, "090", got.Legs[1].Bearing)
}

func TestCLI_ErrorHandling(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		errorMsg string
	}{
		{name: "invalid command", args: []string{"invalid-command"}, errorMsg: "unknown command"},
		{name: "unknown pattern", args: []string{"plan", "--pattern", "zigzag"}, errorMsg: "unknown pattern kind"},
		{name: "unknown speed unit", args: []string{"plan", "--speed-unit", "furlongs"}, errorMsg: "invalid config"},
		{name: "unknown distance unit", args: []string{"plan", "--distance-unit", "furlongs"}, errorMsg: "invalid config"},
		{name: "bad parameters", args: []string{"plan", "--pattern", "cla", "--legs", "0"}, errorMsg: "invalid pattern parameters"},
		{name: "missing config file", args: []string{"plan", "--config", "/nonexistent/sar-runner.yaml"}, errorMsg: "read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := newCmd(t, tt.args...).CombinedOutput()
			require.Error(t, err)
			assert.Contains(t, string(output), tt.errorMsg)
		})
	}
}
