package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const bolusYAML = `
model:
  dose: 10
  volumes: [2]
simulation:
  end: 4
  points: 5
log:
  level: error
`

func TestRunCSV(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", writeConfig(t, bolusYAML)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	records, err := csv.NewReader(&stdout).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"run", "time", "Drug@CENTRAL"}, records[0])
	assert.Equal(t, []string{"0", "0", "5"}, records[1])

	last, err := strconv.ParseFloat(records[5][2], 64)
	require.NoError(t, err)
	assert.InEpsilon(t, 5*0.36787944117144233, last, 1e-5, "exp(-CL/V·4)")
}

func TestRunJSONSweep(t *testing.T) {
	body := strings.Replace(bolusYAML, "simulation:\n", "simulation:\n  sweep:\n    - set: [{name: CL, value: 1}]\n    - set: [{name: CL, value: 2}]\n", 1)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", writeConfig(t, body), "-format", "json"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var runs []jsonRun
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, 1, runs[1].Run)
	assert.Equal(t, "one_compartment_model", runs[0].Model)
	a := runs[0].Series["Drug@CENTRAL"]
	b := runs[1].Series["Drug@CENTRAL"]
	require.Len(t, a, 5)
	assert.Greater(t, a[4], b[4], "larger clearance decays faster")
}

func TestRunMetrics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", writeConfig(t, bolusYAML), "-metrics"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), `pkpd_simulations_total{status="ok"} 1`)
	assert.Contains(t, stderr.String(), "pkpd_rhs_evaluations_total")
}

func TestRunFlagErrors(t *testing.T) {
	cases := [][]string{
		{"-format", "xml"},
		{"-nope"},
		{"extra"},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run(args, &stdout, &stderr), args)
		assert.Empty(t, stdout.String())
	}
}

func TestRunFailures(t *testing.T) {
	cases := map[string]string{
		"missing file": filepath.Join(t.TempDir(), "absent.yaml"),
		"invalid":      writeConfig(t, "model: {compartments: 7}"),
		"unknown pd":   writeConfig(t, "model: {pd: {key: hill}}"),
		"bad override": writeConfig(t, "simulation: {parameters: [{name: nope, value: 1}]}\nlog: {level: error}"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, 1, run([]string{"-config", path}, &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}
