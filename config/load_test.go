package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pkpd/config"
	"github.com/katalvlaran/pkpd/simulate"
	"github.com/katalvlaran/pkpd/standard"
)

const twoCompartmentYAML = `
model:
  name: oral_emax
  compartments: 2
  dose: 100
  volumes: [10, 25]
  clearance: 2
  route: {key: oral, params: {ka: 1.2, f: 0.8}}
  pd: {key: emax, params: {emax: 1, ec50: 4}}
simulation:
  end: 48
  points: 97
  timeout: 10s
  parameters:
    - {name: CL, value: 3}
  sweep:
    - set: [{name: Vc, value: 5}]
    - set: [{name: Vc, value: 20}]
log:
  level: debug
  format: json
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Model.Compartments)
	assert.Equal(t, "iv-bolus", cfg.Model.Route.Key)
	assert.Equal(t, 0.5, cfg.Model.Clearance)
	assert.Nil(t, cfg.Model.PD)
	assert.Equal(t, 24.0, cfg.Simulation.End)
	assert.Equal(t, 25, cfg.Simulation.Points)
	assert.Equal(t, 30*time.Second, cfg.Simulation.Timeout)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	cfg, err := config.Load(writeFile(t, twoCompartmentYAML))
	require.NoError(t, err)

	assert.Equal(t, "oral_emax", cfg.Model.Name)
	assert.Equal(t, []float64{10, 25}, cfg.Model.Volumes)
	assert.Equal(t, map[string]float64{"ka": 1.2, "f": 0.8}, cfg.Model.Route.Params)
	require.NotNil(t, cfg.Model.PD)
	assert.Equal(t, "emax", cfg.Model.PD.Key)
	assert.Equal(t, 10*time.Second, cfg.Simulation.Timeout)
	assert.Equal(t, map[string]float64{"CL": 3}, cfg.Simulation.Overrides())
	assert.Equal(t, []map[string]float64{{"Vc": 5}, {"Vc": 20}}, cfg.Simulation.SweepParameters())

	sc, err := cfg.Model.Standard()
	require.NoError(t, err)
	assert.Equal(t, standard.Oral{Ka: 1.2, F: standard.Bioavailability(0.8)}, sc.Route)
	assert.Equal(t, standard.Emax{Emax: 1, EC50: 4}, sc.PD)

	m, err := standard.Build(sc)
	require.NoError(t, err)
	assert.Equal(t, "oral_emax", m.Name())

	times, err := cfg.Simulation.TimeGrid()
	require.NoError(t, err)
	require.Len(t, times, 97)
	assert.Equal(t, 0.0, times[0])
	assert.Equal(t, 0.5, times[1])
	assert.Equal(t, 48.0, times[96])
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("PKPD_MODEL_DOSE", "250")
	t.Setenv("PKPD_SIMULATION_POINTS", "5")

	cfg, err := config.Load(writeFile(t, twoCompartmentYAML))
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Model.Dose)
	assert.Equal(t, 5, cfg.Simulation.Points)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrRead)

	cases := map[string]string{
		"compartments": "model: {compartments: 4}",
		"negative dose": "model: {dose: -1}",
		"volume count":  "model: {compartments: 2, volumes: [1]}",
		"pair count":    "model: {compartments: 3, distribution: [{out: 1, back: 1}]}",
		"grid":          "simulation: {start: 10, end: 5}",
		"points":        "simulation: {points: 1}",
		"log level":     "log: {level: verbose}",
		"log format":    "log: {format: xml}",
		"override name": "simulation: {parameters: [{value: 1}]}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestStandardRejectsUnknownKeys(t *testing.T) {
	mc := config.ModelConfig{Compartments: 1, Route: config.KeyedConfig{Key: "inhaled"}}
	_, err := mc.Standard()
	assert.ErrorIs(t, err, standard.ErrUnknownDoseRoute)

	mc.Route.Key = "iv-bolus"
	mc.PD = &config.KeyedConfig{Key: "linear", Params: map[string]float64{"slope": 1, "ec50": 2}}
	_, err = mc.Standard()
	assert.ErrorIs(t, err, standard.ErrUnexpectedParameter)
}

func TestTimeGridExplicit(t *testing.T) {
	sc := config.SimulationConfig{Times: []float64{0, 1, 3}}
	times, err := sc.TimeGrid()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 3}, times)

	sc.Times = []float64{0, 2, 1}
	_, err = sc.TimeGrid()
	assert.ErrorIs(t, err, simulate.ErrDecreasingTimeGrid)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := config.LogConfig{Level: "warn", Format: "json"}.Logger(&buf)
	require.NoError(t, err)
	l.Info("dropped")
	l.WithField("model", "m").Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "m", entry["model"])

	_, err = config.LogConfig{Level: "loud"}.Logger(&buf)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
