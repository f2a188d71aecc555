package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pointmass/internal/control"
	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/flight"
	"github.com/san-kum/pointmass/internal/physics"
)

func sampleInfo() RunInfo {
	return RunInfo{
		Name:         "test",
		Integrator:   "euler",
		TFinal:       0.02,
		Dt:           0.01,
		Gravity:      9.80665,
		InitialState: []float64{66.9, 0, 0, 0},
		StateNames:   physics.StateNames,
		ControlNames: physics.ControlNames,
	}
}

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		Times: []float64{0.0, 0.01},
		Series: [][]float64{
			{66.9, 66.85},
			{0, 0.001},
			{0, 0},
			{0, 0.0005},
		},
		Controls: []dynamo.Control{{0, 1, 0.05}, {0, 1, 0.05}},
		Metrics:  map[string]float64{"peak_bank": 0.0005},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleInfo(), sampleResult())
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "test", meta.Name)
	assert.Equal(t, 2, meta.Samples)
	assert.Equal(t, 0.0005, meta.Metrics["peak_bank"])
	assert.Equal(t, physics.StateNames, meta.StateNames)

	result, err := st.LoadResult(runID)
	require.NoError(t, err)
	assert.Equal(t, sampleResult().Times, result.Times)
	assert.Equal(t, sampleResult().Series, result.Series)
	assert.Equal(t, sampleResult().Controls, result.Controls)
	assert.Equal(t, 1, result.StepsTaken)
}

func TestStoreRoundTripIsExact(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	profile := control.NewConstant(control.Input{Nx: 0.01, Nz: 1.05, P: 0.03})
	sc := flight.DefaultScenario()
	sc.TFinal = 2
	sc.Profile = profile
	tr, err := flight.Run(context.Background(), sc)
	require.NoError(t, err)

	runID, err := st.Save(sampleInfo(), tr.Result)
	require.NoError(t, err)

	loaded, err := st.LoadResult(runID)
	require.NoError(t, err)
	assert.Equal(t, tr.Result.Series, loaded.Series)
	assert.Equal(t, tr.Result.Times, loaded.Times)
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := st.Save(sampleInfo(), sampleResult())
	require.NoError(t, err)
	second, err := st.Save(sampleInfo(), sampleResult())
	require.NoError(t, err)

	// stray entries are ignored
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "empty"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("ghost")
	assert.ErrorIs(t, err, ErrNoRun)

	_, err = st.LoadResult("ghost")
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestStoreRejectsPathNames(t *testing.T) {
	root := t.TempDir()
	st := New(filepath.Join(root, "data"))
	require.NoError(t, st.Init())

	for _, name := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		info := sampleInfo()
		info.Name = name
		runID, err := st.Save(info, sampleResult())
		assert.ErrorIs(t, err, ErrInvalidRunName, "name %q", name)
		assert.Empty(t, runID)
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data", entries[0].Name())

	_, err = st.Load("../data")
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleInfo(), sampleResult())
	require.NoError(t, err)

	runDir := filepath.Join(tmpDir, runID)
	assert.FileExists(t, filepath.Join(runDir, "metadata.json"))
	assert.FileExists(t, filepath.Join(runDir, "states.csv"))

	data, err := os.ReadFile(filepath.Join(runDir, "states.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "time,v,gamma,psi,phi,nx,nz,p\n")
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleInfo(), sampleResult())
	require.NoError(t, err)
	meta, err := st.Load(runID)
	require.NoError(t, err)
	result, err := st.LoadResult(runID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, result))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, runID, data.ID)
	assert.Equal(t, 2, data.Samples)
	assert.Equal(t, []float64{66.9, 66.85}, data.States["v"])
	assert.Len(t, data.States, 4)
	assert.Equal(t, []float64{0, 1, 0.05}, data.Controls[1])
}
