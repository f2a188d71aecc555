package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/pointmass/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var (
	ErrNoRun          = errors.New("storage: run not found")
	ErrInvalidRunName = errors.New("storage: invalid run name")
)

// validName reports whether name can be used as a single directory
// component under the store.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Name         string    `json:"name"`
	Integrator   string    `json:"integrator"`
	TInitial     float64   `json:"t_initial"`
	TFinal       float64   `json:"t_final"`
	Dt           float64   `json:"dt"`
	Gravity      float64   `json:"gravity"`
	InitialState []float64 `json:"initial_state"`
	StateNames   []string  `json:"state_names"`
	ControlNames []string  `json:"control_names"`
}

type RunMetadata struct {
	RunInfo
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *dynamo.Result) (string, error) {
	if !validName(info.Name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunName, info.Name)
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		RunInfo:   info,
		ID:        runID,
		Timestamp: now,
		Samples:   result.Len(),
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), info, result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, info RunInfo, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	for i := range result.Series {
		header = append(header, columnName(info.StateNames, "x", i))
	}
	numControls := 0
	if len(result.Controls) > 0 {
		numControls = len(result.Controls[0])
	}
	for i := 0; i < numControls; i++ {
		header = append(header, columnName(info.ControlNames, "u", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for k := range result.Times {
		row := []string{formatFloat(result.Times[k])}
		for _, s := range result.Series {
			row = append(row, formatFloat(s[k]))
		}
		for j := 0; j < numControls; j++ {
			val := 0.0
			if k < len(result.Controls) && j < len(result.Controls[k]) {
				val = result.Controls[k][j]
			}
			row = append(row, formatFloat(val))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func columnName(names []string, prefix string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s%d", prefix, i)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if !validName(runID) {
		return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadResult reads a run's samples back into a Result. State columns are
// split from control columns using the metadata's state names.
func (s *Store) LoadResult(runID string) (*dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("storage: %s: missing header", runID)
	}

	nStates := len(meta.StateNames)
	nCols := len(records[0]) - 1
	if nStates == 0 || nStates > nCols {
		nStates = nCols
	}
	rows := records[1:]

	result := &dynamo.Result{
		Times:    make([]float64, len(rows)),
		Series:   make([][]float64, nStates),
		Controls: make([]dynamo.Control, len(rows)),
		Metrics:  meta.Metrics,
	}
	for i := range result.Series {
		result.Series[i] = make([]float64, len(rows))
	}

	for k, record := range rows {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s row %d: %w", runID, k+1, err)
			}
			vals[j] = v
		}
		result.Times[k] = vals[0]
		for i := 0; i < nStates; i++ {
			result.Series[i][k] = vals[1+i]
		}
		result.Controls[k] = dynamo.Control(vals[1+nStates:])
	}
	if len(rows) > 0 {
		result.StepsTaken = len(rows) - 1
	}

	return result, nil
}
