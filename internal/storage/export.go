package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pointmass/internal/dynamo"
)

// ExportData is the JSON document for one run. States is keyed by state
// name; each series is aligned with Times.
type ExportData struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Integrator string               `json:"integrator"`
	Dt         float64              `json:"dt"`
	TInitial   float64              `json:"t_initial"`
	TFinal     float64              `json:"t_final"`
	Samples    int                  `json:"samples"`
	Times      []float64            `json:"times"`
	States     map[string][]float64 `json:"states"`
	Controls   [][]float64          `json:"controls"`
	Metrics    map[string]float64   `json:"metrics"`
}

func NewExportData(meta *RunMetadata, result *dynamo.Result) ExportData {
	data := ExportData{
		ID:         meta.ID,
		Name:       meta.Name,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		TInitial:   meta.TInitial,
		TFinal:     meta.TFinal,
		Samples:    result.Len(),
		Times:      result.Times,
		States:     make(map[string][]float64, len(result.Series)),
		Controls:   make([][]float64, len(result.Controls)),
		Metrics:    result.Metrics,
	}
	for i, s := range result.Series {
		data.States[columnName(meta.StateNames, "x", i)] = s
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}
	return data
}

func ExportJSON(w io.Writer, meta *RunMetadata, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}
