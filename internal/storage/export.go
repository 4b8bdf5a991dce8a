package storage

import (
	"encoding/json"
	"io"
)

// ExportData is the flattened JSON form of a stored run.
type ExportData struct {
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Solver      string             `json:"solver"`
	Granularity string             `json:"granularity"`
	FrameDelta  float64            `json:"frame_delta"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes one stored run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, states [][]float64, times []float64) error {
	data := ExportData{
		ID:          meta.ID,
		Model:       meta.Model,
		Solver:      meta.Solver,
		Granularity: meta.Granularity,
		FrameDelta:  meta.FrameDelta,
		Duration:    meta.Duration,
		Steps:       len(times),
		Times:       times,
		States:      states,
		Metrics:     meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
