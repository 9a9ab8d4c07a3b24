// Package config holds the tunable numeric parameters for the pathgraph
// pipeline. All fields are optional pointers so a partial JSON file only
// overrides the values it names; anything omitted keeps its canonical
// default from Defaults().
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the canonical tuning defaults file shipped with the
// module, loaded by MustLoadDefaultConfig. Its values match Defaults().
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig mirrors every numeric constant named in the pipeline spec.
// The schema is stable across releases: new fields may be added, existing
// ones are never renamed, so saved configs keep working.
type TuningConfig struct {
	// VerticalDetector (l2vertical)
	WindowSize       *int     `json:"window_size,omitempty"`
	MinTotalZChange  *float64 `json:"min_total_z_change,omitempty"`
	ZChangeThreshold *float64 `json:"z_change_threshold,omitempty"`
	MinStairPoints   *int     `json:"min_stair_points,omitempty"`
	MergeGapMax      *int     `json:"merge_gap_max,omitempty"`
	ElevatorXYZRatio *float64 `json:"elevator_xy_z_ratio,omitempty"`

	// FloorSeparator (l3floors)
	FloorHeight            *float64 `json:"floor_height,omitempty"`
	MinPointsPerFloor      *int     `json:"min_points_per_floor,omitempty"`
	HistogramBinWidth      *float64 `json:"histogram_bin_width,omitempty"`
	MinHistogramBins       *int     `json:"min_histogram_bins,omitempty"`
	GaussianSigmaBins      *float64 `json:"gaussian_sigma_bins,omitempty"`
	SignificantBinFraction *float64 `json:"significant_bin_fraction,omitempty"`
	PeakGapBins            *int     `json:"peak_gap_bins,omitempty"`
	PeakSeparationFraction *float64 `json:"peak_separation_fraction,omitempty"`

	// Deduplicator (l4dedup)
	OverlapThreshold  *float64 `json:"overlap_threshold,omitempty"`
	DistanceThreshold *float64 `json:"distance_threshold,omitempty"`

	// PathFlattener (l5flatten)
	GapThreshold    *float64 `json:"gap_threshold,omitempty"`
	RDPEpsilon      *float64 `json:"rdp_epsilon,omitempty"`
	ResampleSpacing *float64 `json:"resample_spacing,omitempty"`

	// GraphBuilder (l6graph)
	JunctionAngleDegrees *float64 `json:"junction_angle_degrees,omitempty"`
	JunctionMinNeighbors *int     `json:"junction_min_neighbors,omitempty"`
	JunctionMergeRadius  *float64 `json:"junction_merge_radius,omitempty"`
	NodeSpacing          *float64 `json:"node_spacing,omitempty"`
	EdgeConnectionRadius *float64 `json:"edge_connection_radius,omitempty"`
}

func ptrInt(v int) *int         { return &v }
func ptrFloat64(v float64) *float64 { return &v }

// Defaults returns the canonical production tuning values. Every numeric
// constant in the pipeline specification has a home here.
func Defaults() *TuningConfig {
	return &TuningConfig{
		WindowSize:       ptrInt(10),
		MinTotalZChange:  ptrFloat64(1.5),
		ZChangeThreshold: ptrFloat64(0.05),
		MinStairPoints:   ptrInt(5),
		MergeGapMax:      ptrInt(10),
		ElevatorXYZRatio: ptrFloat64(1.0),

		FloorHeight:            ptrFloat64(3.0),
		MinPointsPerFloor:      ptrInt(10),
		HistogramBinWidth:      ptrFloat64(0.5),
		MinHistogramBins:       ptrInt(20),
		GaussianSigmaBins:      ptrFloat64(1.5),
		SignificantBinFraction: ptrFloat64(0.03),
		PeakGapBins:            ptrInt(2),
		PeakSeparationFraction: ptrFloat64(0.7),

		OverlapThreshold:  ptrFloat64(1.0),
		DistanceThreshold: ptrFloat64(0.5),

		GapThreshold:    ptrFloat64(5.0),
		RDPEpsilon:      ptrFloat64(0.5),
		ResampleSpacing: ptrFloat64(0.5),

		JunctionAngleDegrees: ptrFloat64(45.0),
		JunctionMinNeighbors: ptrInt(3),
		JunctionMergeRadius:  ptrFloat64(1.5),
		NodeSpacing:          ptrFloat64(1.0),
		EdgeConnectionRadius: ptrFloat64(3.0),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file and merges it over
// Defaults(). Fields omitted from the file retain their default value, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath relative to the current
// working directory, falling back to pure defaults when the file is
// absent. It never panics on a missing file, only on a malformed one.
func MustLoadDefaultConfig() *TuningConfig {
	cfg, err := LoadTuningConfig(DefaultConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults()
		}
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// Accessor helpers. Each returns the configured value, falling back to the
// canonical default if the field was left nil (e.g. a hand-built struct in
// a test).

func (c *TuningConfig) GetWindowSize() int {
	if c != nil && c.WindowSize != nil {
		return *c.WindowSize
	}
	return *Defaults().WindowSize
}

func (c *TuningConfig) GetMinTotalZChange() float64 {
	if c != nil && c.MinTotalZChange != nil {
		return *c.MinTotalZChange
	}
	return *Defaults().MinTotalZChange
}

func (c *TuningConfig) GetZChangeThreshold() float64 {
	if c != nil && c.ZChangeThreshold != nil {
		return *c.ZChangeThreshold
	}
	return *Defaults().ZChangeThreshold
}

func (c *TuningConfig) GetMinStairPoints() int {
	if c != nil && c.MinStairPoints != nil {
		return *c.MinStairPoints
	}
	return *Defaults().MinStairPoints
}

func (c *TuningConfig) GetMergeGapMax() int {
	if c != nil && c.MergeGapMax != nil {
		return *c.MergeGapMax
	}
	return *Defaults().MergeGapMax
}

func (c *TuningConfig) GetElevatorXYZRatio() float64 {
	if c != nil && c.ElevatorXYZRatio != nil {
		return *c.ElevatorXYZRatio
	}
	return *Defaults().ElevatorXYZRatio
}

func (c *TuningConfig) GetFloorHeight() float64 {
	if c != nil && c.FloorHeight != nil {
		return *c.FloorHeight
	}
	return *Defaults().FloorHeight
}

func (c *TuningConfig) GetMinPointsPerFloor() int {
	if c != nil && c.MinPointsPerFloor != nil {
		return *c.MinPointsPerFloor
	}
	return *Defaults().MinPointsPerFloor
}

func (c *TuningConfig) GetHistogramBinWidth() float64 {
	if c != nil && c.HistogramBinWidth != nil {
		return *c.HistogramBinWidth
	}
	return *Defaults().HistogramBinWidth
}

func (c *TuningConfig) GetMinHistogramBins() int {
	if c != nil && c.MinHistogramBins != nil {
		return *c.MinHistogramBins
	}
	return *Defaults().MinHistogramBins
}

func (c *TuningConfig) GetGaussianSigmaBins() float64 {
	if c != nil && c.GaussianSigmaBins != nil {
		return *c.GaussianSigmaBins
	}
	return *Defaults().GaussianSigmaBins
}

func (c *TuningConfig) GetSignificantBinFraction() float64 {
	if c != nil && c.SignificantBinFraction != nil {
		return *c.SignificantBinFraction
	}
	return *Defaults().SignificantBinFraction
}

func (c *TuningConfig) GetPeakGapBins() int {
	if c != nil && c.PeakGapBins != nil {
		return *c.PeakGapBins
	}
	return *Defaults().PeakGapBins
}

func (c *TuningConfig) GetPeakSeparationFraction() float64 {
	if c != nil && c.PeakSeparationFraction != nil {
		return *c.PeakSeparationFraction
	}
	return *Defaults().PeakSeparationFraction
}

func (c *TuningConfig) GetOverlapThreshold() float64 {
	if c != nil && c.OverlapThreshold != nil {
		return *c.OverlapThreshold
	}
	return *Defaults().OverlapThreshold
}

func (c *TuningConfig) GetDistanceThreshold() float64 {
	if c != nil && c.DistanceThreshold != nil {
		return *c.DistanceThreshold
	}
	return *Defaults().DistanceThreshold
}

func (c *TuningConfig) GetGapThreshold() float64 {
	if c != nil && c.GapThreshold != nil {
		return *c.GapThreshold
	}
	return *Defaults().GapThreshold
}

func (c *TuningConfig) GetRDPEpsilon() float64 {
	if c != nil && c.RDPEpsilon != nil {
		return *c.RDPEpsilon
	}
	return *Defaults().RDPEpsilon
}

func (c *TuningConfig) GetResampleSpacing() float64 {
	if c != nil && c.ResampleSpacing != nil {
		return *c.ResampleSpacing
	}
	return *Defaults().ResampleSpacing
}

func (c *TuningConfig) GetJunctionAngleDegrees() float64 {
	if c != nil && c.JunctionAngleDegrees != nil {
		return *c.JunctionAngleDegrees
	}
	return *Defaults().JunctionAngleDegrees
}

func (c *TuningConfig) GetJunctionMinNeighbors() int {
	if c != nil && c.JunctionMinNeighbors != nil {
		return *c.JunctionMinNeighbors
	}
	return *Defaults().JunctionMinNeighbors
}

func (c *TuningConfig) GetJunctionMergeRadius() float64 {
	if c != nil && c.JunctionMergeRadius != nil {
		return *c.JunctionMergeRadius
	}
	return *Defaults().JunctionMergeRadius
}

func (c *TuningConfig) GetNodeSpacing() float64 {
	if c != nil && c.NodeSpacing != nil {
		return *c.NodeSpacing
	}
	return *Defaults().NodeSpacing
}

func (c *TuningConfig) GetEdgeConnectionRadius() float64 {
	if c != nil && c.EdgeConnectionRadius != nil {
		return *c.EdgeConnectionRadius
	}
	return *Defaults().EdgeConnectionRadius
}
