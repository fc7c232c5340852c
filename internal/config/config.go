// Package config centralizes every calibratable tolerance used across the
// pipeline (§9 of the design: "expose them to allow calibration").
package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config carries every numeric tolerance the components consult. Values are
// in PDF points unless noted, and default to the literal constants the
// pipeline was derived from.
type Config struct {
	// Component A / geometry
	MinLineLength float64 `yaml:"min_line_length"` // degenerate-line filter

	// Component B — views
	ViewRowThreshold    float64 `yaml:"view_row_threshold"`
	ViewLabelPad        float64 `yaml:"view_label_pad"`
	InfoPanelMargin     float64 `yaml:"info_panel_margin"`
	InfoPanelXTolerance float64 `yaml:"info_panel_x_tolerance"`
	InfoPanelMinCluster int     `yaml:"info_panel_min_cluster"`
	SubtitleRadiusX     float64 `yaml:"subtitle_radius_x"`
	SubtitleRadiusY     float64 `yaml:"subtitle_radius_y"`
	ScaleSearchRadiusX  float64 `yaml:"scale_search_radius_x"`
	ScaleSearchRadiusY  float64 `yaml:"scale_search_radius_y"`

	// Component C — grids
	MinGridLineLength   float64 `yaml:"min_grid_line_length"`
	GridOrientationTolDeg float64 `yaml:"grid_orientation_tolerance_deg"`
	GridMaxAssocDistance  float64 `yaml:"grid_max_association_distance"`

	// Component D — dimensions
	DimLineSearchRadius float64 `yaml:"dim_line_search_radius"`

	// Component G — matching
	PointToMM             float64 `yaml:"point_to_mm"`
	GridDistanceTolerance float64 `yaml:"grid_distance_tolerance"`
	RepeatChainTolerance  float64 `yaml:"repeat_chain_tolerance"`
	PitchUniformityTol    float64 `yaml:"pitch_uniformity_tolerance"`
	BayCountDivisionTol   float64 `yaml:"bay_count_division_tolerance"`
	BayCountFallbackTol   float64 `yaml:"bay_count_fallback_tolerance"`
	MultiSpanTolerance    float64 `yaml:"multi_span_tolerance"`
	PitchTimesCountTol    float64 `yaml:"pitch_times_count_tolerance"`
	GridLineMinLength     float64 `yaml:"grid_line_min_length"`
	GridLineClusterTol    float64 `yaml:"grid_line_cluster_tolerance"`
	MultiSpanFactors      []int   `yaml:"multi_span_factors"`

	// Component H — reconstruction
	PurlinsPerSlope int `yaml:"purlins_per_slope"`

	// Component I — takeoff
	TakeoffGroupTolerance float64 `yaml:"takeoff_group_tolerance"` // mm

	// Component J — leader tracing
	LeaderNearRadius    float64 `yaml:"leader_near_radius"`
	LeaderSnapTolerance float64 `yaml:"leader_snap_tolerance"`
	LeaderMinTipLength  float64 `yaml:"leader_min_tip_length"`
	ThinStrokeWidth     float64 `yaml:"thin_stroke_width"`  // e.g. dashed purlins
	ThickStrokeWidth    float64 `yaml:"thick_stroke_width"` // e.g. solid frame members
	StrokeWidthBand     float64 `yaml:"stroke_width_band"`
	StructuralMinLength float64 `yaml:"structural_min_length"`
	OrientationSearchRadius float64 `yaml:"orientation_search_radius"`

	// Component K — catalog
	SteelDensity float64 `yaml:"steel_density"` // kg per mm² per meter
}

// DefaultConfig returns the literal constants the pipeline was built around.
func DefaultConfig() *Config {
	return &Config{
		MinLineLength: 0.5,

		ViewRowThreshold:    60.0,
		ViewLabelPad:        30.0,
		InfoPanelMargin:     20.0,
		InfoPanelXTolerance: 50.0,
		InfoPanelMinCluster: 5,
		SubtitleRadiusX:     250.0,
		SubtitleRadiusY:     40.0,
		ScaleSearchRadiusX:  200.0,
		ScaleSearchRadiusY:  50.0,

		MinGridLineLength:     50.0,
		GridOrientationTolDeg: 10.0,
		GridMaxAssocDistance:  100.0,

		DimLineSearchRadius: 40.0,

		PointToMM:             25.4 / 72.0,
		GridDistanceTolerance: 0.03,
		RepeatChainTolerance:  0.05,
		PitchUniformityTol:    0.1,
		BayCountDivisionTol:   0.15,
		BayCountFallbackTol:   0.05,
		MultiSpanTolerance:    0.03,
		PitchTimesCountTol:    0.05,
		GridLineMinLength:     50.0,
		GridLineClusterTol:    5.0,
		MultiSpanFactors:      []int{2, 3},

		PurlinsPerSlope: 4,

		TakeoffGroupTolerance: 10.0,

		LeaderNearRadius:        15.0,
		LeaderSnapTolerance:     3.0,
		LeaderMinTipLength:      5.0,
		ThinStrokeWidth:         0.30,
		ThickStrokeWidth:        0.42,
		StrokeWidthBand:         0.05,
		StructuralMinLength:     150.0,
		OrientationSearchRadius: 15.0,

		SteelDensity: 7.85e-3,
	}
}

// LoadCalibration overlays a YAML calibration file onto the default
// tolerances, letting a deployment recalibrate for a house CAD style
// without a rebuild. Missing fields keep their default value.
func LoadCalibration(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
