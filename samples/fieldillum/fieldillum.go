// Package fieldillum implements the field illumination homogeneity analysis.
//
// It consumes a single 2D acquisition of a uniform fluorescent sample and
// reports how evenly the field is illuminated: a normalized intensity
// image, the location and extent of the brightest region, intensity
// profiles along the center lines and diagonals, and summary statistics.
package fieldillum

import (
	"log/slog"
	"math"

	"github.com/scopemetrics/scopemetrics/analysis"
	"github.com/scopemetrics/scopemetrics/ndarray"
	"github.com/scopemetrics/scopemetrics/schema"
)

// Name is the registry name of this analysis.
const Name = "field_illumination"

// Analysis reports on field illumination homogeneity for one image.
type Analysis struct {
	*analysis.Core
	logger *slog.Logger
}

// New creates a field illumination analysis with its requirements declared.
func New() *Analysis {
	a := &Analysis{
		Core:   analysis.NewCore("field illumination homogeneity report for a single acquisition"),
		logger: slog.Default(),
	}

	// Requirement declaration cannot fail here: names are unique literals
	// and defaults match their declared types.
	_ = a.AddDataRequirement("image", "acquisition of a uniform fluorescent sample", analysis.ArrayOf(2))
	_ = a.AddMetadataRequirement("bit_depth", "camera bit depth", analysis.Int,
		analysis.WithUnits("bits"), analysis.Optional())
	_ = a.AddMetadataRequirement("threshold", "maximum tolerated percentage of saturated pixels", analysis.Int,
		analysis.WithDefault(10))

	return a
}

// Register adds the analysis to the given registry, normally
// analysis.ImageAnalyses.
func Register(r *analysis.Registry) error {
	return r.Register(Name, func() analysis.Analysis { return New() })
}

// Run executes the analysis. It returns false when requirements are unmet
// or the image is too saturated to evaluate.
func (a *Analysis) Run() bool {
	if unmet := a.ListUnmetRequirements(); len(unmet) > 0 {
		a.logger.Error("requirements not met", "unmet", unmet)
		return false
	}

	v, err := a.DataValue("image")
	if err != nil {
		a.logger.Error("reading image requirement", "error", err)
		return false
	}
	img := v.(*ndarray.Array)

	if a.saturated(img) {
		a.logger.Info("image is saturated, skipping analysis")
		return false
	}

	norm, err := schema.ImageFromArray(normIntensityMatrix(img),
		"norm_intensity_profile",
		"pixel intensities scaled to percent of the maximum", "", nil)
	if err != nil {
		a.logger.Error("building normalized intensity image", "error", err)
		return false
	}
	a.AppendOutput(norm)

	region := maxIntensityRegion(img)
	regionTable, err := schema.TableFromColumns("max_intensity_region",
		"extent and center of mass of the brightest region",
		[]schema.Column{
			{Name: "nb_pixels", Values: []any{region.pixels}},
			{Name: "center_of_mass_y", Values: []any{region.centerY}},
			{Name: "center_of_mass_x", Values: []any{region.centerX}},
			{Name: "max_intensity", Values: []any{region.max}},
		})
	if err != nil {
		a.logger.Error("building max intensity region table", "error", err)
		return false
	}
	a.AppendOutput(regionTable)

	profiles, err := intensityProfiles(img)
	if err != nil {
		a.logger.Error("building intensity profiles", "error", err)
		return false
	}
	a.AppendOutput(profiles)

	stats, err := profileStatistics(img)
	if err != nil {
		a.logger.Error("building profile statistics", "error", err)
		return false
	}
	a.AppendOutput(stats)

	metrics, err := homogeneityMetrics(img, region)
	if err != nil {
		a.logger.Error("building homogeneity metrics", "error", err)
		return false
	}
	a.AppendOutput(metrics)

	return true
}

// saturated reports whether the fraction of pixels at the sensor ceiling
// exceeds the threshold. Without a bound bit depth the ceiling is unknown
// and the check is skipped.
func (a *Analysis) saturated(img *ndarray.Array) bool {
	bd, err := a.MetadataValue("bit_depth")
	if err != nil {
		return false
	}
	bitDepth := toInt(bd)
	if bitDepth <= 0 {
		return false
	}

	thr := 10
	if tv, err := a.MetadataValue("threshold"); err == nil {
		thr = toInt(tv)
	}

	ceiling := math.Pow(2, float64(bitDepth)) - 1
	var n int
	for _, p := range img.Float64s() {
		if p >= ceiling {
			n++
		}
	}
	percent := float64(n) / float64(img.Len()) * 100

	if percent > float64(thr) {
		a.logger.Debug("saturation check failed",
			"saturated_percent", percent, "threshold", thr, "bit_depth", bitDepth)
		return true
	}
	return false
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	default:
		return 0
	}
}
