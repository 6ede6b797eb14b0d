package fieldillum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/scopemetrics/scopemetrics/ndarray"
	"github.com/scopemetrics/scopemetrics/schema"
)

// normIntensityMatrix scales every pixel to a percentage of the maximum
// intensity, rounded to whole percent.
func normIntensityMatrix(img *ndarray.Array) *ndarray.Array {
	shape := img.Shape()
	max := img.Max()
	out := ndarray.New(ndarray.Float64, shape...)
	if max == 0 {
		return out
	}
	for y := 0; y < shape[0]; y++ {
		for x := 0; x < shape[1]; x++ {
			out.Set(math.Round(img.At(y, x)/max*100), y, x)
		}
	}
	return out
}

// maxIntensityRegion locates the region of maximum intensity: every pixel
// within one count of the maximum. It reports the pixel count, the integer
// center of mass and the maximum value.
type regionInfo struct {
	pixels  int
	centerY int
	centerX int
	max     float64
}

func maxIntensityRegion(img *ndarray.Array) regionInfo {
	shape := img.Shape()
	max := img.Max()
	threshold := max - 1

	var n int
	var sumY, sumX float64
	for y := 0; y < shape[0]; y++ {
		for x := 0; x < shape[1]; x++ {
			if img.At(y, x) > threshold {
				n++
				sumY += float64(y)
				sumX += float64(x)
			}
		}
	}

	return regionInfo{
		pixels:  n,
		centerY: int(sumY / float64(n)),
		centerX: int(sumX / float64(n)),
		max:     max,
	}
}

// lineProfile samples pixel values along the line from (y0, x0) to
// (yf, xf) inclusive, using Bresenham's algorithm.
func lineProfile(img *ndarray.Array, y0, x0, yf, xf int) []float64 {
	dy := abs(yf - y0)
	dx := abs(xf - x0)
	sy, sx := 1, 1
	if y0 > yf {
		sy = -1
	}
	if x0 > xf {
		sx = -1
	}

	var values []float64
	y, x := y0, x0
	err := dx - dy
	for {
		values = append(values, img.At(y, x))
		if y == yf && x == xf {
			return values
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// profileAxis returns positions centered on the image middle for a profile
// of n samples: ..., -2, -1, 1, 2, ... with zero excluded.
func profileAxis(n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		p := i - n/2
		if p >= 0 {
			p++
		}
		out[i] = p
	}
	return out
}

// segmentNames in emission order.
var segmentNames = []string{"vertical", "horizontal", "diag_down", "diag_up"}

// intensityProfiles samples the mid-vertical, mid-horizontal and both
// diagonal segments and emits them as one long-format table with segment,
// position and intensity columns. Segments of a non-square image differ in
// length, so a column-per-segment layout would be ragged.
func intensityProfiles(img *ndarray.Array) (*schema.Table, error) {
	shape := img.Shape()
	ymax, xmax := shape[0]-1, shape[1]-1
	ymid, xmid := (ymax+1)/2, (xmax+1)/2

	segments := [][]float64{
		lineProfile(img, 0, xmid, ymax, xmid),
		lineProfile(img, ymid, 0, ymid, xmax),
		lineProfile(img, 0, 0, ymax, xmax),
		lineProfile(img, ymax, 0, 0, xmax),
	}

	var segCol, posCol, valCol []any
	for i, seg := range segments {
		axis := profileAxis(len(seg))
		for j, v := range seg {
			segCol = append(segCol, segmentNames[i])
			posCol = append(posCol, axis[j])
			valCol = append(valCol, v)
		}
	}

	return schema.TableFromColumns("intensity_profiles",
		"pixel intensities along the mid-vertical, mid-horizontal and diagonal segments",
		[]schema.Column{
			{Name: "segment", Values: segCol},
			{Name: "position", Values: posCol},
			{Name: "intensity", Values: valCol},
		})
}

// profileStatistics samples a 3x3 grid of probe pixels (corners, edge
// midpoints and center) and reports each intensity and its ratio to the
// maximum. The center entry is replaced by the maximum itself, labeled with
// where it was found.
func profileStatistics(img *ndarray.Array) (*schema.Table, error) {
	shape := img.Shape()
	rows, cols := shape[0], shape[1]
	max := img.Max()

	// First occurrence in row-major order wins when the maximum is not
	// unique.
	maxY, maxX := 0, 0
search:
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if img.At(y, x) == max {
				maxY, maxX = y, x
				break search
			}
		}
	}

	ys := []int{0, rows / 2, rows - 1}
	xs := []int{0, cols / 2, cols - 1}
	labels := []string{
		"top-left corner",
		"upper-middle pixel",
		"top-right corner",
		"left-middle pixel",
		"",
		"right-middle pixel",
		"bottom-left corner",
		"bottom-middle pixel",
		"bottom-right corner",
	}
	labels[4] = fmt.Sprintf("maximum found at [%d %d]", maxY, maxX)

	var locCol, intCol, relCol []any
	i := 0
	for _, y := range ys {
		for _, x := range xs {
			v := round2(img.At(y, x))
			r := round2(v / max)
			if i == 4 {
				v = max
				r = 1.0
			}
			locCol = append(locCol, labels[i])
			intCol = append(intCol, v)
			relCol = append(relCol, r)
			i++
		}
	}

	return schema.TableFromColumns("profile_statistics",
		"intensity of nine probe pixels and their ratio to the maximum",
		[]schema.Column{
			{Name: "location", Values: locCol},
			{Name: "intensity", Values: intCol},
			{Name: "intensity_relative_to_max", Values: relCol},
		})
}

// homogeneityMetrics summarizes field flatness: mean and standard deviation
// of the pixel intensities, the min/max ratio, and how far the brightest
// region sits from the image center as a fraction of the half-diagonal.
func homogeneityMetrics(img *ndarray.Array, region regionInfo) (*schema.Table, error) {
	flat := img.Float64s()
	mean := stat.Mean(flat, nil)
	std := stat.StdDev(flat, nil)

	minMaxRatio := 0.0
	if region.max != 0 {
		minMaxRatio = img.Min() / region.max
	}

	shape := img.Shape()
	cy, cx := float64(shape[0]-1)/2, float64(shape[1]-1)/2
	dist := math.Hypot(float64(region.centerY)-cy, float64(region.centerX)-cx)
	halfDiag := math.Hypot(cy, cx)
	centering := 1.0
	if halfDiag > 0 {
		centering = 1 - dist/halfDiag
	}

	return schema.TableFromColumns("homogeneity_metrics",
		"summary statistics of field illumination homogeneity",
		[]schema.Column{
			{Name: "mean_intensity", Values: []any{mean}},
			{Name: "std_intensity", Values: []any{std}},
			{Name: "min_max_ratio", Values: []any{minMaxRatio}},
			{Name: "centering_accuracy", Values: []any{centering}},
		})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
