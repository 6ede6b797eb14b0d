package fieldillum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopemetrics/scopemetrics/analysis"
	"github.com/scopemetrics/scopemetrics/ndarray"
	"github.com/scopemetrics/scopemetrics/schema"
)

func TestRunOnUniformImage(t *testing.T) {
	a := New()
	require.NoError(t, a.Bind("image", ndarray.Ones(ndarray.Float64, 10, 10)))

	require.Empty(t, a.ListUnmetRequirements())
	require.True(t, a.Run())

	results := a.Results()
	require.Len(t, results, 5)

	// Every artifact satisfies its structural invariants.
	for _, art := range results {
		assert.NoError(t, art.Validate(), "artifact %s", art.ArtifactName())
	}

	norm, ok := results[0].(*schema.Image2D)
	require.True(t, ok)
	assert.Equal(t, 10, norm.Y)
	assert.Equal(t, 10, norm.X)
	assert.Len(t, norm.Data, 100)
	// A uniform field normalizes to 100 percent everywhere.
	assert.Equal(t, 100.0, norm.Data[0])
	assert.Equal(t, 100.0, norm.Data[99])

	metrics, ok := results[4].(*schema.Table)
	require.True(t, ok)
	mean, ok := metrics.Column("mean_intensity")
	require.True(t, ok)
	assert.Equal(t, 1.0, mean.Values[0])
	std, ok := metrics.Column("std_intensity")
	require.True(t, ok)
	assert.Equal(t, 0.0, std.Values[0])
	ratio, ok := metrics.Column("min_max_ratio")
	require.True(t, ok)
	assert.Equal(t, 1.0, ratio.Values[0])
}

func TestRunRefusesWithoutImage(t *testing.T) {
	a := New()

	assert.Equal(t, []string{"image"}, a.ListUnmetRequirements())
	assert.False(t, a.Run())
	assert.Empty(t, a.Results())
}

func TestRunSoftFailsOnSaturation(t *testing.T) {
	// All pixels at the 8-bit ceiling: fully saturated.
	img := ndarray.New(ndarray.Float64, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(255, y, x)
		}
	}

	a := New()
	require.NoError(t, a.Bind("image", img))
	require.NoError(t, a.Bind("bit_depth", 8))

	assert.False(t, a.Run())
	assert.Empty(t, a.Results())
}

func TestSaturationSkippedWithoutBitDepth(t *testing.T) {
	img := ndarray.New(ndarray.Float64, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(255, y, x)
		}
	}

	a := New()
	require.NoError(t, a.Bind("image", img))
	assert.True(t, a.Run())
}

func TestRegister(t *testing.T) {
	r := analysis.NewRegistry()
	require.NoError(t, Register(r))
	assert.True(t, r.Has(Name))

	inst, err := r.New(Name)
	require.NoError(t, err)
	assert.Equal(t, []string{"image"}, inst.ListUnmetRequirements())

	// Double registration is rejected.
	assert.Error(t, Register(r))
}

func TestExecuteThroughContract(t *testing.T) {
	a := New()
	require.NoError(t, a.Bind("image", ndarray.Ones(ndarray.Float64, 8, 8)))

	unmet, ok := analysis.Execute(a)
	assert.Empty(t, unmet)
	assert.True(t, ok)
	assert.Equal(t, analysis.StateExecuted, a.State())
}
