package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopemetrics/scopemetrics/ndarray"
	"github.com/scopemetrics/scopemetrics/schema"
)

// meanIntensity is a minimal concrete analysis used to exercise the
// contract: one required image, one defaulted threshold, one table output.
type meanIntensity struct {
	*Core
}

func newMeanIntensity() *meanIntensity {
	a := &meanIntensity{Core: NewCore("mean pixel intensity of the input image")}
	if err := a.AddDataRequirement("image", "input image", ArrayOf(2)); err != nil {
		panic(err)
	}
	if err := a.AddMetadataRequirement("threshold", "saturation threshold", Int, WithDefault(10)); err != nil {
		panic(err)
	}
	return a
}

func (a *meanIntensity) Run() bool {
	if len(a.ListUnmetRequirements()) > 0 {
		return false
	}

	v, err := a.DataValue("image")
	if err != nil {
		return false
	}
	img := v.(*ndarray.Array)

	sum := 0.0
	for _, p := range img.Float64s() {
		sum += p
	}
	mean := sum / float64(img.Len())

	tbl, err := schema.TableFromColumns("mean_intensity", "mean pixel intensity", []schema.Column{
		{Name: "mean", Values: []any{mean}},
	})
	if err != nil {
		return false
	}
	a.AppendOutput(tbl)
	return true
}

func TestAnalysisEndToEnd(t *testing.T) {
	a := newMeanIntensity()

	// Before binding the image, the one hard requirement is reported and
	// the run refuses to proceed.
	assert.Equal(t, []string{"image"}, a.ListUnmetRequirements())
	assert.False(t, a.ValidateRequirements())
	assert.False(t, a.Run())
	assert.Empty(t, a.Results())

	// Binding the image satisfies everything; threshold falls back to its
	// default.
	img := ndarray.Ones(ndarray.Float64, 10, 10)
	require.NoError(t, a.Bind("image", img))
	assert.Empty(t, a.ListUnmetRequirements())
	assert.True(t, a.ValidateRequirements())

	thr, err := a.MetadataValue("threshold")
	require.NoError(t, err)
	assert.Equal(t, 10, thr)

	require.True(t, a.Run())
	results := a.Results()
	require.Len(t, results, 1)

	tbl, ok := results[0].(*schema.Table)
	require.True(t, ok)
	assert.NoError(t, tbl.Validate())

	col, ok := tbl.Column("mean")
	require.True(t, ok)
	assert.Equal(t, []any{1.0}, col.Values)
}

func TestLifecycleStates(t *testing.T) {
	a := newMeanIntensity()
	assert.Equal(t, StateConstructed, a.State())

	require.NoError(t, a.Bind("threshold", 5))
	assert.Equal(t, StateBound, a.State())

	a.ValidateRequirements()
	assert.Equal(t, StateValidated, a.State())

	// Unmet requirement: Execute fails without calling Run.
	unmet, ok := Execute(a)
	assert.False(t, ok)
	assert.Equal(t, []string{"image"}, unmet)
	assert.Equal(t, StateFailed, a.State())
}

func TestExecuteRunsWhenMet(t *testing.T) {
	a := newMeanIntensity()
	require.NoError(t, a.Bind("image", ndarray.Ones(ndarray.Float64, 4, 4)))

	unmet, ok := Execute(a)
	assert.True(t, ok)
	assert.Empty(t, unmet)
	assert.Equal(t, StateExecuted, a.State())
	assert.Len(t, a.Results(), 1)
}

// failingAnalysis always reports soft failure from Run.
type failingAnalysis struct {
	*Core
}

func (a *failingAnalysis) Run() bool { return false }

func TestExecuteSoftFailure(t *testing.T) {
	a := &failingAnalysis{Core: NewCore("never succeeds")}

	unmet, ok := Execute(a)
	assert.False(t, ok)
	assert.Empty(t, unmet)
	assert.Equal(t, StateFailed, a.State())
}

func TestOutputIsMonotonic(t *testing.T) {
	c := NewCore("")

	first, err := schema.TableFromColumns("first", "", nil)
	require.NoError(t, err)
	second, err := schema.TableFromColumns("second", "", nil)
	require.NoError(t, err)

	c.AppendOutput(first)
	c.AppendOutput(second)

	results := c.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].ArtifactName())
	assert.Equal(t, "second", results[1].ArtifactName())
}

func TestStateStrings(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateConstructed, "constructed"},
		{StateBound, "bound"},
		{StateValidated, "validated"},
		{StateExecuted, "executed"},
		{StateFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
