package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neora-dev/neora/internal/theme"
)

func mustNew(t *testing.T, opts Options) *Indicator {
	t.Helper()
	ind, err := New(opts)
	require.NoError(t, err)
	return ind
}

func TestNew_Defaults(t *testing.T) {
	ind := mustNew(t, Options{Steps: []string{"A", "B"}})

	assert.Equal(t, 0, ind.Current())
	assert.Equal(t, Horizontal, ind.Orientation())
	assert.Equal(t, theme.Black, ind.DashColor())
	assert.Equal(t, 2, ind.Len())
}

func TestNew_RejectsEmptySteps(t *testing.T) {
	ind, err := New(Options{})
	assert.ErrorIs(t, err, ErrNoSteps)
	assert.Nil(t, ind)
}

func TestNew_RejectsCurrentOutOfRange(t *testing.T) {
	for _, cur := range []int{-1, 3, 10} {
		_, err := New(Options{Steps: []string{"A", "B", "C"}, CurrentStep: cur})
		assert.ErrorIs(t, err, ErrStepOutOfRange, "current=%d", cur)
	}
}

func TestNew_RejectsUnknownOrientation(t *testing.T) {
	_, err := New(Options{Steps: []string{"A"}, Orientation: Orientation(7)})
	assert.ErrorIs(t, err, ErrInvalidOrientation)
}

func TestNew_CopiesSteps(t *testing.T) {
	steps := []string{"A", "B"}
	ind := mustNew(t, Options{Steps: steps})
	steps[0] = "changed"

	assert.Equal(t, []string{"A", "B"}, ind.Steps())

	got := ind.Steps()
	got[1] = "changed"
	assert.Equal(t, "B", ind.Steps()[1])
}

func TestAdvance(t *testing.T) {
	ind := mustNew(t, Options{Steps: []string{"A", "B", "C"}})

	for want := 1; want < 3; want++ {
		ind.Advance()
		assert.Equal(t, want, ind.Current())
	}

	ind.Advance()
	assert.Equal(t, 0, ind.Current(), "advance past last step wraps")
}

func TestAdvance_SingleStepStaysAtZero(t *testing.T) {
	ind := mustNew(t, Options{Steps: []string{"only"}})
	ind.Advance()
	assert.Equal(t, 0, ind.Current())
}

func TestCompleteAndReset(t *testing.T) {
	ind := mustNew(t, Options{Steps: []string{"A", "B"}})

	ind.Complete()
	assert.True(t, ind.Done())
	assert.Equal(t, 2, ind.Current())

	ind.Advance()
	assert.Equal(t, 0, ind.Current())

	ind.Complete()
	ind.Reset()
	assert.Equal(t, 0, ind.Current())
	assert.False(t, ind.Done())
}

func TestSetCurrent(t *testing.T) {
	ind := mustNew(t, Options{Steps: []string{"A", "B"}})

	require.NoError(t, ind.SetCurrent(1))
	assert.Equal(t, 1, ind.Current())

	require.NoError(t, ind.SetCurrent(2))
	assert.True(t, ind.Done())

	assert.ErrorIs(t, ind.SetCurrent(3), ErrStepOutOfRange)
	assert.ErrorIs(t, ind.SetCurrent(-1), ErrStepOutOfRange)
	assert.Equal(t, 2, ind.Current())
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"", Horizontal, false},
		{"horizontal", Horizontal, false},
		{"Vertical", Vertical, false},
		{" column ", Vertical, false},
		{"diagonal", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOrientation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetOrientation(t *testing.T) {
	ind := mustNew(t, Options{Steps: []string{"A", "B"}})

	require.NoError(t, ind.SetOrientation(Vertical))
	assert.Equal(t, Vertical, ind.Orientation())

	assert.ErrorIs(t, ind.SetOrientation(Orientation(7)), ErrInvalidOrientation)
	assert.Equal(t, Vertical, ind.Orientation())
}

func TestLabel_OutOfRange(t *testing.T) {
	ind := mustNew(t, Options{Steps: []string{"A", "B"}, CurrentStep: 1})

	assert.Equal(t, "A "+CompletedMark, ind.Label(0))
	assert.Equal(t, "B", ind.Label(1))
	assert.Empty(t, ind.Label(-1))
	assert.Empty(t, ind.Label(2))
}
