package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		x       *mat.Dense
		y       []float64
		wantErr bool
	}{
		{"valid", mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}), []float64{1, -1, 1}, false},
		{"nil features", nil, []float64{1}, true},
		{"empty target", mat.NewDense(1, 1, []float64{1}), nil, true},
		{"row mismatch", mat.NewDense(2, 1, []float64{1, 2}), []float64{1, -1, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.x, tt.y)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			n, m := s.Shape()
			assert.Equal(t, 3, n)
			assert.Equal(t, 2, m)
			assert.Equal(t, 4.0, s.At(1, 1))
			assert.Equal(t, []float64{3, 4}, s.Row(1))
			assert.Equal(t, []float64{2, 4, 6}, s.Feature(1))
			assert.Equal(t, "x1", s.FeatureName(1))
		})
	}
}

func TestIsValidBinaryInstance(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{0, 1, 2})

	s, err := New(x, []float64{1, -1, 1})
	require.NoError(t, err)
	assert.NoError(t, s.IsValidBinaryInstance())

	s, err = New(x, []float64{1, 0, 1})
	require.NoError(t, err)
	err = s.IsValidBinaryInstance()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNonBinaryLabel))

	assert.NoError(t, s.BinarizeTarget(1).IsValidBinaryInstance())
	assert.Equal(t, []float64{1, -1, 1}, s.BinarizeTarget(1).Target())
}

func TestFromCSV(t *testing.T) {
	in := "a,class,b\n1.5,1,2\n-0.5,-1,3\n"
	s, err := FromCSV(strings.NewReader(in), "class")
	require.NoError(t, err)

	n, m := s.Shape()
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, m)
	assert.Equal(t, []float64{1, -1}, s.Target())
	assert.Equal(t, []float64{-0.5, 3}, s.Row(1))
	assert.Equal(t, "b", s.FeatureName(1))

	_, err = FromCSV(strings.NewReader(in), "label")
	assert.Error(t, err)

	_, err = FromCSV(strings.NewReader("a,class\n"), "class")
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = FromCSV(strings.NewReader("a,class\nx,1\n"), "class")
	assert.Error(t, err)
}

func TestFromNpy(t *testing.T) {
	dir := t.TempDir()
	xPath := filepath.Join(dir, "x.npy")
	yPath := filepath.Join(dir, "y.npy")

	writeNpy(t, xPath, mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	writeNpy(t, yPath, []int64{1, -1})

	s, err := FromNpy(xPath, yPath)
	require.NoError(t, err)

	n, m := s.Shape()
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, m)
	assert.Equal(t, 6.0, s.At(1, 2))
	assert.Equal(t, []float64{1, -1}, s.Target())

	_, err = FromNpy(filepath.Join(dir, "missing.npy"), yPath)
	assert.Error(t, err)
}

func writeNpy(t *testing.T, path string, v interface{}) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, npyio.Write(f, v))
}
