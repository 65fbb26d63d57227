package sample

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// FromNpy reads an (n, m) feature matrix and an (n,) target vector from two
// .npy files. Integer targets are converted to float64.
func FromNpy(featuresPath, targetPath string) (*Sample, error) {
	features, err := readNpyMatrix(featuresPath)
	if err != nil {
		return nil, err
	}
	target, err := readNpyVector(targetPath)
	if err != nil {
		return nil, err
	}
	return New(features, target)
}

func readNpyMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", path)
	}
	if len(r.Header.Descr.Shape) != 2 {
		return nil, errors.NewValueError("sample.FromNpy", path+" is not a 2-d array")
	}

	m := &mat.Dense{}
	if err := r.Read(m); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return m, nil
}

func readNpyVector(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read npy header of %s", path)
	}

	switch kind := strings.TrimLeft(r.Header.Descr.Type, "<>|="); kind {
	case "f8":
		var y []float64
		if err := r.Read(&y); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		return y, nil
	case "i8":
		var raw []int64
		if err := r.Read(&raw); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		y := make([]float64, len(raw))
		for i, v := range raw {
			y[i] = float64(v)
		}
		return y, nil
	case "i4":
		var raw []int32
		if err := r.Read(&raw); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		y := make([]float64, len(raw))
		for i, v := range raw {
			y[i] = float64(v)
		}
		return y, nil
	default:
		return nil, errors.NewValueError("sample.FromNpy", "unsupported target dtype "+r.Header.Descr.Type)
	}
}

// FromCSV reads a CSV with a header row. The column named targetColumn is the
// label; every other column must parse as float64.
func FromCSV(in io.Reader, targetColumn string) (*Sample, error) {
	records, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) < 2 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	header := records[0]
	targetIdx := -1
	names := make([]string, 0, len(header)-1)
	for j, name := range header {
		if name == targetColumn {
			targetIdx = j
			continue
		}
		names = append(names, name)
	}
	if targetIdx < 0 {
		return nil, errors.NewValueError("sample.FromCSV", "target column "+strconv.Quote(targetColumn)+" not found")
	}

	n, m := len(records)-1, len(names)
	if m == 0 {
		return nil, errors.NewValueError("sample.FromCSV", "no feature columns")
	}
	data := make([]float64, 0, n*m)
	target := make([]float64, n)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, errors.NewDimensionError("sample.FromCSV", len(header), len(rec), 1)
		}
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %q", i+1, header[j])
			}
			if j == targetIdx {
				target[i] = v
			} else {
				data = append(data, v)
			}
		}
	}

	s, err := New(mat.NewDense(n, m, data), target)
	if err != nil {
		return nil, err
	}
	return s.WithFeatureNames(names)
}

// FromCSVFile opens path and calls FromCSV.
func FromCSVFile(path, targetColumn string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return FromCSV(f, targetColumn)
}
