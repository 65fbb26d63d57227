package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// SaveWeights は結合仮説の重みをJSONファイルに保存する
//
// 使用例:
//
//	wm, _ := b.Postprocess()
//	err := model.SaveWeights(wm.Export("LPBoost"), "model.json")
func SaveWeights(ew *EnsembleWeights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	return SaveWeightsToWriter(ew, file)
}

// LoadWeights はJSONファイルから結合仮説の重みを読み込む
func LoadWeights(filename string) (*EnsembleWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return LoadWeightsFromReader(file)
}

// SaveWeightsToWriter は重みをio.Writerに保存する
func SaveWeightsToWriter(ew *EnsembleWeights, w io.Writer) error {
	if err := ew.Validate(); err != nil {
		return err
	}
	data, err := ew.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode weights")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write weights")
	}
	return nil
}

// LoadWeightsFromReader はio.Readerから重みを読み込み、検証する
func LoadWeightsFromReader(r io.Reader) (*EnsembleWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read weights")
	}
	ew := &EnsembleWeights{}
	if err := ew.FromJSON(data); err != nil {
		return nil, errors.Wrap(err, "failed to decode weights")
	}
	if err := ew.Validate(); err != nil {
		return nil, err
	}
	return ew, nil
}
