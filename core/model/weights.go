package model

import (
	"encoding/json"
	"math"

	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// EnsembleWeights は結合仮説の重みを表す構造体（シリアライゼーション用）
type EnsembleWeights struct {
	// ModelType はアルゴリズムの種類（LPBoost, ERLPBoost 等）
	ModelType string `json:"model_type"`

	// Version は書き出し形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Weights は各仮説の重み（非負、ゼロは含まない）
	Weights []float64 `json:"weights"`

	// Hypotheses は各仮説の文字列表現（Weights と同じ順序）
	Hypotheses []string `json:"hypotheses"`

	// Features は特徴量の名前（オプション）
	Features []string `json:"features,omitempty"`

	// Hyperparameters は実行時のパラメータ（tolerance, nu 等）
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// Metadata は追加のメタデータ（ラウンド数、境界値等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ToJSON はEnsembleWeightsをJSON形式にシリアライズ
func (ew *EnsembleWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(ew, "", "  ")
}

// FromJSON はJSON形式からEnsembleWeightsをデシリアライズ
func (ew *EnsembleWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, ew)
}

// Validate はEnsembleWeightsの妥当性を検証
func (ew *EnsembleWeights) Validate() error {
	if ew.ModelType == "" {
		return errors.NewValueError("EnsembleWeights.Validate", "model_type is required")
	}

	if ew.Version == "" {
		return errors.NewValueError("EnsembleWeights.Validate", "version is required")
	}

	if len(ew.Weights) != len(ew.Hypotheses) {
		return errors.NewDimensionError("EnsembleWeights.Validate", len(ew.Weights), len(ew.Hypotheses), 0)
	}

	for _, w := range ew.Weights {
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.NewValueError("EnsembleWeights.Validate", "weights must be positive and finite")
		}
	}

	return nil
}

// Clone はEnsembleWeightsのディープコピーを作成
func (ew *EnsembleWeights) Clone() *EnsembleWeights {
	clone := &EnsembleWeights{
		ModelType:       ew.ModelType,
		Version:         ew.Version,
		Weights:         make([]float64, len(ew.Weights)),
		Hypotheses:      make([]string, len(ew.Hypotheses)),
		Features:        make([]string, len(ew.Features)),
		Hyperparameters: make(map[string]interface{}),
		Metadata:        make(map[string]interface{}),
	}

	copy(clone.Weights, ew.Weights)
	copy(clone.Hypotheses, ew.Hypotheses)
	copy(clone.Features, ew.Features)

	for k, v := range ew.Hyperparameters {
		clone.Hyperparameters[k] = v
	}

	for k, v := range ew.Metadata {
		clone.Metadata[k] = v
	}

	return clone
}
