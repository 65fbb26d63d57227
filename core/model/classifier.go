// Package model はブースティングで扱う分類器の能力インターフェース、
// 実行状態、および結合仮説の書き出し形式を提供します。
package model

import (
	"github.com/YuminosukeSato/marginboost/core/sample"
)

// Classifier は二値分類器の能力インターフェース
// 弱学習器が返す仮説も、ブースティングで得られる結合仮説もこれを満たす
type Classifier interface {
	// Confidence は例 i に対する実数値の出力を返す（弱仮説では通常 -1 か +1）
	Confidence(s *sample.Sample, i int) float64

	// Predict は例 i のラベル（-1 または +1）を返す
	Predict(s *sample.Sample, i int) int
}

// Margin は例 i における y_i * h(x_i) を返す
func Margin(h Classifier, s *sample.Sample, i int) float64 {
	return s.Target()[i] * h.Confidence(s, i)
}

// Margins は全ての例についてのマージンを返す
func Margins(h Classifier, s *sample.Sample) []float64 {
	n, _ := s.Shape()
	out := make([]float64, n)
	target := s.Target()
	for i := 0; i < n; i++ {
		out[i] = target[i] * h.Confidence(s, i)
	}
	return out
}

// Sign は 0 以上を +1、負を -1 に写す
func Sign(v float64) int {
	if v >= 0 {
		return 1
	}
	return -1
}
