// Package metrics は二値分類器および結合仮説の評価指標を提供します。
// 研究用ロガーが各ラウンドで目的関数値と訓練/テスト損失を記録する際に使用します。
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/marginboost/core/distribution"
	"github.com/YuminosukeSato/marginboost/core/model"
	"github.com/YuminosukeSato/marginboost/core/sample"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// Accuracy は h の予測ラベルが正解と一致する例の割合を返す
func Accuracy(s *sample.Sample, h model.Classifier) float64 {
	n, _ := s.Shape()
	target := s.Target()
	correct := 0
	for i := 0; i < n; i++ {
		if float64(h.Predict(s, i)) == target[i] {
			correct++
		}
	}
	return float64(correct) / float64(n)
}

// ZeroOneLoss は誤分類率 1 - Accuracy を返す
func ZeroOneLoss(s *sample.Sample, h model.Classifier) float64 {
	return 1 - Accuracy(s, h)
}

// MinMargin は min_i y_i h(x_i) を返す
func MinMargin(s *sample.Sample, h model.Classifier) float64 {
	return floats.Min(model.Margins(h, s))
}

// SoftMarginObjective はソフトマージン最適化の目的関数値
//
//	min_{d ∈ Δ_{n,ν}} Σ_i d_i y_i h(x_i)
//
// を返す。マージンの小さい例から順に 1/ν ずつ重みを割り当てれば最小値になる。
// ν = 1 のとき最小マージンに一致する。
func SoftMarginObjective(s *sample.Sample, h model.Classifier, nu float64) (float64, error) {
	n, _ := s.Shape()
	if err := distribution.CheckNu(nu, n); err != nil {
		return 0, err
	}
	return distribution.CappedMin(model.Margins(h, s), 1/nu), nil
}

// AUC はラベル y ∈ {-1, +1} とスコアからROC曲線下面積を計算する
// 同点のスコアは 0.5 として数える。片方のクラスしか無い場合は 0.5 を返す。
func AUC(y, scores []float64) (float64, error) {
	if len(y) == 0 {
		return 0, errors.NewValueError("AUC", "empty input")
	}
	if len(y) != len(scores) {
		return 0, errors.NewDimensionError("AUC", len(y), len(scores), 0)
	}
	if err := errors.CheckNumericalStability("AUC", scores, 0); err != nil {
		return 0, err
	}

	sorted := append([]float64(nil), scores...)
	inds := make([]int, len(sorted))
	floats.Argsort(sorted, inds)

	var pos, neg, negBelow, area float64
	for i := 0; i < len(sorted); {
		// 同じスコアのグループをまとめて処理する
		var gPos, gNeg float64
		j := i
		for ; j < len(sorted) && sorted[j] == sorted[i]; j++ {
			switch y[inds[j]] {
			case 1:
				gPos++
			case -1:
				gNeg++
			default:
				return 0, errors.WithStack(errors.ErrNonBinaryLabel)
			}
		}
		area += gPos*negBelow + 0.5*gPos*gNeg
		negBelow += gNeg
		pos += gPos
		neg += gNeg
		i = j
	}

	if pos == 0 || neg == 0 {
		return 0.5, nil
	}
	return area / (pos * neg), nil
}

// ClassifierAUC は h の Confidence をスコアとしてサンプル上のAUCを計算する
func ClassifierAUC(s *sample.Sample, h model.Classifier) (float64, error) {
	n, _ := s.Shape()
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = h.Confidence(s, i)
	}
	return AUC(s.Target(), scores)
}
