// Package triage provides a synthetic emergency-treatment scenario as a
// ready-made environment configuration. Patients arrive in one of three
// severity categories; the two arms are competing treatment protocols whose
// success probability depends on the severity.
//
// Package triage は合成された救急治療シナリオを環境設定として提供します。
// 患者は3つの重症度カテゴリのいずれかで到着し、2本の腕は重症度によって
// 成功確率が異なる2つの治療プロトコルです。
package triage

import (
	"github.com/sw965/bandit/env"
)

const (
	Stable = iota
	Serious
	Critical
)

const (
	StandardCare = iota
	IntensiveCare
)

// NewConfig returns the scenario's reward table. The standard protocol is
// better for stable patients, the intensive one for critical patients;
// neither dominates, so the overall best arm is only learnable from
// realized outcomes.
//
// NewConfigはシナリオの報酬表を返します。安定した患者には標準プロトコルが、
// 重篤な患者には集中プロトコルが優れており、どちらも支配的ではないため、
// 全体として最良の腕は実現した結果からのみ学習できます。
func NewConfig() env.Config {
	return env.Config{
		CategoryWeights: []float64{0.5, 0.3, 0.2},
		SuccessRates: [][]float64{
			Stable:   {0.90, 0.80},
			Serious:  {0.60, 0.55},
			Critical: {0.20, 0.45},
		},
	}
}

// TreatmentLabels returns the human-readable arm labels in index order.
func TreatmentLabels() []string {
	return []string{"標準治療", "集中治療"}
}
