// Package sim provides the simulation harness: a training mode that drives
// sequential select/evaluate/update trials, and a comparison mode that
// scores the adaptive agent against a fixed alternating A/B baseline.
// Trial-count and arm-count validation is centralized in Run and Compare.
//
// Package sim はシミュレーションハーネスを提供します。逐次的な
// 選択・評価・更新の試行を駆動する学習モードと、適応的なエージェントを
// 固定の交互A/Bベースラインと比較する比較モードです。
// 試行回数と腕の本数のバリデーションは Run と Compare に集約されています。
package sim

import (
	"errors"
	"fmt"

	"github.com/sw965/bandit"
	"github.com/sw965/bandit/env"
)

var (
	ErrInvalidTrials    = errors.New("試行回数エラー: 1以上である必要があります")
	ErrArmNumMismatch   = errors.New("シミュレーションエラー: 環境とエージェントの腕の本数が一致しません")
	ErrComparisonArmNum = errors.New("比較エラー: 交互ベースラインは2本腕のみ対応しています")
)

// Run drives trials sequential select/evaluate/update cycles and returns the
// agent's final per-arm statistics. Trials run strictly in order: each
// selection depends on the statistics mutated by all prior trials.
//
// Runはtrials回の選択・評価・更新サイクルを逐次駆動し、
// エージェントの最終的な腕ごとの統計を返します。
// 各選択はそれ以前の全試行によって更新された統計に依存するため、
// 試行は厳密に順番に実行されます。
func Run(trials int, e *env.Env, a *bandit.Agent) ([]bandit.ArmStat, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%w: trials=%d", ErrInvalidTrials, trials)
	}
	if e.K() != a.K() {
		return nil, fmt.Errorf("%w: 環境のK=%d, エージェントのK=%d", ErrArmNumMismatch, e.K(), a.K())
	}

	for t := 0; t < trials; t++ {
		ctx := e.SampleContext()
		i, err := a.SelectArm()
		if err != nil {
			return nil, err
		}
		reward, err := e.Evaluate(ctx, i)
		if err != nil {
			return nil, err
		}
		if err := a.Update(i, reward); err != nil {
			return nil, err
		}
	}
	return a.Stats(), nil
}

// Scoreboard holds the cumulative success counts of one comparison run.
//
// Scoreboardは1回の比較実行における累積成功回数を保持します。
type Scoreboard struct {
	Bandit   int
	Baseline int
}

// Compare runs, per trial, both the agent's adaptive choice and a fixed
// alternating baseline over the same two arms, each evaluated against an
// independently drawn Bernoulli outcome. The two scores are independent
// realizations of the same underlying probabilities, not a paired
// counterfactual comparison. Only the bandit's outcome feeds the agent's
// statistics. The alternating baseline is defined only for a 2-arm
// action set.
//
// Compareは試行ごとに、エージェントの適応的な選択と同じ2本腕に対する
// 固定の交互ベースラインの両方を実行し、それぞれを独立に抽選された
// ベルヌーイ結果に対して評価します。2つのスコアは同じ確率の独立な実現であり、
// 対応付けられた反実仮想の比較ではありません。
// エージェントの統計に反映されるのはバンディット側の結果のみです。
// 交互ベースラインは2本腕の行動集合に対してのみ定義されます。
func Compare(trials int, e *env.Env, a *bandit.Agent) (Scoreboard, error) {
	board := Scoreboard{}

	if trials < 1 {
		return board, fmt.Errorf("%w: trials=%d", ErrInvalidTrials, trials)
	}
	if e.K() != 2 || a.K() != 2 {
		return board, fmt.Errorf("%w: 環境のK=%d, エージェントのK=%d", ErrComparisonArmNum, e.K(), a.K())
	}

	for t := 0; t < trials; t++ {
		ctx := e.SampleContext()

		i, err := a.SelectArm()
		if err != nil {
			return board, err
		}
		reward, err := e.Evaluate(ctx, i)
		if err != nil {
			return board, err
		}
		if err := a.Update(i, reward); err != nil {
			return board, err
		}
		if reward == 1.0 {
			board.Bandit += 1
		}

		baselineReward, err := e.Evaluate(ctx, t%2)
		if err != nil {
			return board, err
		}
		if baselineReward == 1.0 {
			board.Baseline += 1
		}
	}
	return board, nil
}
