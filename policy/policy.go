// Package policy provides selection policies for the bandit agent:
// UCB1, epsilon-greedy and softmax. All conform to bandit.Policy and are
// interchangeable from the harness's perspective. Score validation for UCB
// calculations is centralized in UCB1.Select.
//
// Package policy はバンディットエージェントの選択ポリシー
// （UCB1・イプシロングリーディ・ソフトマックス）を提供します。
// 全て bandit.Policy に準拠し、ハーネスから見て交換可能です。
// UCB計算のスコアバリデーションは UCB1.Select に集約されています。
package policy

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/sw965/bandit"
	omwmath "github.com/sw965/omw/math"
	"github.com/sw965/omw/mathx/randx"
)

var (
	ErrNilRng             = errors.New("Policyエラー: rngがnilです")
	ErrInvalidEpsilon     = errors.New("Policyエラー: イプシロンは0以上1以下である必要があります")
	ErrInvalidTemperature = errors.New("Policyエラー: 温度は0より大きい有限値である必要があります")
	ErrInvalidScore       = errors.New("Policyエラー: スコアが不正です（NaN/Inf）")
)

// Func computes the score of one arm from its mean value, the total number
// of completed trials and the arm's own selection count.
type Func func(value float64, total, count int) float64

// NewUCB1Func returns the UCB1 scoring function
// value + c*sqrt(ln(total)/count). With c = sqrt(2) this is the standard
// UCB1 bound. The caller guarantees count >= 1 and total >= count.
//
// NewUCB1FuncはUCB1のスコア関数 value + c*sqrt(ln(total)/count) を返します。
// c = sqrt(2) で標準的なUCB1のバウンドになります。
func NewUCB1Func(c float64) Func {
	return func(value float64, total, count int) float64 {
		return value + c*math.Sqrt(math.Log(float64(total))/float64(count))
	}
}

// coldStartArm returns the lowest-indexed arm that has never been selected.
// Exhausting these first keeps ln(total) and the per-arm division defined.
func coldStartArm(m *bandit.Manager) (int, bool) {
	for i, count := range m.Counts() {
		if count == 0 {
			return i, true
		}
	}
	return 0, false
}

// maxIndex returns the index of the maximum score, ties broken by the
// lowest index.
func maxIndex(scores []float64) int {
	max := omwmath.Max(scores...)
	for i, score := range scores {
		if score == max {
			return i
		}
	}
	return 0
}

// UCB1 selects the arm with the maximum upper confidence bound. It is
// deterministic: ties are broken by the lowest index, and a fresh manager is
// walked in ascending index order by the cold-start rule.
//
// UCB1は信頼上限が最大の腕を選びます。決定的であり、同点は最小インデックスで
// 解決され、未試行の腕はコールドスタート規則により昇順で選ばれます。
type UCB1 struct {
	Func Func
}

func NewUCB1() *UCB1 {
	return &UCB1{Func: NewUCB1Func(math.Sqrt2)}
}

func (p *UCB1) Select(m *bandit.Manager) (int, error) {
	if i, ok := coldStartArm(m); ok {
		return i, nil
	}

	counts := m.Counts()
	values := m.Values()

	// コールドスタート規則により total >= K >= 1 が保証される
	total := omwmath.Sum(counts...)

	scores := make([]float64, len(counts))
	for i, count := range counts {
		score := p.Func(values[i], total, count)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return 0, fmt.Errorf(
				"%w: i=%d value=%.6g total=%d count=%d score=%.6g",
				ErrInvalidScore, i, values[i], total, count, score,
			)
		}
		scores[i] = score
	}
	return maxIndex(scores), nil
}

// EpsilonGreedy explores a uniformly random arm with probability Epsilon and
// otherwise exploits the arm with the maximum mean value.
//
// EpsilonGreedyは確率イプシロンで一様ランダムに腕を探索し、
// それ以外は平均値が最大の腕を選びます。
type EpsilonGreedy struct {
	Epsilon float64
	Rng     *rand.Rand
}

func NewEpsilonGreedy(epsilon float64, rng *rand.Rand) (*EpsilonGreedy, error) {
	if epsilon < 0.0 || epsilon > 1.0 || math.IsNaN(epsilon) {
		return nil, fmt.Errorf("%w: epsilon=%.6g", ErrInvalidEpsilon, epsilon)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w", ErrNilRng)
	}
	return &EpsilonGreedy{Epsilon: epsilon, Rng: rng}, nil
}

func (p *EpsilonGreedy) Select(m *bandit.Manager) (int, error) {
	if i, ok := coldStartArm(m); ok {
		return i, nil
	}

	if p.Rng.Float64() < p.Epsilon {
		k := m.K()
		idxs := make([]int, k)
		for i := range idxs {
			idxs[i] = i
		}
		return randx.Choice(idxs, p.Rng)
	}
	return maxIndex(m.Values()), nil
}

// Softmax samples an arm with probability proportional to
// exp(value/Tau). A small temperature approaches greedy selection, a large
// one approaches uniform exploration.
//
// Softmaxは exp(value/Tau) に比例する確率で腕をサンプリングします。
// 温度が小さいほどグリーディに、大きいほど一様探索に近づきます。
type Softmax struct {
	Tau float64
	Rng *rand.Rand
}

func NewSoftmax(tau float64, rng *rand.Rand) (*Softmax, error) {
	if tau <= 0.0 || math.IsNaN(tau) || math.IsInf(tau, 0) {
		return nil, fmt.Errorf("%w: tau=%.6g", ErrInvalidTemperature, tau)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w", ErrNilRng)
	}
	return &Softmax{Tau: tau, Rng: rng}, nil
}

func (p *Softmax) Select(m *bandit.Manager) (int, error) {
	if i, ok := coldStartArm(m); ok {
		return i, nil
	}

	values := m.Values()
	maxValue := omwmath.Max(values...) // オーバーフロー対策
	ws := make([]float32, len(values))
	for i, value := range values {
		ws[i] = math32.Exp(float32((value - maxValue) / p.Tau))
	}
	return randx.IntByWeight(ws, p.Rng)
}
