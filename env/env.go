// Package env provides the reward environment for bandit simulations.
// A hidden table of Bernoulli success probabilities, keyed by context
// category and action, generates the rewards; the agent only ever observes
// realized outcomes, never the table. Configuration validation is
// centralized in Config.Validate.
//
// Package env はバンディットシミュレーションの報酬環境を提供します。
// コンテキストのカテゴリと行動をキーとするベルヌーイ成功確率の隠れた表が
// 報酬を生成します。エージェントは実現した結果のみを観測し、表は観測しません。
// 設定のバリデーションは Config.Validate に集約されています。
package env

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrNoCategories       = errors.New("構成エラー: カテゴリが存在しません")
	ErrNoActions          = errors.New("構成エラー: 行動が存在しません")
	ErrTableShape         = errors.New("構成エラー: 成功確率表の形が不揃いです")
	ErrInvalidWeight      = errors.New("構成エラー: カテゴリの重みが不正です")
	ErrInvalidProbability = errors.New("構成エラー: 成功確率は0以上1以下である必要があります")
	ErrInvalidCategory    = errors.New("コンテキストエラー: カテゴリが範囲外です")
	ErrInvalidAction      = errors.New("行動エラー: インデックスが範囲外です")
)

// Config holds the ground-truth reward distribution: the relative frequency
// of each context category and, per (category, action), the Bernoulli
// success probability. It is owned by one Env instance, never ambient state,
// so multiple environments can coexist in one process.
//
// Configは真の報酬分布を保持します。各カテゴリの相対頻度と、
// （カテゴリ, 行動）ごとのベルヌーイ成功確率です。
// グローバル状態ではなく1つの Env インスタンスが所有するため、
// 複数の環境が1つのプロセス内に共存できます。
type Config struct {
	CategoryWeights []float64
	SuccessRates    [][]float64
}

func (c Config) Validate() error {
	n := len(c.CategoryWeights)
	if n == 0 {
		return fmt.Errorf("%w", ErrNoCategories)
	}
	if len(c.SuccessRates) != n {
		return fmt.Errorf("%w: カテゴリ数=%d, 行数=%d", ErrTableShape, n, len(c.SuccessRates))
	}

	positive := false
	for i, w := range c.CategoryWeights {
		if w < 0.0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: i=%d, w=%.6g", ErrInvalidWeight, i, w)
		}
		if w > 0.0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("%w: 合計値が0です", ErrInvalidWeight)
	}

	k := len(c.SuccessRates[0])
	if k == 0 {
		return fmt.Errorf("%w", ErrNoActions)
	}
	for category, row := range c.SuccessRates {
		if len(row) != k {
			return fmt.Errorf("%w: category=%d, 列数=%d, 期待値=%d", ErrTableShape, category, len(row), k)
		}
		for action, p := range row {
			if p < 0.0 || p > 1.0 || math.IsNaN(p) {
				return fmt.Errorf("%w: category=%d, action=%d, p=%.6g", ErrInvalidProbability, category, action, p)
			}
		}
	}
	return nil
}

// K returns the number of actions. Only meaningful after Validate.
func (c Config) K() int {
	if len(c.SuccessRates) == 0 {
		return 0
	}
	return len(c.SuccessRates[0])
}

// Context is one trial's hidden scenario. Features is a one-hot encoding of
// the category, the extension point for contextual policies; the
// context-free policies in this repository ignore it.
//
// Contextは1試行分の隠れたシナリオです。Featuresはカテゴリのone-hot表現で、
// 文脈付きポリシーのための拡張点です。
type Context struct {
	Category int
	Features []float64
}

// Env draws contexts from a fixed categorical distribution and evaluates
// actions by independent Bernoulli draws. All randomness flows from the
// single seeded source, so runs are reproducible.
//
// Envは固定されたカテゴリカル分布からコンテキストを抽出し、
// 独立したベルヌーイ抽選で行動を評価します。
// 全ての乱数は単一のシード付きソースから流れるため、実行は再現可能です。
type Env struct {
	config      Config
	categorical distuv.Categorical
	src         rand.Source
}

func New(config Config, seed uint64) (*Env, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	src := rand.NewPCG(seed, seed)
	return &Env{
		config:      config,
		categorical: distuv.NewCategorical(config.CategoryWeights, src),
		src:         src,
	}, nil
}

func (e *Env) K() int {
	return e.config.K()
}

func (e *Env) CategoryNum() int {
	return len(e.config.CategoryWeights)
}

// SampleContext produces one trial's context.
func (e *Env) SampleContext() Context {
	category := int(e.categorical.Rand())
	features := make([]float64, e.CategoryNum())
	features[category] = 1.0
	return Context{Category: category, Features: features}
}

// Evaluate draws a Bernoulli outcome for the proposed action under the given
// context and returns the realized reward, 0 or 1. Each call is an
// independent draw: evaluating two actions against the same context shares
// no randomness.
//
// Evaluateは与えられたコンテキストの下で提案された行動のベルヌーイ結果を抽選し、
// 実現した報酬（0または1）を返します。各呼び出しは独立した抽選です。
func (e *Env) Evaluate(ctx Context, action int) (float64, error) {
	if ctx.Category < 0 || ctx.Category >= e.CategoryNum() {
		return 0.0, fmt.Errorf("%w: category=%d, カテゴリ数=%d", ErrInvalidCategory, ctx.Category, e.CategoryNum())
	}
	if action < 0 || action >= e.K() {
		return 0.0, fmt.Errorf("%w: action=%d, K=%d", ErrInvalidAction, action, e.K())
	}
	bernoulli := distuv.Bernoulli{P: e.config.SuccessRates[ctx.Category][action], Src: e.src}
	return bernoulli.Rand(), nil
}
