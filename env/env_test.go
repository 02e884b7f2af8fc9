package env_test

import (
	"errors"
	"math"
	"testing"

	"github.com/sw965/bandit/env"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  env.Config
		wantErr error
	}{
		{
			name: "正常",
			config: env.Config{
				CategoryWeights: []float64{0.5, 0.5},
				SuccessRates:    [][]float64{{0.6, 0.5}, {0.2, 0.8}},
			},
			wantErr: nil,
		},
		{
			name: "正常_重みは非正規化でもよい",
			config: env.Config{
				CategoryWeights: []float64{3.0, 1.0},
				SuccessRates:    [][]float64{{0.0, 1.0}, {0.5, 0.5}},
			},
			wantErr: nil,
		},
		{
			name:    "異常_カテゴリなし",
			config:  env.Config{},
			wantErr: env.ErrNoCategories,
		},
		{
			name: "異常_行数とカテゴリ数の不一致",
			config: env.Config{
				CategoryWeights: []float64{1.0, 1.0},
				SuccessRates:    [][]float64{{0.5, 0.5}},
			},
			wantErr: env.ErrTableShape,
		},
		{
			name: "異常_不揃いな表",
			config: env.Config{
				CategoryWeights: []float64{1.0, 1.0},
				SuccessRates:    [][]float64{{0.5, 0.5}, {0.5}},
			},
			wantErr: env.ErrTableShape,
		},
		{
			name: "異常_行動なし",
			config: env.Config{
				CategoryWeights: []float64{1.0},
				SuccessRates:    [][]float64{{}},
			},
			wantErr: env.ErrNoActions,
		},
		{
			name: "異常_負の重み",
			config: env.Config{
				CategoryWeights: []float64{1.0, -0.5},
				SuccessRates:    [][]float64{{0.5}, {0.5}},
			},
			wantErr: env.ErrInvalidWeight,
		},
		{
			name: "異常_重みの合計が0",
			config: env.Config{
				CategoryWeights: []float64{0.0, 0.0},
				SuccessRates:    [][]float64{{0.5}, {0.5}},
			},
			wantErr: env.ErrInvalidWeight,
		},
		{
			name: "異常_NaNの重み",
			config: env.Config{
				CategoryWeights: []float64{math.NaN()},
				SuccessRates:    [][]float64{{0.5}},
			},
			wantErr: env.ErrInvalidWeight,
		},
		{
			name: "異常_確率が範囲外",
			config: env.Config{
				CategoryWeights: []float64{1.0},
				SuccessRates:    [][]float64{{1.5}},
			},
			wantErr: env.ErrInvalidProbability,
		},
		{
			name: "異常_負の確率",
			config: env.Config{
				CategoryWeights: []float64{1.0},
				SuccessRates:    [][]float64{{-0.1}},
			},
			wantErr: env.ErrInvalidProbability,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("want: %v, got: %v", tc.wantErr, err)
			}

			_, err = env.New(tc.config, 1)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("New want: %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

// 同じ設定とシードからは同じコンテキストと報酬の系列が得られる
func TestEnvReproducibility(t *testing.T) {
	config := env.Config{
		CategoryWeights: []float64{0.5, 0.3, 0.2},
		SuccessRates:    [][]float64{{0.9, 0.1}, {0.5, 0.5}, {0.2, 0.7}},
	}

	e1, err := env.New(config, 42)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := env.New(config, 42)
	if err != nil {
		t.Fatal(err)
	}

	for n := 0; n < 100; n++ {
		ctx1 := e1.SampleContext()
		ctx2 := e2.SampleContext()
		if ctx1.Category != ctx2.Category {
			t.Fatalf("n=%d want: %d, got: %d", n, ctx1.Category, ctx2.Category)
		}

		action := n % 2
		r1, err := e1.Evaluate(ctx1, action)
		if err != nil {
			t.Fatal(err)
		}
		r2, err := e2.Evaluate(ctx2, action)
		if err != nil {
			t.Fatal(err)
		}
		if r1 != r2 {
			t.Fatalf("n=%d want: %.1f, got: %.1f", n, r1, r2)
		}
	}
}

// 成功確率が0と1の場合、報酬は退化して決定的になる
func TestEnvEvaluateDegenerateRates(t *testing.T) {
	config := env.Config{
		CategoryWeights: []float64{1.0},
		SuccessRates:    [][]float64{{1.0, 0.0}},
	}
	e, err := env.New(config, 1)
	if err != nil {
		t.Fatal(err)
	}

	for n := 0; n < 100; n++ {
		ctx := e.SampleContext()
		reward, err := e.Evaluate(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if reward != 1.0 {
			t.Fatalf("want: 1, got: %.1f", reward)
		}

		reward, err = e.Evaluate(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if reward != 0.0 {
			t.Fatalf("want: 0, got: %.1f", reward)
		}
	}
}

func TestEnvEvaluateValidation(t *testing.T) {
	config := env.Config{
		CategoryWeights: []float64{1.0, 1.0},
		SuccessRates:    [][]float64{{0.5, 0.5}, {0.5, 0.5}},
	}
	e, err := env.New(config, 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		ctx     env.Context
		action  int
		wantErr error
	}{
		{
			name:    "正常",
			ctx:     env.Context{Category: 0},
			action:  1,
			wantErr: nil,
		},
		{
			name:    "異常_カテゴリが範囲外",
			ctx:     env.Context{Category: 2},
			action:  0,
			wantErr: env.ErrInvalidCategory,
		},
		{
			name:    "異常_負のカテゴリ",
			ctx:     env.Context{Category: -1},
			action:  0,
			wantErr: env.ErrInvalidCategory,
		},
		{
			name:    "異常_行動が範囲外",
			ctx:     env.Context{Category: 0},
			action:  2,
			wantErr: env.ErrInvalidAction,
		},
		{
			name:    "異常_負の行動",
			ctx:     env.Context{Category: 0},
			action:  -1,
			wantErr: env.ErrInvalidAction,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Evaluate(tc.ctx, tc.action)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("want: %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

// コンテキストの特徴量はカテゴリのone-hot表現になっている
func TestSampleContextFeatures(t *testing.T) {
	config := env.Config{
		CategoryWeights: []float64{0.2, 0.5, 0.3},
		SuccessRates:    [][]float64{{0.5}, {0.5}, {0.5}},
	}
	e, err := env.New(config, 7)
	if err != nil {
		t.Fatal(err)
	}

	for n := 0; n < 50; n++ {
		ctx := e.SampleContext()
		if len(ctx.Features) != e.CategoryNum() {
			t.Fatalf("want: %d, got: %d", e.CategoryNum(), len(ctx.Features))
		}
		for i, feature := range ctx.Features {
			want := 0.0
			if i == ctx.Category {
				want = 1.0
			}
			if feature != want {
				t.Errorf("i=%d want: %.1f, got: %.1f", i, want, feature)
			}
		}
	}
}
