// Package bandit provides the arm statistics store and the agent for
// multi-armed bandit simulations. Index validation is centralized in
// Manager's accessors and Record.
//
// Package bandit は多腕バンディットシミュレーションのための
// 腕統計ストアとエージェントを提供します。
// インデックスのバリデーションは Manager のアクセサと Record に集約されています。
package bandit

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidArmNum   = errors.New("構成エラー: 腕の本数は1以上である必要があります")
	ErrInvalidArmIndex = errors.New("腕エラー: インデックスが範囲外です")
	ErrInvalidReward   = errors.New("報酬エラー: 値が不正です（NaN/Inf）")
)

// Arm holds the running statistics of one action: how many times it was
// selected and the running mean of the observed rewards.
//
// Armは1つの行動の統計を保持します。選択された回数と、観測された報酬の移動平均です。
type Arm struct {
	Label string
	count int
	value float64
}

func (a *Arm) Count() int {
	return a.count
}

func (a *Arm) Value() float64 {
	return a.value
}

// ArmStat is a read-only snapshot of one arm.
//
// ArmStatは1つの腕の読み取り専用スナップショットです。
type ArmStat struct {
	Label string
	Count int
	Value float64
}

// Manager owns a fixed-length ordered sequence of arms. Arms are mutated
// only through Record; counts and values start at zero.
//
// Managerは固定長で順序付けられた腕の列を所有します。
// 腕は Record を通じてのみ更新され、回数と値はゼロから始まります。
type Manager struct {
	arms []Arm
}

func NewManager(k int) (*Manager, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidArmNum, k)
	}
	return &Manager{arms: make([]Arm, k)}, nil
}

func (m *Manager) K() int {
	return len(m.arms)
}

func (m *Manager) validateIndex(i int) error {
	if i < 0 || i >= len(m.arms) {
		return fmt.Errorf("%w: i=%d, K=%d", ErrInvalidArmIndex, i, len(m.arms))
	}
	return nil
}

func (m *Manager) Count(i int) (int, error) {
	if err := m.validateIndex(i); err != nil {
		return 0, err
	}
	return m.arms[i].count, nil
}

func (m *Manager) Value(i int) (float64, error) {
	if err := m.validateIndex(i); err != nil {
		return 0.0, err
	}
	return m.arms[i].value, nil
}

func (m *Manager) SetLabel(i int, label string) error {
	if err := m.validateIndex(i); err != nil {
		return err
	}
	m.arms[i].Label = label
	return nil
}

// Record feeds one observed reward to arm i. The count is incremented first,
// then the mean is updated incrementally, so the division is never by zero.
// Rewards are expected in [0, 1] for the UCB regret guarantee, but any
// finite value is accepted.
//
// Recordは腕iに観測された報酬を1つ与えます。先に回数をインクリメントしてから
// 平均を逐次更新するため、ゼロ除算は発生しません。
// UCBのリグレット保証のためには報酬は[0, 1]が想定されますが、有限値なら受け付けます。
func (m *Manager) Record(i int, reward float64) error {
	if err := m.validateIndex(i); err != nil {
		return err
	}
	if math.IsNaN(reward) || math.IsInf(reward, 0) {
		return fmt.Errorf("%w: reward=%.6g", ErrInvalidReward, reward)
	}
	arm := &m.arms[i]
	arm.count += 1
	arm.value += (reward - arm.value) / float64(arm.count)
	return nil
}

// Counts returns the selection counts of all arms in index order.
func (m *Manager) Counts() []int {
	counts := make([]int, len(m.arms))
	for i, arm := range m.arms {
		counts[i] = arm.count
	}
	return counts
}

// Values returns the running mean rewards of all arms in index order.
func (m *Manager) Values() []float64 {
	values := make([]float64, len(m.arms))
	for i, arm := range m.arms {
		values[i] = arm.value
	}
	return values
}

func (m *Manager) Stats() []ArmStat {
	stats := make([]ArmStat, len(m.arms))
	for i, arm := range m.arms {
		stats[i] = ArmStat{Label: arm.Label, Count: arm.count, Value: arm.value}
	}
	return stats
}
