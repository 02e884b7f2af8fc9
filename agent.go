package bandit

import (
	"errors"
	"fmt"
)

var ErrNilPolicy = errors.New("Agentエラー: Policyがnilです")

// Policy chooses an arm index from the current arm statistics.
// Implementations must not mutate the Manager; stochastic policies own their
// rng. UCB1, epsilon-greedy and softmax implementations live in the policy
// package and are interchangeable here.
//
// Policyは現在の腕統計から腕のインデックスを選びます。
// 実装は Manager を変更してはいけません。確率的なポリシーは自前のrngを所有します。
type Policy interface {
	Select(m *Manager) (int, error)
}

// Agent composes an arm statistics store with a selection policy and exposes
// the select/update cycle. One Agent drives one simulation run; running two
// comparisons needs two independently constructed Agents.
//
// Agentは腕統計ストアと選択ポリシーを組み合わせ、選択・更新サイクルを公開します。
// 1つの Agent は1つのシミュレーション実行を担います。
type Agent struct {
	manager *Manager
	policy  Policy
}

func NewAgent(k int, policy Policy) (*Agent, error) {
	if policy == nil {
		return nil, fmt.Errorf("%w", ErrNilPolicy)
	}
	manager, err := NewManager(k)
	if err != nil {
		return nil, err
	}
	return &Agent{manager: manager, policy: policy}, nil
}

func (a *Agent) K() int {
	return a.manager.K()
}

// SelectArm delegates to the active policy. It is a pure read: calling it
// twice without an interleaved Update returns the same index for
// deterministic policies.
//
// SelectArmはアクティブなポリシーに委譲します。純粋な読み取りであり、
// 決定的なポリシーでは Update を挟まずに2回呼ぶと同じインデックスを返します。
func (a *Agent) SelectArm() (int, error) {
	return a.policy.Select(a.manager)
}

func (a *Agent) Update(i int, reward float64) error {
	return a.manager.Record(i, reward)
}

// Reset discards all arm statistics and starts over with k arms.
//
// Resetは全ての腕統計を破棄し、k本の腕で最初からやり直します。
func (a *Agent) Reset(k int) error {
	manager, err := NewManager(k)
	if err != nil {
		return err
	}
	a.manager = manager
	return nil
}

func (a *Agent) Stats() []ArmStat {
	return a.manager.Stats()
}
