package ik

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Status 迭代终止状态
type Status uint8

const (
	// Converged 代价变化小于容差（停滞收敛, 不代表误差足够小）
	Converged Status = iota
	// BudgetExhausted 达到最大迭代次数
	BudgetExhausted
	// Diverged 开启发散检测且检测到发散
	Diverged
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case BudgetExhausted:
		return "budget_exhausted"
	case Diverged:
		return "diverged"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalText 文本序列化
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Step 单次迭代记录
type Step struct {
	Iteration int       `json:"iteration"`
	Angles    []float64 `json:"angles"`   // 更新后的关节角
	Delta     []float64 `json:"delta"`    // 牛顿步长
	Residual  r3.Vec    `json:"residual"` // 更新前的位置残差
	Cost      float64   `json:"cost"`     // 更新后的代价
}

// Result 逆解结果
// 调用方在下发到实际执行器之前仍需自行复核 Cost
type Result struct {
	Target     r3.Vec    `json:"target"`
	Initial    []float64 `json:"initial"`
	Angles     []float64 `json:"angles"`
	Status     Status    `json:"status"`
	Iterations int       `json:"iterations"`
	Cost       float64   `json:"cost"`
	History    []Step    `json:"history"`
}
