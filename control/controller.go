// Package control 连接逆运动学与外部执行器: 读取目标, 求解, 复核, 下发.
// 定时循环由调用方负责.
package control

import (
	"context"
	"errors"
	"fmt"

	"reacher/ik"
	"reacher/types"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// TargetSource 目标位置来源（例如相机检测）
// ok 为 false 表示本周期没有目标
type TargetSource interface {
	Target(ctx context.Context) (target r3.Vec, ok bool, err error)
}

// Actuator 关节执行器（仿真或实际硬件）
type Actuator interface {
	SetJointAngles(ctx context.Context, angles []float64) error
}

// Command 单周期输出
type Command struct {
	Target   r3.Vec
	Angles   []float64 // 实际下发的关节角
	Result   ik.Result
	Verified bool // false 表示已替换为安全关节角
	Sent     bool
}

// Controller 单周期控制
type Controller struct {
	Source   TargetSource
	Actuator Actuator
	Solver   *ik.Solver
	Verifier *Verifier
	Logger   *zap.Logger
}

func (c *Controller) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Step 执行一个控制周期
//
//	current: 当前关节角, 作为逆解初始猜测
//
// 没有目标时返回 Sent=false 的命令且不调用执行器.
func (c *Controller) Step(ctx context.Context, current []float64) (Command, error) {
	target, ok, err := c.Source.Target(ctx)
	if err != nil {
		return Command{}, fmt.Errorf("读取目标失败: %w", err)
	}
	if !ok {
		return Command{Angles: append([]float64(nil), current...)}, nil
	}
	res, err := c.Solver.SolveResult(target, current)
	if err != nil {
		return Command{}, fmt.Errorf("逆解失败: %w", err)
	}
	cmd := Command{Target: target, Result: res, Verified: true}
	angles := WrapAngles(res.Angles)
	cmd.Angles, err = c.Verifier.Safe(target, angles)
	switch {
	case errors.Is(err, types.ErrUnverifiedSolution):
		cmd.Verified = false
		c.logger().Warn("逆解未通过复核, 已阻止下发原始解",
			zap.Error(err),
			zap.Float64s("angles", angles),
			zap.Float64s("fallback", cmd.Angles),
			zap.Stringer("status", res.Status),
		)
	case err != nil:
		return Command{}, err
	}
	if err := c.Actuator.SetJointAngles(ctx, cmd.Angles); err != nil {
		return cmd, fmt.Errorf("下发关节角失败: %w", err)
	}
	cmd.Sent = true
	c.logger().Debug("下发关节角",
		zap.Float64s("angles", cmd.Angles),
		zap.Int("iterations", res.Iterations),
		zap.Float64("cost", res.Cost),
	)
	return cmd, nil
}
