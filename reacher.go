// Package reacher 三自由度腿的正逆运动学.
//
// 对外提供与控制循环对接的同步接口: 各关节正运动学、有限差分雅可比、
// 牛顿迭代逆解. 所有方法可并发调用.
package reacher

import (
	"fmt"

	"reacher/camera"
	"reacher/control"
	"reacher/ik"
	"reacher/kinematics"
	"reacher/maths"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Reacher 腿部运动学
type Reacher struct {
	*kinematics.Leg
	Solver   *ik.Solver
	Verifier *control.Verifier
	Config   Config
	Logger   *zap.Logger
}

// New 按配置创建
func New(cfg Config) (*Reacher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	leg, err := kinematics.NewLeg(cfg.Geometry)
	if err != nil {
		return nil, err
	}
	solver, err := ik.NewSolver(leg, cfg.Solver)
	if err != nil {
		return nil, err
	}
	verifier := control.NewVerifier(leg)
	verifier.Threshold = cfg.Verify.Threshold
	verifier.Fallback = cfg.Verify.Fallback
	return &Reacher{
		Leg:      leg,
		Solver:   solver,
		Verifier: verifier,
		Config:   cfg,
		Logger:   zap.NewNop(),
	}, nil
}

// Default 默认几何与参数
func Default() *Reacher {
	r, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return r
}

// Load 加载 YAML 配置文件
func Load(filename string) (*Reacher, error) {
	cfg, err := LoadConfig(filename)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// FKHip 髋坐标系位姿
func (r *Reacher) FKHip(angles []float64) (maths.Matrix4, error) { return r.Hip(angles) }

// FKShoulder 肩坐标系位姿
func (r *Reacher) FKShoulder(angles []float64) (maths.Matrix4, error) { return r.Shoulder(angles) }

// FKElbow 肘坐标系位姿
func (r *Reacher) FKElbow(angles []float64) (maths.Matrix4, error) { return r.Elbow(angles) }

// FKFoot 足端坐标系位姿
func (r *Reacher) FKFoot(angles []float64) (maths.Matrix4, error) { return r.Foot(angles) }

// Cost 逆解代价
func (r *Reacher) Cost(target r3.Vec, guess []float64) (float64, error) {
	return r.Solver.Cost(target, guess)
}

// CalculateJacobianFD 有限差分雅可比
func (r *Reacher) CalculateJacobianFD(angles []float64, perturbation float64) (maths.Matrix3, error) {
	return r.Solver.Jacobian(angles, perturbation)
}

// CalculateInverseKinematics 牛顿迭代逆解
// 返回值未经复核, 下发到硬件前使用 VerifiedInverseKinematics
func (r *Reacher) CalculateInverseKinematics(target r3.Vec, guess []float64) ([]float64, error) {
	return r.Solver.Solve(target, guess)
}

// VerifiedInverseKinematics 逆解、归一化角度并复核
// 复核失败时返回安全关节角与 ErrUnverifiedSolution
func (r *Reacher) VerifiedInverseKinematics(target r3.Vec, guess []float64) ([]float64, error) {
	res, err := r.Solver.SolveResult(target, guess)
	if err != nil {
		return nil, err
	}
	angles, err := r.Verifier.Safe(target, control.WrapAngles(res.Angles))
	if err != nil {
		r.Logger.Warn("逆解未通过复核",
			zap.Error(err),
			zap.Stringer("status", res.Status),
			zap.Int("iterations", res.Iterations),
		)
	}
	return angles, err
}

// Projector 按配置创建相机投影
func (r *Reacher) Projector() (*camera.Projector, error) {
	p, err := camera.NewProjector(r.Config.Camera)
	if err != nil {
		return nil, fmt.Errorf("相机配置错误: %w", err)
	}
	return p, nil
}
