package ik

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"reacher/kinematics"
	"reacher/maths"
	"reacher/types"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestSolver(t *testing.T, opts Options) (*Solver, *kinematics.Leg) {
	t.Helper()
	leg, err := kinematics.NewLeg(kinematics.DefaultGeometry())
	if err != nil {
		t.Fatalf("NewLeg failed: %v", err)
	}
	s, err := NewSolver(leg, opts)
	if err != nil {
		t.Fatalf("NewSolver failed: %v", err)
	}
	return s, leg
}

// countingChain 统计正运动学调用次数
type countingChain struct {
	Chain
	calls int
}

func (c *countingChain) FootPosition(q []float64) (r3.Vec, error) {
	c.calls++
	return c.Chain.FootPosition(q)
}

// linearChain 足端位置为关节角的线性函数
type linearChain struct{ m maths.Matrix3 }

func (c linearChain) FootPosition(q []float64) (r3.Vec, error) {
	if err := types.CheckAngles(q); err != nil {
		return r3.Vec{}, err
	}
	return c.m.MulVec(maths.VecFromSlice(q)), nil
}

// TestRestScenario 零位目标从零位出发: 第一步即为零步长, 残差为零
func TestRestScenario(t *testing.T) {
	s, leg := newTestSolver(t, DefaultOptions())
	zero := []float64{0, 0, 0}
	target, _ := leg.FootPosition(zero)
	res, err := s.SolveResult(target, zero)
	if err != nil {
		t.Fatalf("SolveResult failed: %v", err)
	}
	if len(res.History) == 0 {
		t.Fatalf("至少应迭代一次")
	}
	first := res.History[0]
	if first.Cost != 0 || floats.Norm(first.Delta, 2) != 0 {
		t.Errorf("第一步应为零步长且代价为零, 得到 delta=%v cost=%g", first.Delta, first.Cost)
	}
	if res.Cost != 0 || !floats.Equal(res.Angles, zero) {
		t.Errorf("希望解为零位, 得到 %v cost=%g", res.Angles, res.Cost)
	}
	// 第一轮与 +Inf 比较不可能停滞, 第二轮停止
	if res.Status != Converged || res.Iterations > 2 {
		t.Errorf("希望停滞收敛且迭代不超过2次, 得到 %s/%d", res.Status, res.Iterations)
	}
}

func TestSolveReachableTarget(t *testing.T) {
	s, leg := newTestSolver(t, DefaultOptions())
	want := []float64{0.3, 0.4, 0.9}
	target, _ := leg.FootPosition(want)
	guess := []float64{0.2, 0.3, 1.0}
	angles, err := s.Solve(target, guess)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if cost, _ := s.Cost(target, angles); cost > 1e-3 {
		t.Errorf("希望误差小于 1mm, 得到 %g (%v)", cost, angles)
	}
	if !floats.Equal(guess, []float64{0.2, 0.3, 1.0}) {
		t.Errorf("初始猜测不应被修改: %v", guess)
	}
}

// TestRoundTrip 从可达位置附近的猜测出发, 大多数求解回到目标
func TestRoundTrip(t *testing.T) {
	s, leg := newTestSolver(t, DefaultOptions())
	r := rand.New(rand.NewSource(1))
	const n = 50
	ok := 0
	for i := 0; i < n; i++ {
		q := []float64{r.Float64()*1.6 - 0.8, r.Float64()*1.6 - 0.8, 0.5 + r.Float64()}
		target, _ := leg.FootPosition(q)
		guess := make([]float64, 3)
		for j := range guess {
			guess[j] = q[j] + r.Float64()*0.5 - 0.25
		}
		angles, err := s.Solve(target, guess)
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		foot, _ := leg.FootPosition(angles)
		if maths.Distance(foot, target) < types.VerifyThreshold {
			ok++
		}
	}
	if ok*2 <= n {
		t.Errorf("希望多数求解成功, 成功 %d/%d", ok, n)
	}
}

func TestUnreachableTarget(t *testing.T) {
	s, leg := newTestSolver(t, DefaultOptions())
	target := r3.Vec{X: 1, Y: 1, Z: 1}
	res, err := s.SolveResult(target, []float64{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("SolveResult failed: %v", err)
	}
	for _, a := range res.Angles {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			t.Fatalf("关节角应为有限值, 得到 %v", res.Angles)
		}
	}
	if res.Iterations < 1 || res.Iterations > types.MaxIterations {
		t.Errorf("迭代次数越界: %d", res.Iterations)
	}
	if res.Status == Diverged {
		t.Errorf("未开启发散检测时不应返回 Diverged")
	}
	if min := r3.Norm(target) - leg.Geometry().MaxReach(); res.Cost < min-1e-9 {
		t.Errorf("不可达目标的误差 %g 不可能小于 %g", res.Cost, min)
	}
}

func TestDivergenceOptIn(t *testing.T) {
	opts := DefaultOptions()
	opts.DetectDivergence = true
	opts.MaxAngle = 1e-3
	s, _ := newTestSolver(t, opts)
	res, err := s.SolveResult(r3.Vec{X: 1, Y: 1, Z: 1}, []float64{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("SolveResult failed: %v", err)
	}
	if res.Status != Diverged || res.Iterations != 1 {
		t.Errorf("希望第一次迭代即检测到发散, 得到 %s/%d", res.Status, res.Iterations)
	}
}

// TestJacobianEvaluations 雅可比估计恰好调用 4 次正运动学
func TestJacobianEvaluations(t *testing.T) {
	_, leg := newTestSolver(t, DefaultOptions())
	chain := &countingChain{Chain: leg}
	s, err := NewSolver(chain, DefaultOptions())
	if err != nil {
		t.Fatalf("NewSolver failed: %v", err)
	}
	if _, err := s.Jacobian([]float64{0.1, 0.2, 0.3}, 1e-4); err != nil {
		t.Fatalf("Jacobian failed: %v", err)
	}
	if chain.calls != 4 {
		t.Errorf("希望 4 次正运动学, 得到 %d", chain.calls)
	}
}

func TestJacobianConsistency(t *testing.T) {
	s, _ := newTestSolver(t, DefaultOptions())
	q := []float64{0.3, 0.4, 0.9}
	fine, err := s.Jacobian(q, 1e-6)
	if err != nil {
		t.Fatalf("Jacobian failed: %v", err)
	}
	for _, delta := range []float64{1e-3, 1e-4, -1e-4, 1e-5} {
		j, err := s.Jacobian(q, delta)
		if err != nil {
			t.Fatalf("Jacobian(%g) failed: %v", delta, err)
		}
		if !j.IsFinite() || !j.ApproxEqual(fine, 1e-3) {
			t.Errorf("delta=%g: 雅可比应趋于稳定:\n%s\nvs\n%s", delta, j, fine)
		}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				if math.Abs(fine[r][c]) > 1e-2 && math.Signbit(j[r][c]) != math.Signbit(fine[r][c]) {
					t.Errorf("delta=%g: [%d][%d] 符号不一致", delta, r, c)
				}
			}
		}
	}
	if _, err := s.Jacobian(q, 0); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("零扰动应返回 ErrInvalidInput, 得到 %v", err)
	}
	if _, err := s.Jacobian([]float64{0, 0}, 1e-4); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("错误长度应返回 ErrInvalidInput, 得到 %v", err)
	}
}

// TestLinearChain 线性链一步到位; 奇异链给出最小二乘解
func TestLinearChain(t *testing.T) {
	m := maths.Matrix3{{1, 2, 0}, {0, 1, 0}, {1, 0, 3}}
	s, err := NewSolver(linearChain{m}, DefaultOptions())
	if err != nil {
		t.Fatalf("NewSolver failed: %v", err)
	}
	target := r3.Vec{X: 0.5, Y: -0.2, Z: 0.1}
	res, err := s.SolveResult(target, []float64{0, 0, 0})
	if err != nil {
		t.Fatalf("SolveResult failed: %v", err)
	}
	if res.History[0].Cost > 1e-6 || res.Status != Converged {
		t.Errorf("线性链应一步收敛, 得到 cost=%g status=%s", res.History[0].Cost, res.Status)
	}

	singular := maths.Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 0}}
	s, _ = NewSolver(linearChain{singular}, DefaultOptions())
	res, err = s.SolveResult(r3.Vec{X: 0.1, Y: 0.2, Z: 5}, []float64{0, 0, 0})
	if err != nil {
		t.Fatalf("SolveResult failed: %v", err)
	}
	if math.Abs(res.Angles[2]) > 1e-6 || math.Abs(res.Cost-5) > 1e-6 {
		t.Errorf("奇异方向不应产生步长, 得到 %v cost=%g", res.Angles, res.Cost)
	}
}

func TestSolveInvalidInput(t *testing.T) {
	s, _ := newTestSolver(t, DefaultOptions())
	if _, err := s.Solve(r3.Vec{}, []float64{0, 0}); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("希望 ErrInvalidInput, 得到 %v", err)
	}
	if _, err := s.Solve(r3.Vec{X: math.NaN()}, []float64{0, 0, 0}); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("希望 ErrInvalidInput, 得到 %v", err)
	}
	if _, err := NewSolver(nil, DefaultOptions()); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("空 chain 应被拒绝")
	}
}

func TestOptionsValidate(t *testing.T) {
	cases := []func(*Options){
		func(o *Options) { o.Perturbation = 0 },
		func(o *Options) { o.Tolerance = -1 },
		func(o *Options) { o.MaxIterations = 0 },
		func(o *Options) { o.RCond = 1 },
		func(o *Options) { o.MaxAngle = math.Inf(1) },
	}
	for i, mutate := range cases {
		o := DefaultOptions()
		mutate(&o)
		if err := o.Validate(); !errors.Is(err, types.ErrInvalidInput) {
			t.Errorf("#%d: 希望 ErrInvalidInput, 得到 %v", i, err)
		}
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("默认参数应合法: %v", err)
	}
}
