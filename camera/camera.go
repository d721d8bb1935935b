// Package camera 将相机像素坐标换算为基座坐标系中的目标位置.
//
// 相机朝下安装且与机器人坐标轴对齐, 只有高度不同; 像素点投影到
// 已知深度的平面上, 再把 z 固定为基座离地高度.
package camera

import (
	"fmt"
	"math"

	"reacher/types"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Intrinsics 针孔相机内参
type Intrinsics struct {
	Width  int     `yaml:"width"`  // 分辨率宽
	Height int     `yaml:"height"` // 分辨率高
	FOV    float64 `yaml:"fov"`    // 水平视场角 (度)
}

// DefaultIntrinsics 1920x1080, 60°
func DefaultIntrinsics() Intrinsics {
	return Intrinsics{Width: 1920, Height: 1080, FOV: 60}
}

// Matrix 内参矩阵 K
// fx, fy 都按水平视场角计算, 主点位于图像中心
func (in Intrinsics) Matrix() (*mat.Dense, error) {
	if in.Width <= 0 || in.Height <= 0 || !(in.FOV > 0 && in.FOV < 180) {
		return nil, fmt.Errorf("%w: 相机内参 %+v", types.ErrInvalidInput, in)
	}
	t := math.Tan(in.FOV * math.Pi / 180 / 2)
	fx := float64(in.Width) / (2 * t)
	fy := float64(in.Height) / (2 * t)
	return mat.NewDense(3, 3, []float64{
		fx, 0, float64(in.Width) / 2,
		0, fy, float64(in.Height) / 2,
		0, 0, 1,
	}), nil
}

// Projector 像素到基座坐标的换算
type Projector struct {
	inv        mat.Dense
	depth      float64
	baseHeight float64
}

// Config 投影参数
type Config struct {
	Intrinsics Intrinsics `yaml:"intrinsics"`
	Depth      float64    `yaml:"depth"`       // 相机离地高度 (米)
	BaseHeight float64    `yaml:"base_height"` // 基座相对地面的 z (米)
}

// DefaultConfig 默认投影参数
func DefaultConfig() Config {
	return Config{
		Intrinsics: DefaultIntrinsics(),
		Depth:      types.DefaultCameraDepth,
		BaseHeight: types.DefaultBaseHeight,
	}
}

// NewProjector 创建投影器, 预先求 K 的逆
func NewProjector(cfg Config) (*Projector, error) {
	k, err := cfg.Intrinsics.Matrix()
	if err != nil {
		return nil, err
	}
	if !(cfg.Depth > 0) || math.IsInf(cfg.Depth, 0) {
		return nil, fmt.Errorf("%w: depth=%v", types.ErrInvalidInput, cfg.Depth)
	}
	p := &Projector{depth: cfg.Depth, baseHeight: cfg.BaseHeight}
	if err := p.inv.Inverse(k); err != nil {
		return nil, fmt.Errorf("内参矩阵不可逆: %w", err)
	}
	return p, nil
}

// PixelToBase 像素坐标 (u, v) 转换为基座坐标系位置
func (p *Projector) PixelToBase(u, v float64) (r3.Vec, error) {
	if math.IsNaN(u) || math.IsNaN(v) || math.IsInf(u, 0) || math.IsInf(v, 0) {
		return r3.Vec{}, fmt.Errorf("%w: 像素 (%v, %v)", types.ErrInvalidInput, u, v)
	}
	var ray mat.VecDense
	ray.MulVec(&p.inv, mat.NewVecDense(3, []float64{u, v, 1}))
	ray.ScaleVec(p.depth, &ray)
	// 图像 v 轴向下, 机器人 y 轴向上
	return r3.Vec{X: ray.AtVec(0), Y: -ray.AtVec(1), Z: p.baseHeight}, nil
}
