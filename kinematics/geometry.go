package kinematics

import (
	"errors"
	"fmt"
	"math"

	"reacher/maths"
	"reacher/transform"
	"reacher/types"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry 腿部静态几何配置
// 由 NewLeg 复制后不可变, 不同几何的腿可以同时存在
type Geometry struct {
	HipOffset      float64        `yaml:"hip_offset"`      // 髋关节横向偏移, 沿髋坐标系 -y
	ShoulderOffset r3.Vec         `yaml:"shoulder_offset"` // 髋到肩的固定偏移
	UpperLeg       float64        `yaml:"upper_leg"`       // 大腿长度, 沿肩坐标系 +z
	LowerLeg       float64        `yaml:"lower_leg"`       // 小腿长度, 沿肘坐标系 +z
	HipAxis        transform.Axis `yaml:"hip_axis"`
	ShoulderAxis   transform.Axis `yaml:"shoulder_axis"`
	ElbowAxis      transform.Axis `yaml:"elbow_axis"`
}

// DefaultGeometry 默认几何参数
func DefaultGeometry() Geometry {
	return Geometry{
		HipOffset:    types.DefaultHipOffset,
		UpperLeg:     types.DefaultUpperLeg,
		LowerLeg:     types.DefaultLowerLeg,
		HipAxis:      transform.AxisZ,
		ShoulderAxis: transform.AxisY,
		ElbowAxis:    transform.AxisY,
	}
}

// Validate 校验几何参数
func (g Geometry) Validate() error {
	var errs []error
	for name, v := range map[string]float64{
		"hip_offset": g.HipOffset,
		"upper_leg":  g.UpperLeg,
		"lower_leg":  g.LowerLeg,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s=%v", types.ErrInvalidInput, name, v))
		}
	}
	if !maths.VecIsFinite(g.ShoulderOffset) {
		errs = append(errs, fmt.Errorf("%w: shoulder_offset=%v", types.ErrInvalidInput, g.ShoulderOffset))
	}
	for name, a := range map[string]transform.Axis{
		"hip_axis":      g.HipAxis,
		"shoulder_axis": g.ShoulderAxis,
		"elbow_axis":    g.ElbowAxis,
	} {
		if !a.Valid() {
			errs = append(errs, fmt.Errorf("%w: %s", types.ErrInvalidAxis, name))
		}
	}
	return errors.Join(errs...)
}

// MaxReach 足端到基座原点的最大距离上界
func (g Geometry) MaxReach() float64 {
	return g.HipOffset + r3.Norm(g.ShoulderOffset) + g.UpperLeg + g.LowerLeg
}
