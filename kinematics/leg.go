// Package kinematics 实现三自由度串联腿的正运动学链:
// 基座 -> 髋 -> 肩 -> 肘 -> 足.
package kinematics

import (
	"fmt"

	"reacher/maths"
	"reacher/transform"
	"reacher/types"

	"gonum.org/v1/gonum/spatial/r3"
)

// Leg 正运动学链
// 创建后只读, 可被多个协程同时使用
type Leg struct {
	geometry Geometry
	hipLink  maths.Matrix4 // 髋关节固定偏移
	footLink maths.Matrix4 // 肘到足的固定连杆
}

// Positions 各关节原点在基座坐标系中的位置
type Positions struct {
	Hip      r3.Vec
	Shoulder r3.Vec
	Elbow    r3.Vec
	Foot     r3.Vec
}

// Slice 按链顺序返回
func (p Positions) Slice() []r3.Vec {
	return []r3.Vec{p.Hip, p.Shoulder, p.Elbow, p.Foot}
}

// NewLeg 创建正运动学链
func NewLeg(g Geometry) (*Leg, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("几何参数错误: %w", err)
	}
	return &Leg{
		geometry: g,
		hipLink:  transform.Translation(r3.Vec{Y: -g.HipOffset}),
		footLink: transform.Translation(r3.Vec{Z: g.LowerLeg}),
	}, nil
}

// Geometry 返回几何参数副本
func (leg *Leg) Geometry() Geometry { return leg.geometry }

// Hip 髋坐标系位姿
func (leg *Leg) Hip(angles []float64) (maths.Matrix4, error) {
	if err := types.CheckAngles(angles); err != nil {
		return maths.Matrix4{}, err
	}
	return leg.hip(angles), nil
}

// Shoulder 肩坐标系位姿
func (leg *Leg) Shoulder(angles []float64) (maths.Matrix4, error) {
	if err := types.CheckAngles(angles); err != nil {
		return maths.Matrix4{}, err
	}
	return leg.shoulder(angles), nil
}

// Elbow 肘坐标系位姿
func (leg *Leg) Elbow(angles []float64) (maths.Matrix4, error) {
	if err := types.CheckAngles(angles); err != nil {
		return maths.Matrix4{}, err
	}
	return leg.elbow(angles), nil
}

// Foot 足端坐标系位姿
func (leg *Leg) Foot(angles []float64) (maths.Matrix4, error) {
	if err := types.CheckAngles(angles); err != nil {
		return maths.Matrix4{}, err
	}
	return leg.foot(angles), nil
}

// FootPosition 足端位置（位姿的平移列）
func (leg *Leg) FootPosition(angles []float64) (r3.Vec, error) {
	pose, err := leg.Foot(angles)
	if err != nil {
		return r3.Vec{}, err
	}
	return pose.Translation(), nil
}

// Positions 一次计算全部关节位置, 供可视化使用
func (leg *Leg) Positions(angles []float64) (Positions, error) {
	if err := types.CheckAngles(angles); err != nil {
		return Positions{}, err
	}
	hip := leg.hip(angles)
	shoulder := leg.nextShoulder(hip, angles)
	elbow := leg.nextElbow(shoulder, angles)
	foot := elbow.Mul(leg.footLink)
	return Positions{
		Hip:      hip.Translation(),
		Shoulder: shoulder.Translation(),
		Elbow:    elbow.Translation(),
		Foot:     foot.Translation(),
	}, nil
}

/*-------------------------------------------------------------------------------------------------*/

func (leg *Leg) hip(angles []float64) maths.Matrix4 {
	rot := transform.Homogeneous(leg.geometry.HipAxis, angles[types.Hip], r3.Vec{})
	return rot.Mul(leg.hipLink)
}

func (leg *Leg) nextShoulder(hip maths.Matrix4, angles []float64) maths.Matrix4 {
	return hip.Mul(transform.Homogeneous(leg.geometry.ShoulderAxis, angles[types.Shoulder], leg.geometry.ShoulderOffset))
}

func (leg *Leg) nextElbow(shoulder maths.Matrix4, angles []float64) maths.Matrix4 {
	return shoulder.Mul(transform.Homogeneous(leg.geometry.ElbowAxis, angles[types.Elbow], r3.Vec{Z: leg.geometry.UpperLeg}))
}

func (leg *Leg) shoulder(angles []float64) maths.Matrix4 {
	return leg.nextShoulder(leg.hip(angles), angles)
}

func (leg *Leg) elbow(angles []float64) maths.Matrix4 {
	return leg.nextElbow(leg.shoulder(angles), angles)
}

func (leg *Leg) foot(angles []float64) maths.Matrix4 {
	return leg.elbow(angles).Mul(leg.footLink)
}
