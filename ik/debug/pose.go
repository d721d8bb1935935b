package debug

import (
	"fmt"
	"image/color"
	"io"

	"reacher/kinematics"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/gonum/spatial/r3"
)

// PoseSize 位姿图尺寸
var PoseSize = 4 * vg.Inch

// RenderPose 绘制腿部侧视 (x-z) 投影并以 PNG 输出
//
//	positions: 各关节位置
//	target: 目标位置, nil 时不绘制
func RenderPose(w io.Writer, positions kinematics.Positions, target *r3.Vec) error {
	p := plot.New()
	p.Title.Text = "leg pose (x-z)"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "z (m)"
	p.Add(plotter.NewGrid())

	// 基座原点 -> 髋 -> 肩 -> 肘 -> 足
	pts := make(plotter.XYs, 0, 5)
	pts = append(pts, plotter.XY{})
	for _, v := range positions.Slice() {
		pts = append(pts, plotter.XY{X: v.X, Y: v.Z})
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("绘制连杆失败: %w", err)
	}
	line.LineStyle.Width = vg.Points(3)
	line.LineStyle.Color = color.RGBA{R: 0x19, G: 0x87, B: 0xc7, A: 0xff}
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(4)
	p.Add(line, points)
	p.Legend.Add("leg", line, points)

	if target != nil {
		mark, err := plotter.NewScatter(plotter.XYs{{X: target.X, Y: target.Z}})
		if err != nil {
			return fmt.Errorf("绘制目标失败: %w", err)
		}
		mark.Shape = draw.CrossGlyph{}
		mark.Radius = vg.Points(6)
		mark.Color = color.RGBA{R: 0xc7, G: 0x19, B: 0x79, A: 0xff}
		p.Add(mark)
		p.Legend.Add("target", mark)
	}

	wt, err := p.WriterTo(PoseSize, PoseSize, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
