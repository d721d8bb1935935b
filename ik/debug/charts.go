package debug

import (
	"fmt"
	"io"
	"net/http"

	"reacher/types"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	echartstypes "github.com/go-echarts/go-echarts/v2/types"
	"go.uber.org/zap"
)

// Charts 曲线绘制
type Charts struct {
	Record
	Logger *zap.Logger
}

func lineOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme: echartstypes.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	}
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	results := c.Snapshot()
	// 代价曲线
	lineC := charts.NewLine()
	lineC.SetGlobalOptions(lineOptions("代价曲线", "每次迭代后足端与目标的距离 (m)")...)
	// 关节角曲线
	lineJ := make([]*charts.Line, types.JointCount)
	for j := range lineJ {
		lineJ[j] = charts.NewLine()
		lineJ[j].SetGlobalOptions(lineOptions(fmt.Sprintf("%s 关节角", types.JointNames[j]), "每次迭代后的关节角 (rad)")...)
	}
	// 处理数据
	maxIter := 0
	for _, res := range results {
		maxIter = max(maxIter, len(res.History))
	}
	axis := make([]int, maxIter+1)
	for i := range axis {
		axis[i] = i
	}
	lineC.SetXAxis(axis)
	for _, l := range lineJ {
		l.SetXAxis(axis)
	}
	for i, res := range results {
		name := fmt.Sprintf("#%d %s", i+1, res.Status)
		cost := make([]opts.LineData, 0, len(res.History))
		for _, step := range res.History {
			cost = append(cost, opts.LineData{Value: step.Cost})
		}
		// 第 0 点为初始猜测, 代价未知
		lineC.AddSeries(name, append([]opts.LineData{{Value: "-"}}, cost...))
		for j, l := range lineJ {
			data := make([]opts.LineData, 0, len(res.History)+1)
			if len(res.Initial) == types.JointCount {
				data = append(data, opts.LineData{Value: res.Initial[j]})
			}
			for _, step := range res.History {
				data = append(data, opts.LineData{Value: step.Angles[j]})
			}
			l.AddSeries(name, data)
		}
	}
	// 构建界面
	page := components.NewPage()
	page.AddCharts(lineC)
	for _, l := range lineJ {
		page.AddCharts(l)
	}
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) {
	if c.Logger != nil {
		c.Logger.Error("渲染曲线失败", zap.Error(err))
	}
}
