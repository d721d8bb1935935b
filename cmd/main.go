package main

import (
	"fmt"
	"io"
	"os"

	"reacher"
	"reacher/ik"
	"reacher/ik/debug"
	"reacher/maths"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

type options struct {
	config  string
	verbose bool
	logger  *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "reacher",
		Short:         "三自由度腿正逆运动学",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if o.verbose {
				o.logger, err = zap.NewDevelopment()
			} else {
				o.logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&o.config, "config", "c", "", "YAML 配置文件")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "输出调试日志")
	root.AddCommand(newFKCmd(o), newJacobianCmd(o), newIKCmd(o))
	return root
}

func (o *options) load() (*reacher.Reacher, error) {
	var (
		r   *reacher.Reacher
		err error
	)
	if o.config == "" {
		r, err = reacher.New(reacher.DefaultConfig())
	} else {
		r, err = reacher.Load(o.config)
	}
	if err != nil {
		return nil, err
	}
	if o.logger != nil {
		r.Logger = o.logger
	}
	return r, nil
}

func newFKCmd(o *options) *cobra.Command {
	var angles []float64
	cmd := &cobra.Command{
		Use:   "fk",
		Short: "计算各关节位姿",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := o.load()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, joint := range []struct {
				name string
				fk   func([]float64) (maths.Matrix4, error)
			}{
				{"hip", r.FKHip},
				{"shoulder", r.FKShoulder},
				{"elbow", r.FKElbow},
				{"foot", r.FKFoot},
			} {
				pose, err := joint.fk(angles)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s:\n%s\n", joint.name, pose)
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVarP(&angles, "angles", "a", []float64{0, 0, 0}, "关节角 hip,shoulder,elbow (rad)")
	return cmd
}

func newJacobianCmd(o *options) *cobra.Command {
	var (
		angles []float64
		delta  float64
	)
	cmd := &cobra.Command{
		Use:   "jacobian",
		Short: "有限差分雅可比",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := o.load()
			if err != nil {
				return err
			}
			j, err := r.CalculateJacobianFD(angles, delta)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), j)
			return nil
		},
	}
	cmd.Flags().Float64SliceVarP(&angles, "angles", "a", []float64{0, 0, 0}, "关节角 (rad)")
	cmd.Flags().Float64VarP(&delta, "delta", "d", 1e-4, "扰动 (rad)")
	return cmd
}

func newIKCmd(o *options) *cobra.Command {
	var (
		target, guess []float64
		chart, pose   string
	)
	cmd := &cobra.Command{
		Use:   "ik",
		Short: "牛顿迭代逆解",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := o.load()
			if err != nil {
				return err
			}
			if len(target) != 3 {
				return fmt.Errorf("target 需要 3 个分量, 得到 %d", len(target))
			}
			goal := maths.VecFromSlice(target)
			res, err := r.Solver.SolveResult(goal, guess)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "angles: %v\nstatus: %s\niterations: %d\ncost: %g\n", res.Angles, res.Status, res.Iterations, res.Cost)
			if _, err := r.Verifier.Check(goal, res.Angles); err != nil {
				r.Logger.Warn("逆解未通过复核", zap.Error(err))
				fmt.Fprintln(w, "verified: false")
			} else {
				fmt.Fprintln(w, "verified: true")
			}
			if chart != "" {
				c := &debug.Charts{Logger: r.Logger}
				c.Update(res)
				if err := writeFile(chart, c.Render); err != nil {
					return err
				}
			}
			if pose != "" {
				if err := writePose(r, pose, res, goal); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVarP(&target, "target", "t", nil, "目标位置 x,y,z (m)")
	cmd.Flags().Float64SliceVarP(&guess, "guess", "g", []float64{0, 0, 0}, "初始关节角 (rad)")
	cmd.Flags().StringVar(&chart, "chart", "", "输出迭代曲线 HTML")
	cmd.Flags().StringVar(&pose, "plot", "", "输出位姿 PNG")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func writePose(r *reacher.Reacher, filename string, res ik.Result, goal r3.Vec) error {
	positions, err := r.Positions(res.Angles)
	if err != nil {
		return err
	}
	return writeFile(filename, func(w io.Writer) error {
		return debug.RenderPose(w, positions, &goal)
	})
}

func writeFile(filename string, render func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := render(file); err != nil {
		return err
	}
	return file.Close()
}
