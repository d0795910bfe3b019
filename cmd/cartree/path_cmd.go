package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/cartree/pkg/log"
	"github.com/YuminosukeSato/cartree/sklearn/tree"
)

func pathCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cost-complexity pruning path of a CSV file",
		Long:  `Grow a full tree on the data and prune it one weakest link at a time, printing the effective alpha, total leaf error and leaf count after each step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := trainingSet(cmd, v)
			if err != nil {
				return err
			}
			path, err := tree.CostComplexityPruningPath(data, treeConfig(v))
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"step", "alpha", "total error", "leaves"})
			for i := 0; i < path.Len(); i++ {
				t.AppendRow(table.Row{
					i,
					fmt.Sprintf("%.6g", path.Alphas[i]),
					fmt.Sprintf("%.6g", path.TotalErrors[i]),
					path.Leaves[i],
				})
			}
			t.Render()

			if plot := v.GetString("plot"); plot != "" {
				if err := tree.PlotPruningPath(path, plot); err != nil {
					return err
				}
				logger().Info("Pruning path plotted", log.StepsKey, path.Steps(), "file", plot)
			}
			return nil
		},
	}
	addTreeFlags(cmd)
	cmd.Flags().String("plot", "", "also draw total error against alpha to this image file (.png, .svg, .pdf)")
	return cmd
}
