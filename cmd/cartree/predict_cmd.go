package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/cartree/pkg/log"
)

func predictCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the rows of a CSV file with a fitted tree",
		Long:  `Predict every row of a CSV file with a model written by fit. Columns are matched to the tree's features by header name; one prediction is written per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			m, err := loadModel(v.GetString("model"))
			if err != nil {
				return err
			}
			header, rows, err := readCSV(cmd, v.GetString("data"))
			if err != nil {
				return err
			}
			preds, err := m.PredictNamed(namedRows(header, rows, ""))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range preds {
				label := m.Tree.Label(p)
				if label == "" {
					label = strconv.FormatFloat(p, 'g', -1, 64)
				}
				if _, err := fmt.Fprintln(out, label); err != nil {
					return err
				}
			}
			logger().Info("Rows predicted",
				log.OperationKey, log.OperationPredict,
				log.PhaseKey, log.PhaseInference,
				log.SourceKey, source(v.GetString("data")),
				log.PredsKey, len(preds),
				log.DurationMsKey, time.Since(start),
			)
			return nil
		},
	}
	cmd.Flags().StringP("model", "m", "", "path to a model written by fit (required)")
	cmd.Flags().StringP("data", "i", "", "path to a CSV file with a header line (defaults to STDIN)")
	return cmd
}
