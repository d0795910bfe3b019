// Command cartree grows CART decision trees from CSV files, selects the
// cost-complexity pruned tree for a given alpha and uses it for prediction.
//
//	cartree fit --data train.csv --target species --ccp-alpha 0.01 --out model.json
//	cartree predict --model model.json --data rows.csv
//	cartree evaluate --model model.json --data test.csv --target species
//	cartree path --data train.csv --target species --plot path.png
//
// Every flag can also be set in the YAML file given with --config or through
// a CARTREE_ environment variable (CARTREE_CCP_ALPHA, CARTREE_LOG_LEVEL, ...).
// Flags win over the environment, which wins over the config file.
package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
)

const envPrefix = "CARTREE"

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "cartree",
		Short:        "cartree grows and prunes CART decision trees",
		Long:         `A tool to grow classification and regression trees from CSV data, prune them by minimal cost-complexity and make predictions with them`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(v, cmd)
		},
	}
	rootCmd.PersistentFlags().String("config", "", "path to a YAML file with default flag values")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(fitCmd(v), predictCmd(v), evaluateCmd(v), pathCmd(v))
	return rootCmd
}

// setup binds the flags of the running command, reads the config file and
// installs the logger.
func setup(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return errors.Wrap(err, "binding flags")
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", file)
		}
	}
	return log.SetupLogger(cmd.ErrOrStderr(), v.GetString("log-level"))
}

func logger() log.Logger {
	return log.GetLoggerWithName("cli")
}
