// Package commands implements the zsel command tree.
package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qri-io/hyperslab/internal/logger"
	"github.com/qri-io/hyperslab/internal/output"
)

// Version information injected at build time
var (
	Version = "dev"
	Commit  = "none"
)

const envPrefix = "ZSEL"

// NewRootCmd builds the zsel command tree. Settings resolve flag first, then
// ZSEL_* environment variable, then default.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "zsel",
		Short: "Resolve array selections against array shapes",
		Long: `zsel translates slicing expressions such as "(1..;2, 3)" into the raw
start/step/count/block form a storage engine applies, and reports the shape of
the data they select.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			return logger.Init(logger.Config{
				Level:  v.GetString("log-level"),
				Format: v.GetString("log-format"),
				Output: v.GetString("log-output"),
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("output", "o", "table", "Output format (table|json|yaml)")
	flags.String("log-level", "WARN", "Log level (DEBUG|INFO|WARN|ERROR)")
	flags.String("log-format", "text", "Log format (text|json)")
	flags.String("log-output", "stderr", "Log destination (stdout|stderr|file path)")

	root.AddCommand(newResolveCmd(v))
	root.AddCommand(newInspectCmd(v))
	root.AddCommand(newVersionCmd())
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

func printer(cmd *cobra.Command, v *viper.Viper) (*output.Printer, error) {
	f, err := output.ParseFormat(v.GetString("output"))
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(cmd.OutOrStdout(), f), nil
}

// parseShape reads a comma separated list of dimensions. An empty string is
// the shape of a scalar.
func parseShape(s string) ([]int, error) {
	s = strings.Trim(strings.TrimSpace(s), "()[]")
	if s == "" {
		return []int{}, nil
	}
	fields := strings.Split(s, ",")
	shape := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		if d < 0 {
			return nil, strconv.ErrRange
		}
		shape = append(shape, d)
	}
	return shape, nil
}
