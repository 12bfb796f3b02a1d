package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qri-io/hyperslab"
	"github.com/qri-io/hyperslab/internal/logger"
	"github.com/qri-io/hyperslab/internal/output"
)

// resolution is the printable result of resolving a selection
type resolution struct {
	Selection string               `json:"selection" yaml:"selection"`
	Shape     []int                `json:"shape" yaml:"shape"`
	Kind      string               `json:"kind" yaml:"kind"`
	Slices    []hyperslab.RawSlice `json:"slices,omitempty" yaml:"slices,omitempty"`
	Points    [][]int              `json:"points,omitempty" yaml:"points,omitempty"`
	Size      int                  `json:"size" yaml:"size"`
	OutShape  []int                `json:"out_shape" yaml:"out_shape"`
	OutNDim   *int                 `json:"out_ndim" yaml:"out_ndim"`
}

func resolve(sel hyperslab.Selection, shape []int) (*resolution, error) {
	raw, err := sel.IntoRaw(shape)
	if err != nil {
		return nil, err
	}
	out, err := sel.OutShape(shape)
	if err != nil {
		return nil, err
	}
	size, err := raw.Size(shape)
	if err != nil {
		return nil, err
	}

	res := &resolution{
		Selection: sel.String(),
		Shape:     shape,
		Kind:      raw.Kind().String(),
		Size:      size,
		OutShape:  out,
	}
	if n, ok := sel.OutNDim(); ok {
		res.OutNDim = &n
	}
	if h, ok := raw.Hyperslab(); ok {
		res.Slices = h
	}
	if p, ok := raw.Points(); ok {
		res.Points = p.Rows()
	}
	slog.Debug("resolved selection", logger.KeySelection, res.Selection, logger.KeyShape, shape, logger.KeyKind, res.Kind)
	return res, nil
}

func (r *resolution) Headers() []string {
	return []string{"Axis", "Start", "Step", "Count", "Block"}
}

func (r *resolution) Rows() [][]string {
	rows := make([][]string, len(r.Slices))
	for i, s := range r.Slices {
		count := "∞"
		if n, ok := s.BlockCount(); ok {
			count = strconv.Itoa(n)
		}
		rows[i] = []string{strconv.Itoa(i), strconv.Itoa(s.Start), strconv.Itoa(s.Step), count, strconv.Itoa(s.Block)}
	}
	return rows
}

func (r *resolution) summary() [][2]string {
	ndim := "same as input"
	if r.OutNDim != nil {
		ndim = strconv.Itoa(*r.OutNDim)
	}
	return [][2]string{
		{"selection", r.Selection},
		{"kind", r.Kind},
		{"size", strconv.Itoa(r.Size)},
		{"out shape", fmt.Sprint(r.OutShape)},
		{"out ndim", ndim},
	}
}

func newResolveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve SELECTION",
		Short: "Resolve a selection against a shape",
		Example: `  zsel resolve --shape 10,20 '(1..;2, 3)'
  zsel resolve --shape 4 '[0, 3]' -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, err := parseShape(v.GetString("shape"))
			if err != nil {
				return fmt.Errorf("invalid shape %q: %w", v.GetString("shape"), err)
			}
			sel, err := hyperslab.ParseSelection(args[0])
			if err != nil {
				return err
			}
			res, err := resolve(sel, shape)
			if err != nil {
				return err
			}
			return printResolution(cmd, v, res)
		},
	}
	cmd.Flags().String("shape", "", "Comma separated array shape, empty for a scalar")
	return cmd
}

func printResolution(cmd *cobra.Command, v *viper.Viper, res *resolution) error {
	p, err := printer(cmd, v)
	if err != nil {
		return err
	}
	if p.Format() != output.FormatTable {
		return p.Print(res)
	}
	if len(res.Slices) > 0 {
		if err := output.PrintTable(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return output.KeyValues(cmd.OutOrStdout(), res.summary())
}
