package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qri-io/hyperslab"
	"github.com/qri-io/hyperslab/internal/logger"
	"github.com/qri-io/hyperslab/zarr"
)

// chunkPlan lists the chunks of an array a selection touches
type chunkPlan struct {
	Array  string                 `json:"array" yaml:"array"`
	Shape  []int                  `json:"shape" yaml:"shape"`
	Chunks []zarr.ChunkProjection `json:"chunks" yaml:"chunks"`
}

func (c *chunkPlan) Headers() []string { return []string{"Chunk", "Key", "Count"} }

func (c *chunkPlan) Rows() [][]string {
	rows := make([][]string, len(c.Chunks))
	for i, ch := range c.Chunks {
		coords := make([]string, len(ch.ChunkCoords))
		for j, x := range ch.ChunkCoords {
			coords[j] = strconv.Itoa(x)
		}
		rows[i] = []string{"(" + strings.Join(coords, ", ") + ")", ch.Key, strconv.Itoa(ch.Count)}
	}
	return rows
}

func newInspectCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect SELECTION",
		Short: "Plan which chunks of a zarr array a selection touches",
		Example: `  zsel inspect --store ./data.zarr --path temps '(..10, 3)'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := v.GetString("store")
			if dir == "" {
				return fmt.Errorf("a store directory is required (--store or ZSEL_STORE)")
			}
			store, err := zarr.NewLocalStore(dir)
			if err != nil {
				return err
			}
			arr, err := zarr.Open(store, v.GetString("path"), zarr.ModeRead)
			if err != nil {
				return err
			}
			slog.Debug("inspecting array", logger.KeyStore, dir, logger.KeyPath, arr.Path())

			sel, err := hyperslab.ParseSelection(args[0])
			if err != nil {
				return err
			}
			chunks, err := arr.Chunks(sel)
			if err != nil {
				return err
			}
			meta, err := arr.Meta()
			if err != nil {
				return err
			}

			p, err := printer(cmd, v)
			if err != nil {
				return err
			}
			return p.Print(&chunkPlan{Array: arr.Path(), Shape: meta.Shape, Chunks: chunks})
		},
	}
	cmd.Flags().String("store", "", "Directory of a zarr store")
	cmd.Flags().String("path", "", "Array path within the store")
	return cmd
}
