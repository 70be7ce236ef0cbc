package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/topograph/dump"
	"github.com/katalvlaran/topograph/topofile"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Print one layer's element ids and coordinates as CSV",
	Long: `nodes loads an experiment file, builds its layers and prints the
id and coordinates of every element of the named layer to stdout.`,
	Args: cobra.NoArgs,
	RunE: runNodes,
}

func init() {
	nodesCmd.Flags().StringVarP(&flagFile, "file", "f", "", "experiment YAML file")
	nodesCmd.Flags().StringVarP(&flagLayer, "layer", "l", "", "layer name to dump")
	_ = nodesCmd.MarkFlagRequired("file")
	_ = nodesCmd.MarkFlagRequired("layer")
	rootCmd.AddCommand(nodesCmd)
}

func runNodes(cmd *cobra.Command, args []string) error {
	f, err := topofile.LoadFile(flagFile)
	if err != nil {
		return err
	}
	layers, err := f.BuildLayers()
	if err != nil {
		return err
	}
	l, ok := layers[flagLayer]
	if !ok {
		return fmt.Errorf("%w: %q", topofile.ErrUnknownLayer, flagLayer)
	}
	return dump.Nodes(cmd.OutOrStdout(), l)
}
