package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/topograph/connect"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/dump"
	"github.com/katalvlaran/topograph/topofile"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run every connection pass of an experiment file",
	Long: `generate loads an experiment file, builds its layers, runs every
declared connection pass and writes one nodes CSV per layer plus one
connections CSV per pass into the output directory. The whole file is
validated before anything is written.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagFile, "file", "f", "", "experiment YAML file")
	generateCmd.Flags().StringVarP(&flagOut, "out", "o", "out", "output directory for CSV files")
	generateCmd.Flags().Int64Var(&flagSeed, "seed", 0, "base random seed")
	generateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	_ = generateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	f, err := topofile.LoadFile(flagFile)
	if err != nil {
		return err
	}
	layers, err := f.BuildLayers()
	if err != nil {
		return err
	}
	passes, err := f.Passes(layers)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flagOut, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// f.Layers preserves declaration order; the layers map does not.
	for _, ls := range f.Layers {
		if err := writeNodes(ls.Name, layers[ls.Name]); err != nil {
			return err
		}
	}

	total := 0
	for i := range passes {
		n, err := runPass(cmd.Context(), i, &passes[i])
		if err != nil {
			return err
		}
		total += n
	}

	logger.Info("experiment complete",
		zap.String("file", flagFile),
		zap.Int("layers", len(layers)),
		zap.Int("passes", len(passes)),
		zap.Int("connections", total),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func writeNodes(name string, l core.Layer) error {
	path := filepath.Join(flagOut, "nodes_"+name+".csv")
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := dump.Nodes(w, l); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logger.Debug("layer written",
		zap.String("layer", name),
		zap.Int("elements", l.Len()),
		zap.String("path", path))
	return nil
}

func runPass(ctx context.Context, i int, p *topofile.Pass) (int, error) {
	rec, err := dump.NewRecorder(p.From, p.To)
	if err != nil {
		return 0, err
	}

	opts := []connect.Option{
		connect.WithContext(ctx),
		connect.WithSeed(flagSeed),
	}
	if flagWorkers > 0 {
		opts = append(opts, connect.WithWorkers(flagWorkers))
	}
	if flagVerbose {
		opts = append(opts, connect.WithProgress(progressLogger(p.FromName, p.ToName)))
	}

	begin := time.Now()
	res, err := connect.Generate(p.Spec, p.From, p.To, rec, opts...)
	if err != nil {
		return 0, fmt.Errorf("pass %d (%s -> %s): %w", i, p.FromName, p.ToName, err)
	}

	for warn, drivers := range res.Warnings {
		logger.Warn("generation anomaly",
			zap.String("from", p.FromName),
			zap.String("to", p.ToName),
			zap.Stringer("warning", warn),
			zap.Int("drivers", drivers))
	}

	path := filepath.Join(flagOut, fmt.Sprintf("connections_%d_%s_%s.csv", i, p.FromName, p.ToName))
	w, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := dump.Connections(w, rec.Dim(), rec.Records()); err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("closing %s: %w", path, err)
	}

	logger.Info("pass complete",
		zap.String("from", p.FromName),
		zap.String("to", p.ToName),
		zap.Stringer("rule", p.Spec.Rule),
		zap.Int("drivers", res.Drivers),
		zap.Int("connections", res.Connections),
		zap.Duration("elapsed", time.Since(begin)),
		zap.String("path", path))
	return res.Connections, nil
}

// progressLogger reports roughly every tenth of the driver set.
func progressLogger(from, to string) func(done, total int) {
	return func(done, total int) {
		step := total / 10
		if step == 0 {
			step = 1
		}
		if done%step == 0 || done == total {
			logger.Debug("drivers processed",
				zap.String("from", from),
				zap.String("to", to),
				zap.Int("done", done),
				zap.Int("total", total))
		}
	}
}
