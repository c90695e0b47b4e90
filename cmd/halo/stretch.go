package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/halo/bitmap"
	"github.com/katalvlaran/halo/stencil"
)

func (a *app) stretchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stretch <infile.bmp> <outfile.bmp> <steps>",
		Short: "Contrast-stretch a 24-bit bitmap",
		Args:  cobra.ExactArgs(3),
		RunE: usageOnConfigError(func(cmd *cobra.Command, args []string) error {
			steps, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("steps %q: %w", args[2], err)
			}

			return a.stretch(cmd, args[0], args[1], steps)
		}),
	}
	cmd.Flags().Int("step-by", stencil.DefaultStepBy, "amount a channel moves per step")
	cmd.Flags().Int("workers", stencil.DefaultWorkers, "row partitions")
	cmd.Flags().Int("threads", stencil.DefaultThreads, "goroutines per partition")
	a.bind(cmd.Flags(), "stretch")

	return cmd
}

func (a *app) stretch(cmd *cobra.Command, in, out string, steps int) error {
	img, err := bitmap.Read(in)
	if err != nil {
		return err
	}
	a.log.Info("loaded bitmap", "file", in, "width", img.Width, "height", img.Height)

	start := time.Now()
	pixels, res, err := stencil.Stretch(cmd.Context(), img.Pixels,
		stencil.WithSteps(steps),
		stencil.WithStepBy(a.v.GetInt("stretch.step-by")),
		stencil.WithChannels(bitmap.Channels),
		stencil.WithWorkers(a.v.GetInt("stretch.workers")),
		stencil.WithThreads(a.v.GetInt("stretch.threads")),
		stencil.WithLogger(a.log),
		stencil.WithOnStep(func(step, changes int) {
			a.log.Info("step", "step", step, "changes", changes)
		}),
	)
	if err != nil {
		return err
	}
	a.log.Info("stretch done", "steps", res.Steps, "converged", res.Converged, "elapsed", time.Since(start))

	return writeFile(out, func(w io.Writer) error {
		return bitmap.Encode(w, &bitmap.Image{Pixels: pixels, Width: img.Width, Height: img.Height})
	})
}
