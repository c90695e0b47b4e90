package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/halo/apsp"
	"github.com/katalvlaran/halo/edgelist"
)

func (a *app) apspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apsp <edgefile> <vertices>",
		Short: "All-pairs shortest paths over an edge list",
		Args:  cobra.ExactArgs(2),
		RunE: usageOnConfigError(func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("vertices %q: %w", args[1], err)
			}

			return a.apsp(cmd, args[0], n)
		}),
	}
	cmd.Flags().Int("workers", 1, "row partitions")
	cmd.Flags().Int("threads", 1, "goroutines per partition")
	cmd.Flags().Int("progress-every", apsp.DefaultProgressEvery, "log every n-th pivot (0 disables)")
	cmd.Flags().String("out", "", "output matrix file (default stdout)")
	a.bind(cmd.Flags(), "apsp")

	return cmd
}

func (a *app) apsp(cmd *cobra.Command, in string, n int) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	d, st, err := edgelist.ReadEdges(f, n)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if st.Skipped > 0 {
		a.log.Warn("out-of-range edges ignored", "file", in, "skipped", st.Skipped)
	}
	a.log.Info("loaded graph", "file", in, "vertices", n, "edges", st.Edges)

	start := time.Now()
	dist, err := apsp.FloydWarshall(cmd.Context(), d,
		apsp.WithWorkers(a.v.GetInt("apsp.workers")),
		apsp.WithThreads(a.v.GetInt("apsp.threads")),
		apsp.WithProgressEvery(a.v.GetInt("apsp.progress-every")),
		apsp.WithLogger(a.log),
	)
	if err != nil {
		return err
	}
	a.log.Info("floyd-warshall done", "elapsed", time.Since(start))

	out := a.v.GetString("apsp.out")
	if out == "" {
		return edgelist.WriteMatrix(cmd.OutOrStdout(), dist)
	}

	return writeFile(out, func(w io.Writer) error { return edgelist.WriteMatrix(w, dist) })
}
