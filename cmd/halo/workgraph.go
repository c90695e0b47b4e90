package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/halo/workgraph"
)

func (a *app) workgraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workgraph",
		Short: "Traverse a synthetic work graph with a worker pool",
		Args:  cobra.NoArgs,
		RunE: usageOnConfigError(func(cmd *cobra.Command, _ []string) error {
			return a.workgraph(cmd)
		}),
	}
	cmd.Flags().Int("vertices", 1000, "graph size")
	cmd.Flags().Int("degree", 3, "max extra out-edges per vertex")
	cmd.Flags().Duration("max-work", time.Millisecond, "max work per vertex")
	cmd.Flags().Int64("seed", 1, "graph seed")
	cmd.Flags().IntP("threads", "t", workgraph.DefaultOptions().Workers, "pool size")
	a.bind(cmd.Flags(), "workgraph")

	return cmd
}

func (a *app) workgraph(cmd *cobra.Command) error {
	g, err := workgraph.NewRandom(
		a.v.GetInt("workgraph.vertices"),
		a.v.GetInt("workgraph.degree"),
		a.v.GetDuration("workgraph.max-work"),
		a.v.GetInt64("workgraph.seed"),
	)
	if err != nil {
		return err
	}
	threads := a.v.GetInt("workgraph.threads")
	a.log.Info("work graph", "vertices", g.Len(), "start", g.Start(), "threads", threads)

	start := time.Now()
	res, err := workgraph.Traverse(cmd.Context(), g, workgraph.WithWorkers(threads))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "visited %d vertices in %d levels (%s)\n",
		res.Visited, res.Levels, time.Since(start).Round(time.Millisecond))

	return err
}
