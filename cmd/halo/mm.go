package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/halo/matmul"
)

func (a *app) mmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mm",
		Short: "Multiply two self-checking n×n matrices",
		Args:  cobra.NoArgs,
		RunE:  usageOnConfigError(a.mm),
	}
	cmd.Flags().IntP("size", "n", 2000, "matrix dimension")
	cmd.Flags().IntP("threads", "t", 1, "row-strip goroutines")
	a.bind(cmd.Flags(), "mm")

	return cmd
}

func (a *app) mm(cmd *cobra.Command, _ []string) error {
	n, threads := a.v.GetInt("mm.size"), a.v.GetInt("mm.threads")
	x, y, err := matmul.Fill(n)
	if err != nil {
		return err
	}

	start := time.Now()
	c, err := matmul.Multiply(x, y, threads)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	a.log.Info("multiply done", "size", n, "threads", threads, "elapsed", elapsed)
	if err = matmul.Check(c); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok n=%d threads=%d elapsed=%s\n", n, threads, elapsed)

	return err
}
