// Command halo runs the distributed stencil and shortest-path engines from
// the command line.
//
//	halo stretch in.bmp out.bmp 75 --workers 4
//	halo apsp edges.txt 1000 --workers 4 --threads 8 --out dist.txt
//	halo workgraph --vertices 5000 --threads 8
//
// Every flag can also be set through a HALO_<COMMAND>_<FLAG> environment
// variable, a .env file in the working directory, or a --config file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
