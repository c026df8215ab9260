// Command simpleeq is a three-band parametric equalizer: a Butterworth
// low-cut, an RBJ peak band and a Butterworth high-cut on two channels.
//
// Usage:
//
//	simpleeq render [flags] <input> <output.wav>
//	simpleeq live [flags]
//	simpleeq response [flags]
//	simpleeq params [flags]
//
// Examples:
//
//	simpleeq render --lowcut 80 --lowcut-slope 24 --peak-freq 3000 --peak-gain 4 in.flac out.wav
//	simpleeq live --preset vocal.yaml --watch --metrics
//	simpleeq response --peak-gain -6 --points 20
//	simpleeq params --preset vocal.yaml --save copy.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "simpleeq:", err)
		stop()
		os.Exit(1)
	}
}
