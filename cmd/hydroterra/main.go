// Command hydroterra grows river networks on an island, partitions the land
// into drainage cells and writes the result to SQLite, GeoJSON and SVG.
//
// Usage:
//
//	hydroterra [-config run.yaml] [-seed N] [-db out.db] [-geojson out.geojson] [-svg out.svg]
//	hydroterra -load out.db [-geojson out.geojson] [-svg out.svg]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Error("hydroterra failed", "error", err)
		os.Exit(1)
	}
}

// flags are the command-line overrides of the configuration file.
type flags struct {
	config   string
	load     string
	seed     int64
	db       string
	geojson  string
	svg      string
	progress bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("hydroterra", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "YAML run configuration (defaults when empty)")
	fs.StringVar(&f.load, "load", "", "load a saved model instead of generating one")
	fs.Int64Var(&f.seed, "seed", 0, "override growth.seed when non-zero")
	fs.StringVar(&f.db, "db", "", "override output.database")
	fs.StringVar(&f.geojson, "geojson", "", "override output.geojson")
	fs.StringVar(&f.svg, "svg", "", "override output.svg")
	fs.BoolVar(&f.progress, "progress", false, "show a progress bar while cells are built")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	if fs.NArg() > 0 {
		return flags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}
