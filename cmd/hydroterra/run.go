package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"

	"github.com/katalvlaran/hydroterra/config"
	"github.com/katalvlaran/hydroterra/export"
	"github.com/katalvlaran/hydroterra/growth"
	"github.com/katalvlaran/hydroterra/honeycomb"
	"github.com/katalvlaran/hydroterra/persistence"
	"github.com/katalvlaran/hydroterra/planar"
	"github.com/katalvlaran/hydroterra/watershed"
)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if f.config != "" {
		if cfg, err = config.Load(f.config); err != nil {
			return err
		}
	}
	if f.seed != 0 {
		cfg.Growth.Seed = f.seed
	}
	if f.db != "" {
		cfg.Output.Database = f.db
	}
	if f.geojson != "" {
		cfg.Output.GeoJSON = f.geojson
	}
	if f.svg != "" {
		cfg.Output.SVG = f.svg
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Output.Level()}))

	var m *persistence.Model
	if f.load != "" {
		m, err = load(ctx, f.load, logger)
	} else {
		m, err = generate(ctx, cfg, f.progress, logger)
	}
	if err != nil {
		return err
	}

	if err := write(cfg.Output, m, logger); err != nil {
		return err
	}
	summarize(stdout, m)
	return nil
}

func load(ctx context.Context, path string, logger *slog.Logger) (*persistence.Model, error) {
	st, err := persistence.Open(path, persistence.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Load(ctx)
}

func generate(ctx context.Context, cfg config.Config, progress bool, logger *slog.Logger) (*persistence.Model, error) {
	start := time.Now()
	s, err := cfg.Shore.Build()
	if err != nil {
		return nil, fmt.Errorf("shore: %w", err)
	}
	logger.Info("shore ready", "points", s.Len(), "area", humanize.SIWithDigits(planar.Area(s.Contour()), 2, "m²"))

	riverSlope, err := cfg.Terrain.RiverSlope.Sampler()
	if err != nil {
		return nil, err
	}
	steps := 0
	net, err := growth.Grow(ctx, s, riverSlope, cfg.Growth,
		growth.WithLogger(logger),
		growth.WithOnStep(func(growth.Step) { steps++ }))
	if err != nil {
		return nil, fmt.Errorf("growth: %w", err)
	}
	logger.Info("rivers grown", "nodes", net.Len(), "mouths", len(net.Mouths()), "steps", steps)

	opts := []honeycomb.Option{honeycomb.WithLogger(logger)}
	if progress {
		uiprogress.Start()
		bar := uiprogress.AddBar(net.Len()).AppendCompleted().PrependElapsed()
		opts = append(opts, honeycomb.WithOnCell(func(done, _ int) { _ = bar.Set(done) }))
		defer uiprogress.Stop()
	}
	h, err := honeycomb.Build(ctx, s, net, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("honeycomb built", "qs", len(h.AllQs()), "edges", len(h.AllEdges()))

	if err := watershed.Compute(ctx, net, h); err != nil {
		return nil, err
	}
	watershed.TraceRivers(net)
	terrainSlope, err := cfg.Terrain.TerrainSlope.Sampler()
	if err != nil {
		return nil, err
	}
	honeycomb.RidgeElevations(h, net, terrainSlope, cfg.Terrain.SlopeRate)

	m := &persistence.Model{ID: uuid.New(), Parameters: cfg.Growth, Shore: s, Network: net, Honeycomb: h}
	if cfg.Output.Database != "" {
		st, err := persistence.Open(cfg.Output.Database, persistence.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		defer st.Close()
		if err := st.Save(ctx, m); err != nil {
			return nil, err
		}
	}
	logger.Info("generation finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return m, nil
}

func write(out config.Output, m *persistence.Model, logger *slog.Logger) error {
	in := export.Input{ModelID: m.ID, Shore: m.Shore, Network: m.Network, Honeycomb: m.Honeycomb}
	if out.GeoJSON != "" {
		if err := writeFile(out.GeoJSON, func(w io.Writer) error { return export.WriteGeoJSON(w, in) }); err != nil {
			return err
		}
		logger.Info("geojson written", "path", out.GeoJSON)
	}
	if out.SVG != "" {
		var opts []export.SVGOption
		if out.SVGWidth > 0 {
			opts = append(opts, export.WithWidth(out.SVGWidth))
		}
		if err := writeFile(out.SVG, func(w io.Writer) error { return export.WriteSVG(w, in, opts...) }); err != nil {
			return err
		}
		logger.Info("svg written", "path", out.SVG)
	}
	return nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(file)
}

func summarize(w io.Writer, m *persistence.Model) {
	fmt.Fprintf(w, "model      %s\n", m.ID)
	fmt.Fprintf(w, "nodes      %s\n", humanize.Comma(int64(m.Network.Len())))
	fmt.Fprintf(w, "mouths     %s\n", humanize.Comma(int64(len(m.Network.Mouths()))))
	if h := m.Honeycomb; h != nil {
		fmt.Fprintf(w, "cells      %s\n", humanize.Comma(int64(h.NumCells())))
		fmt.Fprintf(w, "edges      %s\n", humanize.Comma(int64(len(h.AllEdges()))))
	}
	maxFlow := 0.0
	for _, id := range m.Network.Mouths() {
		if fl := m.Network.Node(id).Flow; fl > maxFlow {
			maxFlow = fl
		}
	}
	fmt.Fprintf(w, "max flow   %s\n", humanize.SIWithDigits(maxFlow, 3, "m³/s"))
}
