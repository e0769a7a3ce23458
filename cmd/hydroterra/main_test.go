package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
growth:
  numMajorRivers: 3
terrain:
  riverSlope: {kind: constant, value: 120}
  terrainSlope: {kind: constant, value: 60}
shore:
  blob: {radius: 40000, points: 96, roughness: 0}
output:
  logLevel: error
`

func TestRunGenerateAndLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o600))
	db := filepath.Join(dir, "model.db")
	gj := filepath.Join(dir, "model.geojson")
	svgPath := filepath.Join(dir, "model.svg")

	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{
		"-config", cfgPath, "-db", db, "-geojson", gj, "-svg", svgPath, "-seed", "11",
	}, &out, &errOut)
	require.NoError(t, err, errOut.String())
	for _, p := range []string{db, gj, svgPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), p)
	}
	assert.Contains(t, out.String(), "cells")
	modelLine := strings.SplitN(out.String(), "\n", 2)[0]

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"-load", db}, &out, &errOut))
	assert.Equal(t, modelLine, strings.SplitN(out.String(), "\n", 2)[0], "loaded model keeps its id")
}

func TestRunBadFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Error(t, run(context.Background(), []string{"-nope"}, &out, &errOut))
	assert.Error(t, run(context.Background(), []string{"extra"}, &out, &errOut))
	assert.Error(t, run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &out, &errOut))
}
