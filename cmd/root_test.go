package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frickiericker/latemp/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// run executes a fresh command tree with args and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestLatitude(t *testing.T) {
	out, err := run(t, "10 20\n30 40\n", "latitude")
	require.NoError(t, err)
	assert.Equal(t, "90\t73.4847\n51.9615\t0\n", out)

	out, err = run(t, "10 20\n30 40\n", "latitude", "--max-lat", "60")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "60\t"), "got %q", out)

	_, err = run(t, "5 5\n5 5\n", "latitude")
	assert.ErrorIs(t, err, grid.ErrFlat)

	out, err = run(t, "10 nan\n30 40\n", "latitude")
	assert.ErrorIs(t, err, grid.ErrMalformed)
	assert.Empty(t, out)
}

func TestFillHoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lat.dat")
	require.NoError(t, os.WriteFile(path, []byte("90 80\n70 85\n40 30\n50 10\n"), 0o644))

	out, err := run(t, "", "fillholes", path)
	require.NoError(t, err)
	assert.Equal(t, "90\t80\n90\t85\n50\t30\n50\t10\n", out)

	_, err = run(t, "", "fillholes", filepath.Join(t.TempDir(), "missing.dat"))
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	out, err := run(t, "", "chain", "--iterations", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 73)
}

func TestGrid(t *testing.T) {
	dir := t.TempDir()
	posPath := filepath.Join(dir, "pos.dat")
	attrPath := filepath.Join(dir, "attr.dat")
	pos := mat.NewDense(2, 3, []float64{
		0.9, 0.5, 0.1,
		0.6, 0.2, -0.2,
	})
	attr := mat.NewDense(2, 3, []float64{
		0.9, 0.5, 0.1,
		0.6, 0.2, 0.2,
	})
	require.NoError(t, grid.WriteFile(posPath, pos))
	require.NoError(t, grid.WriteFile(attrPath, attr))

	t.Run("stdout", func(t *testing.T) {
		out, err := run(t, "", "grid", "-p", posPath, "-a", attrPath, "--iterations", "5")
		require.NoError(t, err)
		got, err := grid.Load(strings.NewReader(out))
		require.NoError(t, err)
		r, c := got.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 3, c)
	})

	t.Run("output and summary", func(t *testing.T) {
		outPath := filepath.Join(dir, "out.dat")
		summaryPath := filepath.Join(dir, "summary.json")
		out, err := run(t, "", "grid", "-p", posPath, "-a", attrPath, "-o", outPath,
			"--iterations", "5", "--summary", summaryPath)
		require.NoError(t, err)
		assert.Empty(t, out)

		_, err = grid.LoadFile(outPath)
		require.NoError(t, err)

		data, err := os.ReadFile(summaryPath)
		require.NoError(t, err)
		var summary map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &summary))
		assert.Equal(t, 5.0, summary["iterations"])
		assert.Equal(t, 2.0, summary["rows"])
	})

	t.Run("missing positions", func(t *testing.T) {
		_, err := run(t, "", "grid", "-a", attrPath)
		assert.EqualError(t, err, "grid.positions is required")
	})

	t.Run("invalid method", func(t *testing.T) {
		_, err := run(t, "", "grid", "-p", posPath, "-a", attrPath, "--method", "newton")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	yaml := "chain:\n  positions: [0.3, 0.2]\n  attractors: [0.3, 0.2]\n  iterations: 2\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	out, err := run(t, "", "--config", cfgPath, "chain")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	_, err = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "version")
	assert.Error(t, err)
}
