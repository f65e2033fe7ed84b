package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/rscope/pkg/graph"
	"github.com/Fepozopo/rscope/pkg/probe"
	"github.com/Fepozopo/rscope/pkg/rscope"
)

// runCLI executes the command tree with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(&out, &errOut)
	root.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	withVersion(t, "1.2.3")
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rscope 1.2.3\n", out)
}

func TestFiltersCommand(t *testing.T) {
	out, err := runCLI(t, "filters")
	require.NoError(t, err)
	for _, f := range rscope.NamedFilters() {
		assert.Contains(t, out, f.String())
	}
	assert.Contains(t, out, "mn:B,C")
}

func TestProbesCommand(t *testing.T) {
	out, err := runCLI(t, "probes")
	require.NoError(t, err)
	for _, name := range probe.Names() {
		assert.Contains(t, out, name)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	graphPath := filepath.Join(t.TempDir(), "scope.png")
	out, err := runCLI(t, "analyze", "perfect/triangle", "--graph", graphPath, "--ref", "triangle")
	require.NoError(t, err)
	assert.Contains(t, out, "== perfect/triangle")
	assert.Contains(t, out, "edge handling: Clamp")
	assert.Contains(t, out, "best match: Triangle")

	f, err := os.Open(graphPath)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, graph.Width, cfg.Width)
	assert.Equal(t, graph.Height, cfg.Height)
}

func TestAnalyzeCommandModes(t *testing.T) {
	out, err := runCLI(t, "analyze", "naive/nearest", "--mode", "down", "--edges=false")
	require.NoError(t, err)
	assert.Contains(t, out, "downscale:")
	assert.NotContains(t, out, "upscale:")
	assert.NotContains(t, out, "edge handling")

	_, err = runCLI(t, "analyze", "naive/nearest", "--mode", "sideways")
	assert.ErrorContains(t, err, "unknown mode")

	_, err = runCLI(t, "analyze", "no/such-probe")
	assert.ErrorContains(t, err, "unknown probe")

	_, err = runCLI(t, "analyze", "naive/nearest", "--graph", filepath.Join(t.TempDir(), "g.png"), "--ref", "gaussian")
	assert.Error(t, err)
}

func TestSurveyCommand(t *testing.T) {
	out, err := runCLI(t, "survey", "--only", "perfect/lanczos", "--jobs", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "perfect/lanczos2"))
	assert.Contains(t, lines[2], "Lanczos3")

	_, err = runCLI(t, "survey", "--only", "zzz")
	assert.Error(t, err)
}

func TestSurveyKeepsFailingProbes(t *testing.T) {
	probes := []probe.Probe{
		{Name: "good", Resize: rscope.Resizer(rscope.Box)},
		{Name: "bad", Resize: func(*image.Gray, int, int) *image.Gray { return nil }},
	}
	rows, err := survey(context.Background(), probes, rscope.Config{}, 4)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "good", rows[0].Probe)
	assert.True(t, rows[0].Match)
	assert.Equal(t, rscope.Box, rows[0].Best.Filter)
	assert.ErrorIs(t, rows[1].Err, rscope.ErrDimensionMismatch)

	var buf bytes.Buffer
	printSurvey(&buf, rows)
	assert.Contains(t, buf.String(), "error:")
}

func TestSurveyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := survey(ctx, probe.All(), rscope.Config{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenAndScan(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "gen", dir)
	require.NoError(t, err)
	assert.Contains(t, out, dotFile)

	// resize the generated patterns as an external program would
	resize := rscope.Resizer(rscope.Mitchell)
	for _, p := range []struct {
		in, out string
		w, h    int
	}{
		{dotFile, "dd.png", rscope.DotDstWidth, rscope.DotDstHeight},
		{lineFile, "dl.png", rscope.LineDstWidth, rscope.LineDstHeight},
	} {
		src, _, err := LoadGray(filepath.Join(dir, p.in))
		require.NoError(t, err)
		require.NoError(t, SaveImage(filepath.Join(dir, p.out), resize(src, p.w, p.h)))
	}

	out, err = runCLI(t, "scan", "--dot", filepath.Join(dir, "dd.png"), "--line", filepath.Join(dir, "dl.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "best match: Mitchell")

	_, err = runCLI(t, "scan", "--line", filepath.Join(dir, lineFile))
	assert.ErrorIs(t, err, rscope.ErrDimensionMismatch)

	_, err = runCLI(t, "scan")
	assert.ErrorContains(t, err, "nothing to scan")
}

func TestWritePatterns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	written, err := writePatterns(dir)
	require.NoError(t, err)
	require.Len(t, written, 3)

	got, _, err := LoadGray(filepath.Join(dir, edgeFile))
	require.NoError(t, err)
	assert.Equal(t, rscope.EdgePattern().Pix, got.Pix)
}

func TestCompareCommand(t *testing.T) {
	out, err := runCLI(t, "compare", "perfect/catmullrom", "--filter", "catrom")
	require.NoError(t, err)
	assert.Contains(t, out, "SSIM 1.0000")

	res, err := compareProbe(probe.ResampleNearest, rscope.Lanczos3)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Less(t, res[1].SSIM, 0.95)

	_, err = runCLI(t, "compare", "perfect/box", "--filter", "nope")
	assert.Error(t, err)
}
