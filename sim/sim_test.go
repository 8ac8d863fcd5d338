package sim

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/icza/gog"
	"github.com/jancona/polar/polar"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	c := DefaultConfig()
	c.N = 32
	c.InfoBits = gog.Must(polar.InfoBits(32, 4))
	c.Iterations = 4
	c.Workers = 2
	c.Crop = Sweep{Enabled: true, Start: 30, End: 32}
	c.Scatter = Sweep{Enabled: true, Start: 31, End: 32}
	c.Unaligned = Sweep{Enabled: true, Start: 32, End: 32}
	c.Puncture = true
	return c
}

func TestRunner_Run(t *testing.T) {
	r, err := NewRunner(testConfig())
	require.NoError(t, err)
	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rep.ID)

	// 3 crop, 2 scatter, 1 unaligned and 4 puncture levels
	require.Len(t, rep.Levels, 10)
	for _, l := range rep.Levels {
		require.Equal(t, 4, l.Trials, "%s %s", l.Experiment, l.Label)
		require.Equal(t, l.Trials, l.Success+l.Fail)
		if l.Experiment != Puncture && l.Param == 32 {
			// nothing erased
			require.Equal(t, l.Trials, l.Success, "%s %s", l.Experiment, l.Label)
			require.InDelta(t, 1.0, l.Confidence, 1e-12)
		}
	}
	require.Equal(t, Puncture, rep.Levels[6].Experiment)
	require.Equal(t, "drop first half", rep.Levels[6].Label)
}

func TestRunner_Reproducible(t *testing.T) {
	cfg := testConfig()
	cfg.Crop = Sweep{Enabled: true, Start: 4, End: 8}
	cfg.Scatter.Enabled = false
	cfg.Unaligned.Enabled = false
	cfg.Puncture = false

	run := func() []Level {
		r, err := NewRunner(cfg)
		require.NoError(t, err)
		rep, err := r.Run(context.Background())
		require.NoError(t, err)
		for i := range rep.Levels {
			rep.Levels[i].DecodeTime = 0
		}
		return rep.Levels
	}
	require.Equal(t, run(), run())
}

func TestRunner_Cancel(t *testing.T) {
	r, err := NewRunner(testConfig())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport(t *testing.T) {
	cfg := testConfig()
	cfg.Puncture = false
	r, err := NewRunner(cfg)
	require.NoError(t, err)
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(rep.Levels)+1)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, rep.ID, rows[1][0])
	require.Equal(t, "crop", rows[1][1])

	buf.Reset()
	require.NoError(t, WriteText(&buf, rep))
	require.Contains(t, buf.String(), "# scatter")

	path := filepath.Join(t.TempDir(), "success.png")
	require.NoError(t, Plot(rep, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestLoadConfig(t *testing.T) {
	src := []byte(`
[code]
n = 64
seed = 301
info_bits = 63, 62, 61

[run]
seed = 54321
iterations = 3
workers = 1

[crop]
enabled = false

[unaligned]
enabled = true
start = 20
end = 24

[puncture]
enabled = true
noise_step = 12.5
`)
	c, err := LoadConfig(src)
	require.NoError(t, err)
	require.Equal(t, 64, c.N)
	require.Equal(t, uint64(301), c.Seed)
	require.Equal(t, []int{63, 62, 61}, c.InfoBits)
	require.Equal(t, uint64(54321), c.RunSeed)
	require.Equal(t, 3, c.Iterations)
	require.Equal(t, 1, c.Workers)
	require.False(t, c.Crop.Enabled)
	require.Equal(t, Sweep{Enabled: true, Start: 8, End: 16}, c.Scatter)
	require.Equal(t, Sweep{Enabled: true, Start: 20, End: 24}, c.Unaligned)
	require.True(t, c.Puncture)
	require.Equal(t, 12.5, c.NoiseStep)
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := LoadConfig([]byte("[code]\nk = 4\n"))
	require.NoError(t, err)
	require.Equal(t, 256, c.N)
	require.Equal(t, []int{255, 254, 253, 251}, c.InfoBits)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"size", "[code]\nn = 12\ninfo_bits = 1\n", polar.ErrInvalidSize},
		{"info bit range", "[code]\nn = 8\ninfo_bits = 8\n", polar.ErrInvalidArgument},
		{"sweep", "[code]\nn = 8\ninfo_bits = 7\n[crop]\nstart = 4\nend = 9\n", polar.ErrInvalidArgument},
		{"iterations", "[code]\nn = 8\ninfo_bits = 7\n[run]\niterations = 0\n[crop]\nend = 8\n[scatter]\nend = 8\n", polar.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tt.src))
			require.True(t, errors.Is(err, tt.want), "error = %v, want %v", err, tt.want)
		})
	}
	_, err := LoadConfig([]byte("[code]\ninfo_bits = a,b\n"))
	require.Error(t, err)
}
