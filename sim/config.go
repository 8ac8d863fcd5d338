package sim

import (
	"fmt"
	"runtime"

	"github.com/jancona/polar/channel"
	"github.com/jancona/polar/polar"
	"gopkg.in/ini.v1"
)

// Sweep is a range of kept-bit counts for one erasure experiment.
type Sweep struct {
	Enabled    bool
	Start, End int
}

// Config describes a simulation run. It is read from an ini file:
//
//	[code]
//	n = 256
//	seed = 12345
//	info_bits = 255,254,253,251,247,239,223,191,127,252
//
//	[run]
//	seed = 987654321
//	iterations = 10
//	workers = 4
//
//	[crop]
//	enabled = true
//	start = 8
//	end = 16
type Config struct {
	N        int
	Seed     uint64
	InfoBits []int

	RunSeed    uint64
	Iterations int
	Workers    int
	Confidence float64

	Crop      Sweep
	Scatter   Sweep
	Unaligned Sweep

	Puncture  bool
	NoiseStep float64
}

// DefaultConfig returns a configuration that completes in seconds.
func DefaultConfig() *Config {
	return &Config{
		N:          256,
		Seed:       12345,
		RunSeed:    987654321,
		Iterations: 10,
		Workers:    runtime.NumCPU(),
		Confidence: channel.DefaultConfidence,
		Crop:       Sweep{Enabled: true, Start: 8, End: 16},
		Scatter:    Sweep{Enabled: true, Start: 8, End: 16},
		Unaligned:  Sweep{Enabled: false, Start: 16, End: 24},
		Puncture:   false,
		NoiseStep:  25,
	}
}

// LoadConfig reads an ini file, a []byte or an io.Reader holding one. Missing
// keys keep their DefaultConfig values. Without info_bits the k (default 10)
// best ranked positions are used.
func LoadConfig(source interface{}) (*Config, error) {
	f, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("loading simulation config: %w", err)
	}
	c := DefaultConfig()

	code := f.Section("code")
	c.N = code.Key("n").MustInt(c.N)
	c.Seed = code.Key("seed").MustUint64(c.Seed)
	if code.HasKey("info_bits") {
		c.InfoBits, err = code.Key("info_bits").StrictInts(",")
		if err != nil {
			return nil, fmt.Errorf("info_bits: %w", err)
		}
	} else {
		c.InfoBits, err = polar.InfoBits(c.N, code.Key("k").MustInt(10))
		if err != nil {
			return nil, err
		}
	}

	run := f.Section("run")
	c.RunSeed = run.Key("seed").MustUint64(c.RunSeed)
	c.Iterations = run.Key("iterations").MustInt(c.Iterations)
	c.Workers = run.Key("workers").MustInt(c.Workers)
	c.Confidence = run.Key("confidence").MustFloat64(c.Confidence)

	c.Crop = loadSweep(f.Section("crop"), c.Crop)
	c.Scatter = loadSweep(f.Section("scatter"), c.Scatter)
	c.Unaligned = loadSweep(f.Section("unaligned"), c.Unaligned)

	punct := f.Section("puncture")
	c.Puncture = punct.Key("enabled").MustBool(c.Puncture)
	c.NoiseStep = punct.Key("noise_step").MustFloat64(c.NoiseStep)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func loadSweep(s *ini.Section, def Sweep) Sweep {
	return Sweep{
		Enabled: s.Key("enabled").MustBool(def.Enabled),
		Start:   s.Key("start").MustInt(def.Start),
		End:     s.Key("end").MustInt(def.End),
	}
}

// Validate checks the code parameters and every enabled sweep.
func (c *Config) Validate() error {
	if _, err := polar.NewEncoder(c.N, c.Seed); err != nil {
		return err
	}
	if _, err := polar.Scatter(make([]polar.Bit, len(c.InfoBits)), c.InfoBits, c.N); err != nil {
		return err
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations %d: %w", c.Iterations, polar.ErrInvalidArgument)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, polar.ErrInvalidArgument)
	}
	for name, s := range map[string]Sweep{"crop": c.Crop, "scatter": c.Scatter, "unaligned": c.Unaligned} {
		if !s.Enabled {
			continue
		}
		if s.Start <= 0 || s.End < s.Start || s.End > c.N {
			return fmt.Errorf("%s sweep [%d, %d] for block length %d: %w", name, s.Start, s.End, c.N, polar.ErrInvalidArgument)
		}
	}
	return nil
}
