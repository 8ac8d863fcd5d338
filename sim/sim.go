// Package sim measures polar decoding success under erasure and puncturing
// channels. Trials are drawn sequentially from a seeded generator, so a run is
// reproducible, and decoded in parallel.
package sim

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jancona/polar/channel"
	"github.com/jancona/polar/polar"
	"golang.org/x/sync/errgroup"
)

type Experiment string

const (
	// Crop keeps one contiguous span at a known position.
	Crop Experiment = "crop"
	// Scatter keeps randomly chosen positions.
	Scatter Experiment = "scatter"
	// Unaligned keeps one contiguous span at an unknown position.
	Unaligned Experiment = "unaligned"
	// Puncture drops half the block and adds discrete noise.
	Puncture Experiment = "puncture"
)

// Level aggregates the trials of one experiment setting.
type Level struct {
	Experiment Experiment
	// Param is the number of kept bits, or the channel.HalfRate for Puncture.
	Param   int
	Label   string
	Trials  int
	Success int
	Fail    int
	// Confidence is the mean over successful decodes.
	Confidence float64
	DecodeTime time.Duration
}

func (l Level) SuccessRate() float64 {
	if l.Trials == 0 {
		return 0
	}
	return 100 * float64(l.Success) / float64(l.Trials)
}

func (l Level) FailRate() float64 {
	if l.Trials == 0 {
		return 0
	}
	return 100 * float64(l.Fail) / float64(l.Trials)
}

type Report struct {
	ID      string
	Started time.Time
	Elapsed time.Duration
	Config  Config
	Levels  []Level
}

type trial struct {
	msg []polar.Bit
	llr []float64
}

type Runner struct {
	cfg *Config
	enc *polar.Encoder
	dec *polar.Decoder
}

func NewRunner(cfg *Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, err := polar.NewEncoder(cfg.N, cfg.Seed)
	if err != nil {
		return nil, err
	}
	dec, err := polar.NewDecoder(cfg.N, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, enc: enc, dec: dec}, nil
}

// Run executes every enabled experiment. Each experiment reseeds its
// generator from the run seed.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	rep := &Report{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Config:  *r.cfg,
	}
	log.Printf("[INFO] simulation %s: N=%d k=%d seed=%d iterations=%d", rep.ID, r.cfg.N, len(r.cfg.InfoBits), r.cfg.Seed, r.cfg.Iterations)

	sweeps := []struct {
		exp   Experiment
		sweep Sweep
	}{
		{Crop, r.cfg.Crop},
		{Scatter, r.cfg.Scatter},
		{Unaligned, r.cfg.Unaligned},
	}
	for _, s := range sweeps {
		if !s.sweep.Enabled {
			continue
		}
		rng := channel.NewRand(r.cfg.RunSeed)
		for kept := s.sweep.Start; kept <= s.sweep.End; kept++ {
			trials, err := r.erasureTrials(rng, s.exp, kept)
			if err != nil {
				return nil, err
			}
			lvl, err := r.decodeLevel(ctx, Level{
				Experiment: s.exp,
				Param:      kept,
				Label:      fmt.Sprintf("%d bits", kept),
			}, trials)
			if err != nil {
				return nil, err
			}
			rep.Levels = append(rep.Levels, lvl)
		}
	}

	if r.cfg.Puncture {
		levels, err := r.puncture(ctx, channel.NewRand(r.cfg.RunSeed))
		if err != nil {
			return nil, err
		}
		rep.Levels = append(rep.Levels, levels...)
	}

	rep.Elapsed = time.Since(rep.Started)
	log.Printf("[INFO] simulation %s finished in %v", rep.ID, rep.Elapsed)
	return rep, nil
}

func (r *Runner) codeword(rng *rand.Rand) ([]polar.Bit, []float64, error) {
	msg := channel.RandomBits(rng, len(r.cfg.InfoBits))
	cw, err := r.enc.EncodeMessage(msg, r.cfg.InfoBits)
	if err != nil {
		return nil, nil, err
	}
	return msg, channel.BitsToLLR(cw, r.cfg.Confidence), nil
}

func (r *Runner) erasureTrials(rng *rand.Rand, exp Experiment, kept int) ([]trial, error) {
	trials := make([]trial, r.cfg.Iterations)
	for i := range trials {
		msg, llr, err := r.codeword(rng)
		if err != nil {
			return nil, err
		}
		switch exp {
		case Crop:
			llr, _, err = channel.RandomCrop(rng, llr, kept)
		case Scatter:
			llr, err = channel.Scatter(rng, llr, kept)
		case Unaligned:
			llr, _, err = channel.RandomWindow(rng, llr, kept)
		default:
			err = fmt.Errorf("experiment %q: %w", exp, polar.ErrInvalidArgument)
		}
		if err != nil {
			return nil, err
		}
		trials[i] = trial{msg: msg, llr: llr}
	}
	return trials, nil
}

// puncture runs every half rate pattern over the same messages and noise.
func (r *Runner) puncture(ctx context.Context, rng *rand.Rand) ([]Level, error) {
	patterns := make([]channel.PuncturePattern, len(channel.HalfRatePatterns))
	for i, h := range channel.HalfRatePatterns {
		p, err := h.Pattern(r.cfg.N)
		if err != nil {
			return nil, err
		}
		patterns[i] = p
	}
	trials := make([][]trial, len(patterns))
	for it := 0; it < r.cfg.Iterations; it++ {
		msg, llr, err := r.codeword(rng)
		if err != nil {
			return nil, err
		}
		noise := channel.DiscreteNoise(rng, r.cfg.N, r.cfg.NoiseStep)
		for i, p := range patterns {
			punctured, err := p.Apply(llr)
			if err != nil {
				return nil, err
			}
			if err := channel.AddNoise(punctured, noise); err != nil {
				return nil, err
			}
			trials[i] = append(trials[i], trial{msg: msg, llr: punctured})
		}
	}

	levels := make([]Level, 0, len(patterns))
	for i, h := range channel.HalfRatePatterns {
		lvl, err := r.decodeLevel(ctx, Level{
			Experiment: Puncture,
			Param:      int(h),
			Label:      h.String(),
		}, trials[i])
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

type outcome struct {
	ok         bool
	confidence float64
	elapsed    time.Duration
}

func (r *Runner) decodeLevel(ctx context.Context, lvl Level, trials []trial) (Level, error) {
	out := make([]outcome, len(trials))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, t := range trials {
		g.Go(func() error {
			start := time.Now()
			var res polar.Result
			var err error
			if lvl.Experiment == Unaligned {
				res, err = r.dec.DecodeUnalignedContext(ctx, t.llr, r.cfg.InfoBits)
			} else {
				res, err = r.dec.DecodeContext(ctx, t.llr, r.cfg.InfoBits)
			}
			if err != nil {
				return err
			}
			out[i] = outcome{
				ok:         slices.Equal(res.Message, t.msg),
				confidence: res.Confidence,
				elapsed:    time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Level{}, fmt.Errorf("%s %s: %w", lvl.Experiment, lvl.Label, err)
	}

	var total time.Duration
	for _, o := range out {
		total += o.elapsed
		if o.ok {
			lvl.Success++
			lvl.Confidence += o.confidence
		} else {
			lvl.Fail++
		}
	}
	lvl.Trials = len(trials)
	if lvl.Success > 0 {
		lvl.Confidence /= float64(lvl.Success)
	}
	if lvl.Trials > 0 {
		lvl.DecodeTime = total / time.Duration(lvl.Trials)
	}
	log.Printf("[DEBUG] %s %s: success %.1f%%, fail %.1f%%, confidence %.2f", lvl.Experiment, lvl.Label, lvl.SuccessRate(), lvl.FailRate(), lvl.Confidence)
	return lvl, nil
}
