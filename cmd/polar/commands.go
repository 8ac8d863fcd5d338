package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jancona/polar/channel"
	"github.com/jancona/polar/polar"
	"github.com/jancona/polar/sim"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var rankCommand = cli.Command{
	Name:  "rank",
	Usage: "rank kernel rows by weight, best information bits first",
	Flags: []cli.Flag{
		cli.IntFlag{Name: "n", Value: 256, Usage: "block length", EnvVar: "POLAR_N"},
		cli.IntFlag{Name: "k", Usage: "only show the best `K` rows"},
		cli.StringFlag{Name: "out", Usage: "write the table to `FILE`"},
	},
	Action: func(c *cli.Context) error {
		rows, err := polar.Rank(c.Int("n"))
		if err != nil {
			return err
		}
		if k := c.Int("k"); k > 0 && k < len(rows) {
			rows = rows[:k]
		}
		w := c.App.Writer
		if out := c.String("out"); out != "" {
			f, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "creating rank table")
			}
			defer f.Close()
			w = f
		}
		return polar.WriteRankTable(w, rows)
	},
}

var encodeCommand = cli.Command{
	Name:      "encode",
	Usage:     "encode a message",
	ArgsUsage: "MSGBITS",
	Flags:     codeFlags,
	Action: func(c *cli.Context) error {
		p, err := parseCodeParams(c)
		if err != nil {
			return err
		}
		msg, err := polar.ParseBits(c.Args().First())
		if err != nil {
			return fmt.Errorf("%v: %w", err, polar.ErrInvalidArgument)
		}
		enc, err := polar.NewEncoder(p.n, p.seed)
		if err != nil {
			return err
		}
		cw, err := enc.EncodeMessage(msg, p.infoBits)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, polar.FormatBits(cw))
		return err
	},
}

var decodeCommand = cli.Command{
	Name:  "decode",
	Usage: "maximum-likelihood decode a soft or hard observation",
	Flags: append([]cli.Flag{
		cli.StringFlag{Name: "llr", Usage: "comma separated LLR values, positive for 0"},
		cli.StringFlag{Name: "bits", Usage: "hard bits, '?' for an erasure"},
		cli.Float64Flag{Name: "confidence", Value: channel.DefaultConfidence, Usage: "LLR magnitude of a hard bit"},
		cli.BoolFlag{Name: "unaligned", Usage: "the observation is a window at an unknown offset"},
	}, codeFlags...),
	Action: func(c *cli.Context) error {
		p, err := parseCodeParams(c)
		if err != nil {
			return err
		}
		var llr []float64
		switch {
		case c.String("llr") != "":
			llr, err = parseLLR(c.String("llr"))
		case c.String("bits") != "":
			llr, err = parseHardBits(c.String("bits"), c.Float64("confidence"))
		default:
			err = fmt.Errorf("one of --llr or --bits is required: %w", polar.ErrInvalidArgument)
		}
		if err != nil {
			return err
		}
		dec, err := polar.NewDecoder(p.n, p.seed)
		if err != nil {
			return err
		}
		var res polar.Result
		if c.Bool("unaligned") {
			res, err = dec.DecodeUnaligned(llr, p.infoBits)
		} else {
			res, err = dec.Decode(llr, p.infoBits)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.App.Writer, "%s %.4f\n", polar.FormatBits(res.Message), res.Confidence)
		return err
	},
}

var distCommand = cli.Command{
	Name:  "dist",
	Usage: "minimum Hamming distance of a code",
	Flags: codeFlags,
	Action: func(c *cli.Context) error {
		p, err := parseCodeParams(c)
		if err != nil {
			return err
		}
		enc, err := polar.NewEncoder(p.n, p.seed)
		if err != nil {
			return err
		}
		d, err := polar.MinDistance(context.Background(), enc, p.infoBits)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.App.Writer, "N=%d k=%d d=%d\n", p.n, len(p.infoBits), d)
		return err
	},
}

var helloCommand = cli.Command{
	Name:      "hello",
	Usage:     "send a text through the framer with one erasure per block",
	ArgsUsage: "TEXT",
	Flags:     codeFlags,
	Action: func(c *cli.Context) error {
		p, err := parseCodeParams(c)
		if err != nil {
			return err
		}
		text := strings.Join(c.Args(), " ")
		if text == "" {
			text = "Hello, world!"
		}
		f, err := polar.NewFramer(p.n, p.seed, p.infoBits)
		if err != nil {
			return err
		}
		blocks, err := f.Encode([]byte(text))
		if err != nil {
			return err
		}
		llrs := make([][]float64, len(blocks))
		for i, cw := range blocks {
			llrs[i] = channel.BitsToLLR(cw, channel.DefaultConfidence)
			llrs[i][(i*7)%p.n] = 0
		}
		fr, err := f.Decode(context.Background(), llrs, len(text))
		if err != nil {
			return err
		}
		low := 0.0
		for i, conf := range fr.Confidence {
			if i == 0 || conf < low {
				low = conf
			}
		}
		_, err = fmt.Fprintf(c.App.Writer, "%s (%d blocks, lowest confidence %.4f)\n", fr.Payload, len(blocks), low)
		return err
	},
}

var simCommand = cli.Command{
	Name:  "sim",
	Usage: "run erasure simulations",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "simulation ini `FILE`", EnvVar: "POLAR_SIM_CONFIG"},
		cli.StringFlag{Name: "csv", Usage: "write results to a CSV `FILE`"},
		cli.StringFlag{Name: "plot", Usage: "plot success rates to an image `FILE`"},
		cli.IntFlag{Name: "workers", Usage: "override the number of decoding workers"},
	},
	Action: func(c *cli.Context) error {
		cfg := sim.DefaultConfig()
		if path := c.String("config"); path != "" {
			var err error
			cfg, err = sim.LoadConfig(path)
			if err != nil {
				return errors.Wrap(err, path)
			}
		} else {
			info, err := polar.InfoBits(cfg.N, 10)
			if err != nil {
				return err
			}
			cfg.InfoBits = info
		}
		if w := c.Int("workers"); w > 0 {
			cfg.Workers = w
		}
		return runSimulation(c, cfg)
	},
}

var punctCommand = cli.Command{
	Name:  "punct",
	Usage: "half rate puncturing under strong noise",
	Flags: append([]cli.Flag{
		cli.IntFlag{Name: "iterations", Value: 100, Usage: "trials per pattern"},
		cli.Uint64Flag{Name: "run-seed", Value: 54321, Usage: "trial generator seed"},
		cli.Float64Flag{Name: "noise-step", Value: 25, Usage: "noise is one of -2..2 times this"},
		cli.StringFlag{Name: "csv", Usage: "write results to a CSV `FILE`"},
	}, codeFlags...),
	Action: func(c *cli.Context) error {
		p, err := parseCodeParams(c)
		if err != nil {
			return err
		}
		cfg := sim.DefaultConfig()
		cfg.N, cfg.Seed, cfg.InfoBits = p.n, p.seed, p.infoBits
		cfg.RunSeed = c.Uint64("run-seed")
		cfg.Iterations = c.Int("iterations")
		cfg.NoiseStep = c.Float64("noise-step")
		cfg.Crop.Enabled, cfg.Scatter.Enabled, cfg.Unaligned.Enabled = false, false, false
		cfg.Puncture = true
		return runSimulation(c, cfg)
	},
}

func runSimulation(c *cli.Context, cfg *sim.Config) error {
	r, err := sim.NewRunner(cfg)
	if err != nil {
		return err
	}
	rep, err := r.Run(context.Background())
	if err != nil {
		return err
	}
	if err := sim.WriteText(c.App.Writer, rep); err != nil {
		return err
	}
	if path := c.String("csv"); path != "" {
		if err := writeFile(path, func(w io.Writer) error { return sim.WriteCSV(w, rep) }); err != nil {
			return err
		}
		log.Printf("[INFO] wrote %s", path)
	}
	if path := c.String("plot"); path != "" {
		if err := sim.Plot(rep, path); err != nil {
			return errors.Wrap(err, "plotting")
		}
		log.Printf("[INFO] wrote %s", path)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}
