// Command polar encodes, decodes and analyses polar codes.
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jancona/polar/channel"
	"github.com/jancona/polar/polar"
	"github.com/jancona/polar/tensor"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// VERSION is set at build time.
var VERSION = "SELFBUILD"

func main() {
	// .env must be loaded before flags are parsed so EnvVar defaults see it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "polar: loading .env: %v\n", err)
		os.Exit(1)
	}
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "polar: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "polar"
	app.Usage = "polar code encoder, maximum-likelihood decoder and simulator"
	app.Version = VERSION
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "enable debug logging",
			EnvVar: "POLAR_DEBUG",
		},
		cli.StringFlag{
			Name:   "log",
			Usage:  "write the log to `FILE` instead of stderr",
			EnvVar: "POLAR_LOG",
		},
	}
	var closeLog func() error
	app.Before = func(c *cli.Context) error {
		var err error
		closeLog, err = setupLogging(c.GlobalBool("debug"), c.GlobalString("log"))
		return err
	}
	app.After = func(c *cli.Context) error {
		if closeLog != nil {
			return closeLog()
		}
		return nil
	}
	app.Commands = []cli.Command{
		rankCommand,
		encodeCommand,
		decodeCommand,
		distCommand,
		helloCommand,
		simCommand,
		punctCommand,
	}
	return app
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, polar.ErrInvalidSize):
		return 2
	case errors.Is(err, polar.ErrSizeMismatch):
		return 3
	case errors.Is(err, tensor.ErrDimensionMismatch), errors.Is(err, tensor.ErrOutOfBounds):
		return 4
	case errors.Is(err, polar.ErrInvalidArgument), errors.Is(err, channel.ErrBadSpan):
		return 5
	case errors.Is(err, polar.ErrDegenerateInput):
		return 6
	case errors.Is(err, polar.ErrBadCRC):
		return 7
	}
	return 1
}

var codeFlags = []cli.Flag{
	cli.IntFlag{
		Name:   "n",
		Value:  256,
		Usage:  "block length, a power of two",
		EnvVar: "POLAR_N",
	},
	cli.Uint64Flag{
		Name:   "seed",
		Usage:  "codeword permutation seed, 0 for none",
		EnvVar: "POLAR_SEED",
	},
	cli.StringFlag{
		Name:   "info",
		Usage:  "comma separated information bit positions, least significant first",
		EnvVar: "POLAR_INFO_BITS",
	},
	cli.IntFlag{
		Name:   "k",
		Value:  8,
		Usage:  "number of best ranked information bits when --info is not given",
		EnvVar: "POLAR_K",
	},
}

type codeParams struct {
	n        int
	seed     uint64
	infoBits []int
}

func parseCodeParams(c *cli.Context) (codeParams, error) {
	p := codeParams{n: c.Int("n"), seed: c.Uint64("seed")}
	var err error
	if info := c.String("info"); info != "" {
		p.infoBits, err = parseInts(info)
	} else {
		p.infoBits, err = polar.InfoBits(p.n, c.Int("k"))
	}
	if err != nil {
		return p, err
	}
	log.Printf("[DEBUG] code N=%d seed=%d info bits %v", p.n, p.seed, p.infoBits)
	return p, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q: %w", f, polar.ErrInvalidArgument)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseLLR reads comma separated LLR values.
func parseLLR(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad llr %q: %w", f, polar.ErrInvalidArgument)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseHardBits turns "01?1" into LLRs, '?' being an erasure.
func parseHardBits(s string, confidence float64) ([]float64, error) {
	var out []float64
	for i, r := range s {
		switch r {
		case '0':
			out = append(out, confidence)
		case '1':
			out = append(out, -confidence)
		case '?':
			out = append(out, 0)
		case ' ', '_':
		default:
			return nil, fmt.Errorf("bad bit %q at %d: %w", r, i, polar.ErrInvalidArgument)
		}
	}
	return out, nil
}
