package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var csvHeader = []string{
	"run_id", "experiment", "param", "label", "trials", "success", "fail",
	"success_pct", "confidence", "decode_us",
}

// WriteCSV writes one row per level.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, l := range rep.Levels {
		row := []string{
			rep.ID,
			string(l.Experiment),
			strconv.Itoa(l.Param),
			l.Label,
			strconv.Itoa(l.Trials),
			strconv.Itoa(l.Success),
			strconv.Itoa(l.Fail),
			strconv.FormatFloat(l.SuccessRate(), 'f', 1, 64),
			strconv.FormatFloat(l.Confidence, 'f', 4, 64),
			strconv.FormatInt(l.DecodeTime.Microseconds(), 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText prints a human readable summary.
func WriteText(w io.Writer, rep *Report) error {
	if _, err := fmt.Fprintf(w, "run %s: N=%d k=%d seed=%d\n", rep.ID, rep.Config.N, len(rep.Config.InfoBits), rep.Config.Seed); err != nil {
		return err
	}
	var last Experiment
	for _, l := range rep.Levels {
		if l.Experiment != last {
			fmt.Fprintf(w, "\n# %s\n", l.Experiment)
			last = l.Experiment
		}
		if _, err := fmt.Fprintf(w, "%s: success %.1f%%, fail %.1f%%, confidence %.2f, decode %v\n",
			l.Label, l.SuccessRate(), l.FailRate(), l.Confidence, l.DecodeTime); err != nil {
			return err
		}
	}
	return nil
}

// Plot saves success rate against kept bits, one line per erasure experiment,
// as an image whose format follows the file extension.
func Plot(rep *Report, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("N=%d, k=%d", rep.Config.N, len(rep.Config.InfoBits))
	p.X.Label.Text = "bits kept"
	p.Y.Label.Text = "success %"
	p.Y.Min, p.Y.Max = 0, 100
	p.Add(plotter.NewGrid())

	series := map[Experiment]plotter.XYs{}
	var order []Experiment
	for _, l := range rep.Levels {
		if l.Experiment == Puncture {
			continue
		}
		if _, ok := series[l.Experiment]; !ok {
			order = append(order, l.Experiment)
		}
		series[l.Experiment] = append(series[l.Experiment], plotter.XY{X: float64(l.Param), Y: l.SuccessRate()})
	}
	for i, exp := range order {
		line, points, err := plotter.NewLinePoints(series[exp])
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(string(exp), line, points)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
