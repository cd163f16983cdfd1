package monitor

import (
	"bytes"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// LevelPlotter renders a rolling time-domain view of channel audio.
type LevelPlotter struct {
	buf         []float32
	size        int
	name        string
	plotOptions []PlotOptions
}

func NewLevelPlotter(name string, size int) *LevelPlotter {
	return &LevelPlotter{
		buf:  make([]float32, 0),
		size: size,
		name: name,
	}
}

func (lp *LevelPlotter) Name() string {
	return lp.name
}

func (lp *LevelPlotter) AppendFloat(f []float32) {
	lp.buf = append(lp.buf, f...)

	if len(lp.buf) > lp.size {
		lp.buf = lp.buf[len(lp.buf)-lp.size:]
	}
}

func (lp *LevelPlotter) AddPlotOption(opt PlotOptions) {
	lp.plotOptions = append(lp.plotOptions, opt)
}

func (lp *LevelPlotter) GetImage() *ImageContainer {
	if len(lp.buf) < lp.size {
		return nil
	}

	p := plotWithDefaults()

	p.Title.Text = lp.name
	p.Y.Label.Text = "Amplitude"
	p.Y.Min = -1
	p.Y.Max = 1
	p.X.Label.Text = "t"

	for _, opt := range lp.plotOptions {
		opt(p)
	}

	grid := plotter.NewGrid()
	p.Add(grid)

	plotutil.AddLines(p, "f(t)", func() plotter.XYs {
		ret := make(plotter.XYs, lp.size)
		for i := 0; i < lp.size; i++ {
			ret[i] = plotter.XY{X: float64(i), Y: float64(lp.buf[i])}
		}
		return ret
	}())

	var imageData bytes.Buffer
	w, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		panic(err)
	}
	w.WriteTo(&imageData)
	return &ImageContainer{name: lp.name, data: imageData.Bytes()}
}
