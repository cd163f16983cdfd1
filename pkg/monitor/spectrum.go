package monitor

import (
	"bytes"
	"math"
	"math/cmplx"

	"github.com/rxgate/rxgate/pkg/dsp/fir"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const spectrumAvg = 0.10

// SpectrumPlotter renders an averaged power spectrum of channel audio.
type SpectrumPlotter struct {
	buf          []float32
	averagePower []float64
	size         int
	sampleRate   int
	name         string
	plotOptions  []PlotOptions
}

func NewSpectrumPlotter(name string, size, sampleRate int) *SpectrumPlotter {
	return &SpectrumPlotter{
		buf:          make([]float32, size),
		averagePower: make([]float64, size/2+1),
		size:         size,
		sampleRate:   sampleRate,
		name:         name,
	}
}

func (sp *SpectrumPlotter) Name() string {
	return sp.name
}

func (sp *SpectrumPlotter) AppendFloat(s []float32) {
	if len(s) > sp.size {
		sp.buf = s[len(s)-sp.size:]
	} else {
		sp.buf = append(sp.buf, s...)
		sp.buf = sp.buf[len(s):]
	}
}

func (sp *SpectrumPlotter) AddPlotOption(opt PlotOptions) {
	sp.plotOptions = append(sp.plotOptions, opt)
}

func (sp *SpectrumPlotter) GetImage() *ImageContainer {

	p := plotWithDefaults()
	p.Title.Text = sp.name
	p.Y.Label.Text = "Power (dB)"
	p.X.Label.Text = "Frequency"
	p.Y.Max = 0
	p.Y.Min = -100

	for _, opt := range sp.plotOptions {
		opt(p)
	}

	grid := plotter.NewGrid()
	p.Add(grid)

	win := fir.BlackmanWindow(sp.size)
	f := fourier.NewFFT(sp.size)
	data := make([]float64, sp.size)
	for i := 0; i < sp.size; i++ {
		data[i] = float64(sp.buf[i]) * float64(win[i])
	}

	coeffs := f.Coefficients(nil, data)

	plotutil.AddLines(p, "frequency", func() plotter.XYs {
		ret := make(plotter.XYs, len(coeffs))
		for i := 0; i < len(coeffs); i++ {
			freq := f.Freq(i) * float64(sp.sampleRate)
			mag := cmplx.Abs(coeffs[i]) / float64(sp.size)

			sp.averagePower[i] = ((1.0 - spectrumAvg) * sp.averagePower[i]) + (spectrumAvg * mag)

			y := -100.0
			if sp.averagePower[i] > 0 {
				y = 20 * math.Log10(sp.averagePower[i])
			}
			ret[i] = plotter.XY{X: freq, Y: y}
		}
		return ret
	}())

	var imageData bytes.Buffer
	w, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		panic(err)
	}
	w.WriteTo(&imageData)
	return &ImageContainer{name: sp.name, data: imageData.Bytes()}
}
