package tpmAnalysis

import (
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func generateHeatMapItems(m Matrix, logScale bool) ([]opts.HeatMapData, float64) {
	var (
		items []opts.HeatMapData
		max   float64
	)
	for i := range m.Genes {
		for j := range m.Columns {
			var v = m.Values[i][j]
			if math.IsNaN(v) {
				continue
			}
			if logScale {
				v = math.Log10(v + 1)
			}
			if v > max {
				max = v
			}
			items = append(items, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}
	return items, max
}

// PlotHeatMap renders a gene x column expression matrix to a standalone
// HTML heatmap. logScale plots log10(x+1), the convention for raw
// scaled-TPM matrices; relative-TPM matrices plot as-is.
func PlotHeatMap(m Matrix, title, subtitle, path string, logScale bool) {
	var (
		hm     = charts.NewHeatMap()
		output = osUtil.Create(path)
	)
	defer simpleUtil.DeferClose(output)

	var items, max = generateHeatMapItems(m, logScale)
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      m.Columns,
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Data:      m.Genes,
			SplitArea: &opts.SplitArea{Show: true},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(max),
		}),
	)

	hm.SetXAxis(m.Columns).AddSeries("scaled_TPM", items)
	simpleUtil.CheckErr(hm.Render(output))
}

func generateBarItems(vs []int) []opts.BarData {
	var items = make([]opts.BarData, 0)
	for _, v := range vs {
		items = append(items, opts.BarData{Value: v})
	}
	return items
}

// PlotTermBar renders gene counts per GO term as a bar chart, one file
// per region.
func PlotTermBar(terms []string, counts []int, region, path string) {
	var (
		bar    = charts.NewBar()
		output = osUtil.Create(path)
	)
	defer simpleUtil.DeferClose(output)

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    "GO terms by gene count",
			Subtitle: region,
		}),
	)
	bar.SetXAxis(terms).AddSeries("genes", generateBarItems(counts))
	simpleUtil.CheckErr(bar.Render(output))
}

// PlotComparisonScatter saves a log-log scatter of paired scaled TPM
// values, dataset A against dataset B, as a PNG.
func PlotComparisonScatter(rows []ComparisonRow, nameA, nameB, path string) error {
	var p = plot.New()
	p.Title.Text = "Shared genes over threshold"
	p.X.Label.Text = "log10(" + nameA + " scaled_TPM + 1)"
	p.Y.Label.Text = "log10(" + nameB + " scaled_TPM + 1)"

	var points = plotter.XYs{}
	for _, row := range rows {
		points = append(points, plotter.XY{
			X: math.Log10(row.ScaledTPMA + 1),
			Y: math.Log10(row.ScaledTPMB + 1),
		})
	}

	var scatter, err = plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = plotutil.Color(1)
	scatter.GlyphStyle.Shape = plotutil.Shape(1)

	p.Add(scatter)
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
