// Copyright 2026 VeriMCMC Authors
// This file is part of VeriMCMC, a testable Gibbs-sampling infrastructure.
//
// VeriMCMC is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VeriMCMC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with VeriMCMC. If not, see <http://www.gnu.org/licenses/>.

package visualizer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/verimcmc/gibbs/gibbs/trajectory"
)

// HTML references for the rendered pages.
const traceRef = "trace-stats"
const marginalRef = "marginal-stats"
const updateOrderRef = "update-order"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>VeriMCMC: Gibbs Sampler</title>
    <link rel="stylesheet" href="style.css">
    <script src="script.js"></script>
  </head>
  <body>
    <h1>VeriMCMC: Gibbs Sampler</h1>
    <ul>
    <li> <h3> <a href="/` + traceRef + `"> Trace Plots </a> </h3> </li>
    <li> <h3> <a href="/` + marginalRef + `"> Posterior Marginals </a> </h3> </li>
    <li> <h3> <a href="/` + updateOrderRef + `"> Update Order </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// convertTraceData converts trace points to chart points.
func convertTraceData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// newTraceChart creates a line chart for the trace of one parameter.
func newTraceChart(param string, burnIn int, points [][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Trace of %v", param),
			Subtitle: fmt.Sprintf("burn-in: %v sweeps", burnIn),
		}))
	chart.AddSeries(param, convertTraceData(points))
	return chart
}

// renderTraces renders the trace plot of every parameter.
func renderTraces(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	page := components.NewPage()
	for _, param := range view.params {
		page.AddCharts(newTraceChart(param, view.burnIn, view.traces[param]))
	}
	_ = page.Render(w)
}

// convertMarginalData converts histogram counts to chart points.
func convertMarginalData(counts []int) []opts.BarData {
	items := []opts.BarData{}
	for _, c := range counts {
		items = append(items, opts.BarData{Value: c})
	}
	return items
}

// newMarginalChart creates a histogram chart for the posterior marginal
// of one parameter.
func newMarginalChart(param string, s trajectory.Summary, h histogram) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Posterior of %v", param),
			Subtitle: fmt.Sprintf("mean: %.4g  95%%: [%.4g, %.4g]", s.Mean, s.Q025, s.Q975),
		}))
	bar.SetXAxis(h.labels).AddSeries(param, convertMarginalData(h.counts))
	return bar
}

// renderMarginals renders the posterior marginal of every parameter.
func renderMarginals(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	page := components.NewPage()
	for i, param := range view.params {
		page.AddCharts(newMarginalChart(param, view.summaries[i], view.marginals[param]))
	}
	_ = page.Render(w)
}

// printUpdateOrderInDotty renders the per-sweep update order of the
// parameters in dotty format.
func printUpdateOrderInDotty(title string, params []string) (out string, err error) {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return "", fmt.Errorf("renderUpdateOrder: failed to create graph. Error: %v", err)
	}
	defer func() {
		err = errors.Join(err, graph.Close(), g.Close())
	}()
	n := len(params)
	nodes := make([]*cgraph.Node, n)
	for i := 0; i < n; i++ {
		nodes[i], err = graph.CreateNode(params[i])
		if err != nil {
			return "", fmt.Errorf("renderUpdateOrder: failed to create node for parameter (%v, %v). Error: %v", i, params[i], err)
		}
		nodes[i].SetLabel(params[i])
	}
	for i := 0; i < n - 1; i++ {
		e, _ := graph.CreateEdge("", nodes[i], nodes[i+1])
		e.SetLabel(fmt.Sprintf("%d", i+1))
	}
	e, _ := graph.CreateEdge("", nodes[n-1], nodes[0])
	e.SetLabel("next sweep")
	e.SetColor("gray")
	txt, err := renderDotGraph(title, g, graph)
	if err != nil {
		return "", fmt.Errorf("renderUpdateOrder: failed to render. Error: %v", err)
	}
	return txt, nil
}

// renderUpdateOrder renders the parameter update order of one sweep.
func renderUpdateOrder(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	txt, err := printUpdateOrderInDotty("Gibbs Update Order", view.params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	}
	_, _ = fmt.Fprint(w, txt)
}

// FireUpWeb visualizes a recorded trajectory with a local web-server.
func FireUpWeb(t *trajectory.Trajectory, burnIn int, addr string) error {
	if err := setViewState(t, burnIn); err != nil {
		return err
	}

	// create web server
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+traceRef, renderTraces)
	http.HandleFunc("/"+marginalRef, renderMarginals)
	http.HandleFunc("/"+updateOrderRef, renderUpdateOrder)
	return http.ListenAndServe(":"+addr, nil)
}
