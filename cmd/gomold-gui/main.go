package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gomold/internal/config"
	"github.com/philipparndt/gomold/internal/cooling"
	"github.com/philipparndt/gomold/internal/heatmap"
	"github.com/philipparndt/gomold/internal/loader"
	"github.com/philipparndt/gomold/internal/material"
	"github.com/philipparndt/gomold/internal/monitoring"
	"github.com/philipparndt/gomold/internal/report"
	"github.com/philipparndt/gomold/pkg/analysis"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/philipparndt/gomold/pkg/preview"
	"github.com/philipparndt/gomold/pkg/watcher"
	"github.com/rs/zerolog"
)

// App is the desktop front end
type App struct {
	window    fyne.Window
	cfg       config.Config
	logger    zerolog.Logger
	loader    *loader.Loader
	estimator *cooling.Estimator
	heat      *heatmap.Cache
	watcher   *watcher.FileWatcher
	ctx       context.Context

	path     string
	mesh     *mesh.TriangleMesh
	result   parting.SelectionResult
	features *analysis.Features
	heatMesh *mesh.TriangleMesh
	heatData []heatmap.Point

	view          *PreviewView
	resultLabel   *widget.Label
	metricsLabel  *widget.Label
	featureLabel  *widget.Label
	powerLabel    *widget.Label
	materialLabel *widget.Label
	showChannels  bool
	showHeatmap   bool
}

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger, err := monitoring.Setup(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("gomold - Parting Plane Analysis")

	estimator, err := cooling.Default(logger)
	if err != nil {
		logger.Warn().Err(err).Msg("cooling estimator unavailable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appInstance := &App{
		window:       w,
		cfg:          cfg,
		logger:       logger,
		loader:       loader.New(logger),
		estimator:    estimator,
		heat:         heatmap.NewCache(cfg.HeatmapTTL()),
		ctx:          ctx,
		showChannels: cfg.Preview.ShowChannels,
		showHeatmap:  cfg.Heatmap.Enabled,
	}

	if fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, logger); err != nil {
		logger.Warn().Err(err).Msg("auto reload unavailable")
	} else {
		appInstance.watcher = fw
		defer fw.Close()
		go fw.Run(ctx)
	}

	if flag.NArg() > 0 {
		appInstance.setupMainUI()
		appInstance.loadFile(flag.Arg(0))
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to gomold")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open an STL or OpenSCAD part to find its parting plane")

	openButton := widget.NewButton("Open Part", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		if a.view == nil {
			a.setupMainUI()
		}
		a.loadFile(reader.URI().Path())
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".scad"}))
	fd.Show()
}

// loadFile analyzes a part in the background and shows the result
func (a *App) loadFile(filename string) {
	a.resultLabel.SetText(fmt.Sprintf("Analyzing %s ...", filename))

	go func() {
		m, result, features, err := a.analyze(filename)
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.path = filename
			a.mesh = m
			a.result = result
			a.features = features
			a.window.SetTitle(fmt.Sprintf("gomold - %s", m.Name()))
			a.updateResult()
			a.updateCooling()
			a.updateScene()
		})

		a.watchDependencies(filename)
	}()
}

func (a *App) analyze(filename string) (*mesh.TriangleMesh, parting.SelectionResult, *analysis.Features, error) {
	m, err := a.loader.Load(a.ctx, filename)
	if err != nil {
		return nil, parting.SelectionResult{}, nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}

	selector, err := parting.NewSelector(a.cfg.SelectorOptions(a.logger))
	if err != nil {
		return nil, parting.SelectionResult{}, nil, err
	}
	result, err := selector.Analyze(a.ctx, m)
	if err != nil {
		return nil, parting.SelectionResult{}, nil, err
	}

	var features *analysis.Features
	if f, err := analysis.ExtractFeatures(m); err == nil {
		features = &f
	} else {
		a.logger.Warn().Err(err).Msg("features unavailable")
	}
	return m, result, features, nil
}

func (a *App) watchDependencies(filename string) {
	if a.watcher == nil {
		return
	}
	deps, err := a.loader.Dependencies(filename)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to resolve dependencies")
		return
	}
	if err := a.watcher.RemoveAll(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to reset watcher")
	}
	err = a.watcher.Watch(deps, func(string) {
		fyne.Do(func() { a.loadFile(filename) })
	})
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to watch part")
	}
}

func (a *App) setupMainUI() {
	a.view = NewPreviewView(a.cfg.PreviewOptions(), a.logger)

	a.resultLabel = widget.NewLabel("No part loaded")
	a.resultLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.metricsLabel = widget.NewLabel("")
	a.metricsLabel.TextStyle = fyne.TextStyle{Monospace: true}
	a.featureLabel = widget.NewLabel("")
	a.powerLabel = widget.NewLabel("Cooling power: -")
	a.powerLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.materialLabel = widget.NewLabel("Select required properties")
	a.materialLabel.Wrapping = fyne.TextWrapWord

	openButton := widget.NewButton("Open Part", func() {
		a.showFileDialog()
	})

	channelsCheck := widget.NewCheck("Show cooling channels", func(checked bool) {
		a.showChannels = checked
		a.updateScene()
	})
	channelsCheck.SetChecked(a.showChannels)

	heatmapCheck := widget.NewCheck("Show temperature heat map", func(checked bool) {
		a.showHeatmap = checked
		a.updateScene()
	})
	heatmapCheck.SetChecked(a.showHeatmap)

	k := &a.cfg.Cooling
	coolingForm := container.NewVBox(
		a.intSlider("Cavities", 1, 16, &k.Cavities),
		a.floatSlider("Channel diameter (mm)", 2, 20, &k.ChannelDiameter),
		a.floatSlider("Channel distance (mm)", 2, 20, &k.ChannelDistance),
		a.intSlider("Channels along X", 0, 5, &k.ChannelsX),
		a.intSlider("Channels along Y", 0, 5, &k.ChannelsY),
		a.intSlider("Channels along Z", 0, 5, &k.ChannelsZ),
	)

	var properties []string
	for _, c := range material.Categories {
		for _, p := range c.Properties {
			properties = append(properties, string(p))
		}
	}
	materialGroup := widget.NewCheckGroup(properties, func(selected []string) {
		a.updateMaterials(selected)
	})

	infoPanel := container.NewVBox(
		openButton,
		widget.NewSeparator(),
		widget.NewLabel("Parting Plane:"),
		a.resultLabel,
		a.metricsLabel,
		widget.NewSeparator(),
		widget.NewLabel("Part Features:"),
		a.featureLabel,
		widget.NewSeparator(),
		widget.NewLabel("Cooling:"),
		coolingForm,
		channelsCheck,
		heatmapCheck,
		a.powerLabel,
		widget.NewSeparator(),
		widget.NewLabel("Material:"),
		materialGroup,
		a.materialLabel,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(340, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.view,     // center
	)

	a.window.SetContent(content)
}

func (a *App) intSlider(label string, lo, hi int, target *int) fyne.CanvasObject {
	text := widget.NewLabel(fmt.Sprintf("%s: %d", label, *target))
	slider := widget.NewSlider(float64(lo), float64(hi))
	slider.Step = 1
	slider.SetValue(float64(*target))
	slider.OnChanged = func(v float64) {
		*target = int(v)
		text.SetText(fmt.Sprintf("%s: %d", label, *target))
		a.updateCooling()
		a.updateScene()
	}
	return container.NewVBox(text, slider)
}

func (a *App) floatSlider(label string, lo, hi float64, target *float64) fyne.CanvasObject {
	text := widget.NewLabel(fmt.Sprintf("%s: %.1f", label, *target))
	slider := widget.NewSlider(lo, hi)
	slider.Step = 0.5
	slider.SetValue(*target)
	slider.OnChanged = func(v float64) {
		*target = v
		text.SetText(fmt.Sprintf("%s: %.1f", label, *target))
		a.updateCooling()
		a.updateScene()
	}
	return container.NewVBox(text, slider)
}

func (a *App) updateResult() {
	res := a.result
	a.resultLabel.SetText(fmt.Sprintf(
		"Best plane: %s\nSymmetric planes: %s\nUndercut faces: %d",
		res.BestAxis, report.SymmetricPlanes(res), res.UndercutCount(),
	))

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %6s %6s %6s %7s\n", "Plane", "Draft", "Under", "Line", "Score")
	for i, m := range res.Metrics {
		fmt.Fprintf(&b, "%-5s %6.3f %6.3f %6.1f %7.3f\n", m.Axis, m.DraftCompliance, m.UndercutRatio, m.Complexity, res.Scores[i])
	}
	a.metricsLabel.SetText(b.String())

	if f := a.features; f != nil {
		a.featureLabel.SetText(fmt.Sprintf(
			"Model: %s\nTriangles: %d\nVolume: %.2f\nSurface Area: %.2f\nAspect Ratio: %.3f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
			a.mesh.Name(), f.TriangleCount, f.Volume, f.SurfaceArea, f.AspectRatio,
			f.Extents.X, f.Extents.Y, f.Extents.Z,
		))
	} else {
		a.featureLabel.SetText(fmt.Sprintf("Model: %s\nTriangles: %d", a.mesh.Name(), a.mesh.FaceCount()))
	}
}

func (a *App) updateCooling() {
	if a.features == nil || a.estimator == nil {
		a.powerLabel.SetText("Cooling power: -")
		return
	}
	k := a.cfg.Cooling
	power := a.estimator.Predict(cooling.Input{
		Cavities:        k.Cavities,
		Volume:          a.features.Volume,
		SurfaceArea:     a.features.SurfaceArea,
		AspectRatio:     a.features.AspectRatio,
		ChannelDiameter: k.ChannelDiameter,
		ChannelDistance: k.ChannelDistance,
	})
	a.powerLabel.SetText(fmt.Sprintf("Cooling power: %.2f kW", power))
}

func (a *App) updateMaterials(selected []string) {
	if len(selected) == 0 {
		a.materialLabel.SetText("Select required properties")
		return
	}

	required := make([]material.Property, len(selected))
	for i, s := range selected {
		required[i] = material.Property(s)
	}

	suggestions := material.Suggest(required)
	if len(suggestions) == 0 {
		a.materialLabel.SetText("No matching material")
		return
	}
	lines := make([]string, len(suggestions))
	for i, s := range suggestions {
		lines[i] = fmt.Sprintf("%d. %s (%d of %d)", i+1, s.Material.Name, s.Score, len(required))
	}
	a.materialLabel.SetText(strings.Join(lines, "\n"))
}

// updateScene shows the part right away and adds the heat map once it has
// been sampled in the background
func (a *App) updateScene() {
	if a.mesh == nil || a.view == nil {
		return
	}
	if !a.showHeatmap {
		a.view.SetScene(a.scene(nil))
		return
	}
	if a.heatMesh == a.mesh {
		a.view.SetScene(a.scene(a.heatData))
		return
	}
	a.view.SetScene(a.scene(nil))

	m, count := a.mesh, a.cfg.Heatmap.Samples
	go func() {
		points, err := a.heat.Samples(a.ctx, m, count)
		if err != nil {
			a.logger.Warn().Err(err).Msg("heat map unavailable")
			return
		}
		fyne.Do(func() {
			if a.mesh != m {
				return
			}
			a.heatMesh, a.heatData = m, points
			if a.showHeatmap {
				a.view.SetScene(a.scene(points))
			}
		})
	}()
}

func (a *App) scene(heat []heatmap.Point) preview.Scene {
	scene := preview.Scene{Mesh: a.mesh, Result: &a.result, Heatmap: heat}
	if a.showChannels {
		scene.Channels = a.cfg.CoolingLayout().Channels(a.mesh.BoundingBox())
	}
	return scene
}
