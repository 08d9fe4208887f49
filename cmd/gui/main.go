package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/kacebover/lumox/gui/controller"
	"github.com/kacebover/lumox/lookup"
	"github.com/kacebover/lumox/metrics"
)

const (
	creditsWebsite = "https://salvatorerusso.xyz/"
	creditsGithub  = "https://github.com/skun0"
)

// LumoxGUI represents the GUI application
type LumoxGUI struct {
	app    fyne.App
	window fyne.Window
	config *controller.AppConfig
	logger *zap.Logger

	hub    *controller.Hub
	panels map[lookup.Kind]*lookupPanel
	dork   *dorkPanel
	tabs   *container.AppTabs
	status *widget.Label

	cancel context.CancelFunc
}

// NewLumoxGUI builds the main window for the enabled modules. do runs
// completions on the UI loop; nil means fyne.Do.
func NewLumoxGUI(a fyne.App, config *controller.AppConfig, logger *zap.Logger, recorder controller.Recorder, do func(func())) (*LumoxGUI, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if do == nil {
		do = fyne.Do
	}

	g := &LumoxGUI{
		app:    a,
		config: config,
		logger: logger,
		panels: make(map[lookup.Kind]*lookupPanel),
	}

	opts, err := config.LookupOptions()
	if err != nil {
		return nil, err
	}
	opts.Opener = lookup.URLOpenerFunc(g.openURL)

	ctrlOpts := []controller.Option{controller.WithLogger(logger)}
	if recorder != nil {
		ctrlOpts = append(ctrlOpts, controller.WithRecorder(recorder))
	}
	g.hub, err = controller.NewHub(lookup.New(opts), config.EnabledKinds(), ctrlOpts...)
	if err != nil {
		return nil, err
	}

	if t := themeFor(config.Theme); t != nil {
		a.Settings().SetTheme(t)
	}
	if icon := logoResource(); icon != nil {
		a.SetIcon(icon)
	}

	g.window = a.NewWindow("Lumox")
	g.window.Resize(fyne.NewSize(float32(config.WindowWidth), float32(config.WindowHeight)))
	g.window.CenterOnScreen()
	g.window.SetMaster()

	g.buildUI()

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.hub.Start(ctx, do)
	g.window.SetOnClosed(cancel)

	return g, nil
}

func (g *LumoxGUI) buildUI() {
	g.status = widget.NewLabel("Ready")
	g.tabs = container.NewAppTabs()

	for _, k := range g.hub.Kinds() {
		ctrl, err := g.hub.Controller(k)
		if err != nil {
			continue
		}
		ctrl.SetOnLogMessage(g.onLogMessage)

		if k == lookup.KindDork {
			g.dork = newDorkPanel(ctrl, g.window, g.logger)
			g.tabs.Append(container.NewTabItem(k.Title(), g.dork.content))
			continue
		}
		p := newLookupPanel(ctrl, g.logger)
		g.panels[k] = p
		g.tabs.Append(container.NewTabItem(k.Title(), p.content))
	}
	g.tabs.Append(container.NewTabItem("Credits", buildCredits()))

	g.window.SetContent(container.NewBorder(
		nil,
		container.NewVBox(widget.NewSeparator(), g.status),
		nil, nil,
		g.tabs,
	))
}

// onLogMessage runs on the UI loop: submissions come from widget callbacks and
// completions through the pump
func (g *LumoxGUI) onLogMessage(level controller.LogLevel, message string) {
	if level == controller.LogDebug {
		return
	}
	g.status.SetText(message)
}

// openURL hands a URL to the system browser
func (g *LumoxGUI) openURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	var openErr error
	fyne.DoAndWait(func() { openErr = g.app.OpenURL(u) })
	return openErr
}

func buildCredits() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("Credits", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	website, _ := url.Parse(creditsWebsite)
	github, _ := url.Parse(creditsGithub)

	return container.NewVBox(
		container.NewPadded(title),
		widget.NewLabel("Website:"),
		widget.NewHyperlink(creditsWebsite, website),
		widget.NewLabel("Github:"),
		widget.NewHyperlink(creditsGithub, github),
		widget.NewLabel("Developed by Skuno"),
	)
}

// Run shows the splash, then the main window, and blocks until exit
func (g *LumoxGUI) Run() {
	defer g.cancel()
	showSplash(g.app, g.config.Splash(), g.window.Show)
	g.app.Run()
}

func main() {
	configPath := flag.String("config", controller.ConfigPath(), "config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	config, err := controller.LoadConfigFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := controller.NewLogger(config.LogLevel, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var recorder controller.Recorder
	if config.MetricsAddr != "" {
		rec := metrics.NewRecorder()
		recorder = rec
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := rec.Serve(ctx, config.MetricsAddr, logger); err != nil {
				logger.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	gui, err := NewLumoxGUI(app.NewWithID("xyz.salvatorerusso.lumox"), config, logger, recorder, nil)
	if err != nil {
		logger.Fatal("Failed to start", zap.Error(err))
	}
	gui.Run()
}
