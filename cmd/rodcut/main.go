// RodCut — Rod Cutting Visualizer
//
// A cross-platform desktop application that animates the dynamic
// programming solution of the rod cutting problem and exports the
// optimal plan as a report, a cut diagram or a GCode program.
//
// Build:
//   go build -o rodcut ./cmd/rodcut
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o rodcut.exe ./cmd/rodcut
//   GOOS=darwin  GOARCH=amd64 go build -o rodcut-darwin ./cmd/rodcut
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/RodCut/internal/logs"
	"github.com/piwi3910/RodCut/internal/project"
	"github.com/piwi3910/RodCut/internal/ui"
)

func main() {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	logger, closeLog, err := logs.New(logs.Options{
		Level: cfg.LogLevel,
		File:  filepath.Join(project.DefaultConfigDir(), "rodcut.log"),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		logger, closeLog = slog.Default(), func() error { return nil }
	}
	defer closeLog()
	slog.SetDefault(logger)

	application := app.NewWithID("com.piwi3910.rodcut")
	window := application.NewWindow("RodCut — Rod Cutting Visualizer")

	appUI := ui.NewApp(application, window, ui.Options{Logger: logger})
	application.Settings().SetTheme(appUI.Theme())
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.Show()

	appUI.ShowTutorialIfNeeded()
	application.Run()
}
