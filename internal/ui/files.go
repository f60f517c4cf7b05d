package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/gcode"
	"github.com/piwi3910/RodCut/internal/importer"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/project"
	"github.com/piwi3910/RodCut/internal/ui/widgets"
)

// ─── Sessions ──────────────────────────────────────────────

func (a *App) newSession() {
	p, _ := model.FindPreset(model.DefaultPresetID)
	a.player.Reset()
	a.history.Clear()
	a.problem = p.Problem()
	a.presetID = p.ID
	a.afterEdit(true)
}

func (a *App) saveSession() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()

		index := -1
		if a.player.Trace() != nil {
			index = a.player.Snapshot().Index
		}
		if err := project.SaveSession(path, project.NewSession(a.problem, a.presetID, index)); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberFile(path)
		a.logger.Info("session saved", "path", path)
	}, a.window)
	d.SetFileName("rod" + project.SessionExt)
	d.Show()
}

func (a *App) openSession() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.loadSessionFile(reader.URI().Path())
	}, a.window)
}

// loadSessionFile restores the problem and, for an initialized session,
// re-solves it and jumps to the saved step.
func (a *App) loadSessionFile(path string) {
	s, err := project.LoadSession(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.recordEdit("Open " + filepath.Base(path))
	a.problem = s.Problem.Clone()
	a.presetID = s.PresetID
	a.afterEdit(true)
	a.rememberFile(path)

	if s.StepIndex < 0 {
		return
	}
	trace, err := engine.Solve(a.problem)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.player.Load(trace)
	index := min(s.StepIndex, trace.Len()-1)
	if err := a.player.JumpTo(index); err != nil {
		a.logger.Warn("saved step not restored", "index", s.StepIndex, "error", err)
	}
	a.logger.Info("session loaded", "path", path, "step", index)
}

func (a *App) rememberFile(path string) {
	a.config.AddRecentFile(path, maxRecentFiles)
	a.saveConfig()
	a.SetupMenus()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
		return
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import warning", "warning", w)
	}

	problem, err := result.Problem()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.recordEdit("Import prices")
	a.problem = problem
	a.presetID = ""
	a.afterEdit(true)

	msg := fmt.Sprintf("Imported prices for a rod of %s.", model.Units(problem.RodLength))
	if len(result.Warnings) > 0 {
		msg += "\n\n" + strings.Join(result.Warnings, "\n")
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// importCutDiagram reads the pieces from a DXF cut diagram and prices them
// with the current table, so a hand-drawn plan can be checked against the
// optimum.
func (a *App) importCutDiagram() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.ImportCutDiagram(reader.URI().Path(), a.settings.UnitLength)
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}

		total, profit := 0, 0
		for _, piece := range result.Pieces {
			total += piece
			profit += a.problem.PriceOf(piece)
		}
		msg := fmt.Sprintf("Pieces: %s (%s)\nProfit at current prices: $%d",
			model.JoinInts(result.Pieces, " + "), model.Units(total), profit)
		if total == a.problem.RodLength {
			if trace, err := engine.Solve(a.problem); err == nil {
				msg += fmt.Sprintf("\nOptimal profit: $%d", trace.MaxProfit())
			}
		} else {
			msg += fmt.Sprintf("\nThe diagram does not match the current rod of %s.", model.Units(a.problem.RodLength))
		}
		dialog.ShowInformation("Cut Diagram", msg, a.window)
	}, a.window)
}

// ─── Export Functions ───────────────────────────────────────

// requireTrace returns the solved trace, solving the current prices when
// nothing has been initialized yet.
func (a *App) requireTrace() *model.Trace {
	if t := a.player.Trace(); t != nil {
		return t
	}
	prices, _, err := a.currentPrices()
	if err != nil {
		dialog.ShowError(err, a.window)
		return nil
	}
	trace, err := engine.Solve(model.NewProblem(a.problem.RodLength, prices))
	if err != nil {
		dialog.ShowError(err, a.window)
		return nil
	}
	return trace
}

// saveWith asks for a destination and hands its path to write.
func (a *App) saveWith(defaultName, what string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path); err != nil {
			a.logger.Error("export failed", "what", what, "path", path, "error", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("exported", "what", what, "path", path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", what, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportName(ext string) string {
	base := "rod"
	if a.presetID != "" {
		base += "-" + a.presetID
	}
	return fmt.Sprintf("%s-%d%s", base, a.problem.RodLength, ext)
}

func (a *App) exportPDF() {
	trace := a.requireTrace()
	if trace == nil {
		return
	}
	a.saveWith(a.exportName(".pdf"), "PDF report", func(path string) error {
		return export.ExportPDF(path, trace, a.settings)
	})
}

func (a *App) exportXLSX() {
	trace := a.requireTrace()
	if trace == nil {
		return
	}
	a.saveWith(a.exportName(".xlsx"), "Workbook", func(path string) error {
		return export.ExportXLSX(path, trace)
	})
}

func (a *App) exportDXF() {
	trace := a.requireTrace()
	if trace == nil {
		return
	}
	a.saveWith(a.exportName(".dxf"), "Cut diagram", func(path string) error {
		return export.ExportDXF(path, trace, a.settings)
	})
}

func (a *App) exportJSON() {
	trace := a.requireTrace()
	if trace == nil {
		return
	}
	a.saveWith(a.exportName(".json"), "Trace", func(path string) error {
		return export.ExportJSON(path, trace)
	})
}

func (a *App) exportShareCard() {
	trace := a.requireTrace()
	if trace == nil {
		return
	}
	a.saveWith(a.exportName("-card.pdf"), "Share card", func(path string) error {
		return export.ExportShareCard(path, trace, a.presetID)
	})
}

func (a *App) generator() *gcode.Generator {
	return gcode.NewWithProfile(a.settings, model.ResolveProfile(a.settings.GCodeProfile, a.profiles))
}

func (a *App) exportGCode() {
	trace := a.requireTrace()
	if trace == nil {
		return
	}
	a.saveWith(a.exportName(".nc"), "GCode", func(path string) error {
		return a.generator().WriteFile(path, trace)
	})
}

// showGCodePreview draws the cut program over the rod stock with a summary.
func (a *App) showGCodePreview() {
	trace := a.requireTrace()
	if trace == nil {
		return
	}
	code, err := a.generator().Generate(trace)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	s := gcode.Summarize(gcode.ParseMoves(code))

	summary := container.NewGridWithColumns(4,
		widget.NewLabel("Cuts"), widget.NewLabel(fmt.Sprintf("%d", len(trace.Pieces())-1)),
		widget.NewLabel("Passes"), widget.NewLabel(fmt.Sprintf("%d", s.Feeds)),
		widget.NewLabel("Cut distance"), widget.NewLabel(fmt.Sprintf("%.1f mm", s.CutDistance)),
		widget.NewLabel("Est. time"), widget.NewLabel(fmt.Sprintf("%.1f min", s.EstimatedMinutes)),
	)
	source := widget.NewMultiLineEntry()
	source.SetText(code)
	source.TextStyle = fyne.TextStyle{Monospace: true}
	source.SetMinRowsVisible(10)

	saveBtn := widget.NewButton("Save GCode...", a.exportGCode)
	content := container.NewVBox(
		widgets.RenderGCodePreview(trace.Pieces(), a.settings, code),
		summary,
		source,
		saveBtn,
	)
	d := dialog.NewCustom("GCode Preview — "+a.generator().Settings.GCodeProfile, "Close",
		container.NewVScroll(content), a.window)
	d.Resize(fyne.NewSize(820, 640))
	d.Show()
}

// ─── Presets ───────────────────────────────────────────────

func (a *App) showSavePresetDialog() {
	prices, _, err := a.currentPrices()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("My prices")
	descEntry := widget.NewEntry()

	dialog.ShowForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", labelEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			label := strings.TrimSpace(labelEntry.Text)
			if label == "" {
				dialog.ShowError(fmt.Errorf("preset name cannot be empty"), a.window)
				return
			}
			if _, exists := a.presets.FindByLabel(label); exists {
				dialog.ShowError(fmt.Errorf("a preset named %q already exists", label), a.window)
				return
			}
			p := model.NewPreset(label, descEntry.Text, model.NewProblem(a.problem.RodLength, prices))
			a.presets.Add(p)
			if !a.persistPresets() {
				return
			}
			a.presetID = p.ID
			a.problem = p.Problem()
			a.loadProblemIntoControls()
		},
		a.window,
	)
}

func (a *App) showDeletePresetDialog() {
	var labels []string
	for _, p := range a.presets.Presets {
		labels = append(labels, p.Label)
	}
	if len(labels) == 0 {
		dialog.ShowInformation("No Custom Presets", "Save a price table as a preset first.", a.window)
		return
	}
	sel := widget.NewSelect(labels, nil)
	dialog.ShowForm("Delete Preset", "Delete", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Preset", sel)},
		func(ok bool) {
			if !ok || sel.Selected == "" {
				return
			}
			p, found := a.presets.FindByLabel(sel.Selected)
			if !found || p.BuiltIn {
				return
			}
			a.presets.Remove(p.ID)
			a.persistPresets()
			if a.presetID == p.ID {
				a.presetID = ""
			}
			a.loadProblemIntoControls()
		},
		a.window,
	)
}

func (a *App) persistPresets() bool {
	if err := project.SavePresets(a.opts.PresetPath, a.presets); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
		return false
	}
	return true
}

// ─── Backup ────────────────────────────────────────────────

func (a *App) exportBackup() {
	a.saveWith("rodcut-backup.json", "Backup", func(path string) error {
		return project.ExportAllData(path, a.config, a.presets, a.profiles)
	})
}

func (a *App) importBackup() {
	dialog.ShowConfirm("Import Data",
		"Importing data will replace your settings, custom presets and custom GCode profiles.\n\nAre you sure you want to continue?",
		func(ok bool) {
			if !ok {
				return
			}
			dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				defer reader.Close()
				backup, err := project.ImportAllData(reader.URI().Path())
				if err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.config = backup.Config
				a.presets = backup.Presets
				a.profiles = backup.Profiles
				a.settings = model.DefaultCutSettings()
				a.config.ApplyToSettings(&a.settings)
				a.saveConfig()
				a.persistPresets()
				a.persistCustomProfiles(a.window)
				a.setTheme(a.config.Theme)
				a.speedSlider.SetValue(float64(model.ClampSpeed(a.config.Speed)))
				a.loadProblemIntoControls()
				a.SetupMenus()
				dialog.ShowInformation("Import Complete",
					fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
			}, a.window)
		},
		a.window,
	)
}

// ─── Scenario comparison ───────────────────────────────────

func (a *App) showCompareDialog() {
	prices, _, err := a.currentPrices()
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(model.NewProblem(a.problem.RodLength, prices)))

	grid := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Max Profit", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Pieces", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("vs Current", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, r := range results {
		if r.Err != nil {
			grid.Add(widget.NewLabel(r.Scenario.Name))
			grid.Add(widget.NewLabel("error"))
			grid.Add(widget.NewLabel(r.Err.Error()))
			grid.Add(widget.NewLabel(""))
			continue
		}
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(fmt.Sprintf("$%d", r.MaxProfit)))
		grid.Add(widget.NewLabel(model.JoinInts(r.Pieces, " + ")))
		grid.Add(widget.NewLabel(fmt.Sprintf("%+d", r.ProfitDelta)))
	}

	d := dialog.NewCustom("Compare Scenarios", "Close", grid, a.window)
	d.Resize(fyne.NewSize(640, 300))
	d.Show()
}
