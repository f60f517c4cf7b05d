package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/importer"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/playback"
	"github.com/piwi3910/RodCut/internal/project"
	"github.com/piwi3910/RodCut/internal/ui/widgets"
)

const maxRecentFiles = 8

// Options locates the files the app persists to. Empty paths use the
// defaults under ~/.rodcut.
type Options struct {
	ConfigPath   string
	PresetPath   string
	ProfilesPath string
	Logger       *slog.Logger
}

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *slog.Logger
	opts   Options

	config   model.AppConfig
	presets  model.PresetStore
	profiles []model.GCodeProfile
	settings model.CutSettings
	theme    *RodCutTheme
	history  *History
	player   *playback.Player

	// problem is the table being edited; the player may hold a trace
	// solved from an earlier version of it.
	problem  model.Problem
	presetID string
	updating bool

	// UI references for dynamic updates
	lengthSelect *widget.Select
	presetSelect *widget.Select
	presetDesc   *widget.Label
	priceGrid    *fyne.Container
	priceEntries []*widget.Entry

	initBtn     *ttwidget.Button
	prevBtn     *ttwidget.Button
	playBtn     *ttwidget.Button
	nextBtn     *ttwidget.Button
	resetBtn    *ttwidget.Button
	speedSlider *widget.Slider
	speedLabel  *widget.Label

	statusLabel *widget.Label
	stepLabel   *widget.Label
	rod         *widgets.RodCanvas
	table       *widgets.DPTable
	formula     *formulaPanel
	explanation *widget.Label
	code        *pseudocodePanel
	stats       *statsPanel
	challenges  *widget.Card

	undoItem *fyne.MenuItem
	redoItem *fyne.MenuItem
}

// NewApp loads the persisted config, presets and profiles and prepares the
// player. Load failures fall back to defaults and are logged.
func NewApp(application fyne.App, window fyne.Window, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = project.DefaultConfigPath()
	}
	if opts.PresetPath == "" {
		opts.PresetPath = project.DefaultPresetPath()
	}
	if opts.ProfilesPath == "" {
		opts.ProfilesPath = project.DefaultProfilesPath()
	}
	a := &App{
		app:      application,
		window:   window,
		logger:   opts.Logger.With("component", "ui"),
		opts:     opts,
		settings: model.DefaultCutSettings(),
		history:  NewHistory(),
	}

	cfg, err := project.LoadAppConfig(opts.ConfigPath)
	if err != nil {
		a.logger.Warn("config not loaded, using defaults", "path", opts.ConfigPath, "error", err)
		cfg = model.DefaultAppConfig()
	}
	a.config = cfg
	a.config.ApplyToSettings(&a.settings)

	if a.presets, err = project.LoadPresets(opts.PresetPath); err != nil {
		a.logger.Warn("custom presets not loaded", "path", opts.PresetPath, "error", err)
		a.presets = model.NewPresetStore()
	}
	if a.profiles, err = project.LoadCustomProfiles(opts.ProfilesPath); err != nil {
		a.logger.Warn("custom profiles not loaded", "path", opts.ProfilesPath, "error", err)
		a.profiles = nil
	}

	a.problem, a.presetID = a.startingProblem()
	a.theme = NewRodCutTheme(a.config.Theme)
	a.player = playback.NewPlayer(playback.Options{
		Speed:  a.config.Speed,
		Logger: opts.Logger,
		OnChange: func(ev playback.Event) {
			fyne.Do(func() { a.render(ev) })
		},
	})
	return a
}

// startingProblem restores the last table, or the last preset, or the default preset.
func (a *App) startingProblem() (model.Problem, string) {
	if p, ok := a.presets.Find(a.config.LastPreset); ok {
		return p.Problem(), p.ID
	}
	if a.config.LastProblem != nil && a.config.LastProblem.Validate() == nil {
		return a.config.LastProblem.Clone(), ""
	}
	p, _ := model.FindPreset(model.DefaultPresetID)
	return p.Problem(), p.ID
}

// Theme returns the theme to install on the fyne app.
func (a *App) Theme() fyne.Theme { return a.theme }

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	exportMenu := fyne.NewMenu("",
		fyne.NewMenuItem("PDF Report...", a.exportPDF),
		fyne.NewMenuItem("Excel Workbook...", a.exportXLSX),
		fyne.NewMenuItem("Cut Diagram (DXF)...", a.exportDXF),
		fyne.NewMenuItem("Trace (JSON)...", a.exportJSON),
		fyne.NewMenuItem("GCode Cut Program...", a.exportGCode),
		fyne.NewMenuItem("Share Card...", a.exportShareCard),
	)
	exportItem := fyne.NewMenuItem("Export", nil)
	exportItem.ChildMenu = exportMenu

	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Session", a.newSession),
		fyne.NewMenuItem("Open Session...", a.openSession),
		recent,
		fyne.NewMenuItem("Save Session...", a.saveSession),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Prices from CSV...", a.importCSV),
		fyne.NewMenuItem("Import Prices from Excel...", a.importExcel),
		fyne.NewMenuItem("Check Cut Diagram (DXF)...", a.importCutDiagram),
		fyne.NewMenuItemSeparator(),
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export All Data...", a.exportBackup),
		fyne.NewMenuItem("Import All Data...", a.importBackup),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	a.undoItem = fyne.NewMenuItem("Undo", a.undo)
	a.undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	a.redoItem = fyne.NewMenuItem("Redo", a.redo)
	a.redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	editMenu := fyne.NewMenu("Edit",
		a.undoItem,
		a.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Prices", a.clearPrices),
		fyne.NewMenuItem("Save Prices as Preset...", a.showSavePresetDialog),
		fyne.NewMenuItem("Delete Custom Preset...", a.showDeletePresetDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Initialize", a.initialize),
		fyne.NewMenuItem("Play / Pause", a.togglePlay),
		fyne.NewMenuItem("Step Forward", a.stepForward),
		fyne.NewMenuItem("Step Back", a.stepBackward),
		fyne.NewMenuItem("Reset", a.reset),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Compare Scenarios...", a.showCompareDialog),
		fyne.NewMenuItem("GCode Preview...", a.showGCodePreview),
		fyne.NewMenuItem("GCode Profiles...", a.showProfileManager),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Theme", a.toggleTheme),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Tutorial", a.startTutorial),
		fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcuts),
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
	a.refreshUndoMenu()
}

func (a *App) recentMenu() *fyne.Menu {
	var items []*fyne.MenuItem
	for _, path := range a.config.RecentFiles {
		p := path
		items = append(items, fyne.NewMenuItem(p, func() { a.loadSessionFile(p) }))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("(none)", nil)
		none.Disabled = true
		items = append(items, none)
	}
	return fyne.NewMenu("", items...)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About RodCut",
		"RodCut — Rod Cutting Visualizer\n\n"+
			"Watch dynamic programming find the most profitable way\n"+
			"to cut a rod, one comparison at a time, then export the\n"+
			"plan as a report, a cut diagram or a GCode program.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	left := a.buildInputPanel()
	center := a.buildVisualPanel()
	right := a.buildExplainPanel()

	inner := container.NewHSplit(center, right)
	inner.SetOffset(0.6)
	split := container.NewHSplit(left, inner)
	split.SetOffset(0.22)

	a.window.Canvas().SetOnTypedKey(a.handleKey)
	a.loadProblemIntoControls()
	a.render(a.player.Snapshot())

	return withToolTipLayer(split, a.window.Canvas())
}

// ─── Input Panel ───────────────────────────────────────────

func rodLengthOptions() []string {
	opts := make([]string, 0, model.MaxRodLength)
	for n := model.MinRodLength; n <= model.MaxRodLength; n++ {
		opts = append(opts, strconv.Itoa(n))
	}
	return opts
}

func (a *App) buildInputPanel() fyne.CanvasObject {
	a.presetSelect = widget.NewSelect(a.presets.Labels(), func(label string) {
		if a.updating {
			return
		}
		if p, ok := a.presets.FindByLabel(label); ok {
			a.applyPreset(p)
		}
	})
	a.presetSelect.PlaceHolder = "Custom prices"
	a.presetDesc = widget.NewLabel("")
	a.presetDesc.Wrapping = fyne.TextWrapWord

	a.lengthSelect = widget.NewSelect(rodLengthOptions(), func(s string) {
		if a.updating {
			return
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		a.changeRodLength(n)
	})

	a.priceGrid = container.NewGridWithColumns(2)

	clearBtn := newIconButtonWithTooltip(theme.ContentClearIcon(), "Set every price to 0", a.clearPrices)
	savePresetBtn := newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save these prices as a preset", a.showSavePresetDialog)

	return container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Preset", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			a.presetSelect,
			a.presetDesc,
			widget.NewSeparator(),
			container.NewGridWithColumns(2,
				widget.NewLabelWithStyle("Rod Length", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				a.lengthSelect,
			),
			container.NewHBox(
				widget.NewLabelWithStyle("Prices", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				layout.NewSpacer(),
				clearBtn,
				savePresetBtn,
			),
		),
		nil, nil, nil,
		container.NewVScroll(a.priceGrid),
	)
}

// loadProblemIntoControls syncs the selects and price grid with a.problem.
func (a *App) loadProblemIntoControls() {
	a.updating = true
	defer func() { a.updating = false }()

	a.lengthSelect.SetSelected(strconv.Itoa(a.problem.RodLength))
	a.presetSelect.Options = a.presets.Labels()
	if p, ok := a.presets.Find(a.presetID); ok {
		a.presetSelect.SetSelected(p.Label)
		a.presetDesc.SetText(p.Description)
	} else {
		a.presetSelect.ClearSelected()
		a.presetDesc.SetText("")
	}
	a.rebuildPriceGrid()
	a.rod.SetRod(a.problem.RodLength)
	a.table.SetPrices(a.problem.Prices)
}

func (a *App) rebuildPriceGrid() {
	a.priceGrid.RemoveAll()
	a.priceEntries = make([]*widget.Entry, len(a.problem.Prices))
	for i, price := range a.problem.Prices {
		idx := i // capture
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(price))
		e.Validator = validatePrice
		e.OnChanged = func(text string) {
			if !a.updating {
				a.onPriceChanged(idx, text)
			}
		}
		a.priceEntries[i] = e
		a.priceGrid.Add(widget.NewLabel(fmt.Sprintf("Length %d", i+1)))
		a.priceGrid.Add(e)
	}
	a.priceGrid.Refresh()
}

// validatePrice accepts an empty field (price 0) or a non-negative integer.
func validatePrice(s string) error {
	_, _, err := importer.ParsePrices([]string{s})
	return err
}

func (a *App) onPriceChanged(idx int, text string) {
	prices, _, err := importer.ParsePrices([]string{text})
	if err != nil || prices[0] == a.problem.Prices[idx] {
		return
	}
	a.recordEdit(fmt.Sprintf("Edit price %d", idx+1))
	a.problem.Prices[idx] = prices[0]
	a.deselectPreset()
	a.afterEdit(false)
}

func (a *App) changeRodLength(n int) {
	if n == a.problem.RodLength {
		return
	}
	a.recordEdit(fmt.Sprintf("Rod length %d", n))
	a.problem = model.NewProblem(n, importer.ResizePrices(a.problem.Prices, n))
	a.presetID = ""
	a.afterEdit(true)
}

func (a *App) applyPreset(p model.Preset) {
	if p.ID == a.presetID && p.Problem().Equal(a.problem) {
		return
	}
	a.recordEdit("Load preset " + p.Label)
	a.problem = p.Problem()
	a.presetID = p.ID
	a.afterEdit(true)
	a.logger.Info("preset loaded", "preset", p.ID, "rod_length", p.RodLength)
}

func (a *App) clearPrices() {
	a.recordEdit("Clear prices")
	a.problem = model.NewProblem(a.problem.RodLength, make([]int, a.problem.RodLength))
	a.presetID = ""
	a.afterEdit(true)
}

func (a *App) deselectPreset() {
	if a.presetID == "" {
		return
	}
	a.presetID = ""
	a.updating = true
	a.presetSelect.ClearSelected()
	a.presetDesc.SetText("")
	a.updating = false
}

// afterEdit drops a stale trace and redraws the inputs. Typing into a price
// entry must not rebuild the grid under the cursor.
func (a *App) afterEdit(rebuildControls bool) {
	if a.player.Trace() != nil {
		a.player.Reset()
	}
	if rebuildControls {
		a.loadProblemIntoControls()
	} else {
		a.table.SetPrices(a.problem.Prices)
	}
	a.refreshUndoMenu()
}

// ─── Undo / Redo ───────────────────────────────────────────

func (a *App) recordEdit(label string) {
	a.history.Push(MakeSnapshot(a.problem, a.presetID, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.problem, a.presetID, ""))
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.problem, a.presetID, ""))
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) restore(s Snapshot) {
	a.problem = s.Problem.Clone()
	a.presetID = s.PresetID
	a.afterEdit(true)
}

func (a *App) refreshUndoMenu() {
	if a.undoItem == nil {
		return
	}
	a.undoItem.Disabled = !a.history.CanUndo()
	a.undoItem.Label = "Undo"
	if l := a.history.UndoLabel(); l != "" {
		a.undoItem.Label = "Undo " + l
	}
	a.redoItem.Disabled = !a.history.CanRedo()
	if menu := a.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// ─── Visual Panel ──────────────────────────────────────────

func (a *App) buildVisualPanel() fyne.CanvasObject {
	a.initBtn = newButtonWithTooltip("Initialize", theme.MediaReplayIcon(), "Solve the current prices", a.initialize)
	a.initBtn.Importance = widget.HighImportance
	a.prevBtn = newIconButtonWithTooltip(theme.MediaSkipPreviousIcon(), "Step back (B / ←)", a.stepBackward)
	a.playBtn = newIconButtonWithTooltip(theme.MediaPlayIcon(), "Play / Pause (P)", a.togglePlay)
	a.nextBtn = newIconButtonWithTooltip(theme.MediaSkipNextIcon(), "Step forward (Space / →)", a.stepForward)
	a.resetBtn = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Reset (R)", a.reset)

	a.speedLabel = widget.NewLabel("")
	a.speedSlider = widget.NewSlider(model.MinSpeed, model.MaxSpeed)
	a.speedSlider.Step = 1
	a.speedSlider.SetValue(float64(model.ClampSpeed(a.config.Speed)))
	a.speedLabel.SetText(fmt.Sprintf("Speed %d", int(a.speedSlider.Value)))
	a.speedSlider.OnChanged = func(v float64) {
		a.player.SetSpeed(int(v))
		a.speedLabel.SetText(fmt.Sprintf("Speed %d", int(v)))
	}
	a.speedSlider.OnChangeEnded = func(v float64) {
		a.config.Speed = int(v)
		a.saveConfig()
	}

	a.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.stepLabel = widget.NewLabel("")
	a.rod = widgets.NewRodCanvas(560, 64)
	a.table = widgets.NewDPTable()

	controls := container.NewHBox(
		a.initBtn,
		widget.NewSeparator(),
		a.prevBtn, a.playBtn, a.nextBtn, a.resetBtn,
		layout.NewSpacer(),
		a.speedLabel,
		container.NewGridWrap(fyne.NewSize(140, a.speedSlider.MinSize().Height), a.speedSlider),
	)

	return container.NewBorder(
		container.NewVBox(
			controls,
			widget.NewSeparator(),
			container.NewHBox(a.statusLabel, layout.NewSpacer(), a.stepLabel),
			container.NewPadded(a.rod),
		),
		nil, nil, nil,
		container.NewScroll(container.NewCenter(a.table)),
	)
}

// ─── Explanation Panel ─────────────────────────────────────

func (a *App) buildExplainPanel() fyne.CanvasObject {
	a.formula = newFormulaPanel()
	a.explanation = widget.NewLabel("")
	a.explanation.Wrapping = fyne.TextWrapWord
	a.code = newPseudocodePanel(engine.Pseudocode)
	a.stats = newStatsPanel()

	a.challenges = widget.NewCard("Practice Challenges", "", challengeList())
	a.challenges.Hide()

	return container.NewVScroll(container.NewVBox(
		widget.NewCard("Formula", "", a.formula.container),
		widget.NewCard("What is happening", "", a.explanation),
		widget.NewCard("Pseudocode", "", a.code.container),
		widget.NewCard("Statistics", "", a.stats.container),
		a.challenges,
	))
}

// ─── Actions ───────────────────────────────────────────────

// currentPrices reads the price entries. Every invalid field is reported.
func (a *App) currentPrices() ([]int, []string, error) {
	fields := make([]string, len(a.priceEntries))
	for i, e := range a.priceEntries {
		fields[i] = e.Text
	}
	return importer.ParsePrices(fields)
}

func (a *App) initialize() {
	prices, warnings, err := a.currentPrices()
	if err != nil {
		dialog.ShowError(fmt.Errorf("fix the price table first:\n%w", err), a.window)
		return
	}
	for _, w := range warnings {
		a.logger.Warn("price warning", "warning", w)
	}

	problem := model.NewProblem(a.problem.RodLength, prices)
	trace, err := engine.Solve(problem)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.problem = problem
	a.player.Load(trace)
	a.logger.Info("trace initialized",
		"rod_length", problem.RodLength, "steps", trace.Len(), "max_profit", trace.MaxProfit())

	a.config.LastPreset = a.presetID
	last := problem.Clone()
	a.config.LastProblem = &last
	a.saveConfig()

	if len(warnings) > 0 {
		dialog.ShowInformation("Check your prices", strings.Join(warnings, "\n"), a.window)
	}
}

func (a *App) togglePlay() {
	if err := a.player.Toggle(); err != nil {
		a.initialize()
		if a.player.Trace() != nil {
			_ = a.player.Play()
		}
	}
}

func (a *App) stepForward() {
	if a.player.Trace() == nil {
		a.initialize()
		return
	}
	a.player.StepForward()
}

func (a *App) stepBackward() { a.player.StepBackward() }

func (a *App) reset() { a.player.Reset() }

// ─── Rendering ─────────────────────────────────────────────

// render shows a player event. It runs on the UI goroutine.
func (a *App) render(ev playback.Event) {
	if ev.State == playback.Uninitialized {
		a.renderIdle()
		return
	}
	step := ev.Step

	a.statusLabel.SetText(step.Phase.Status())
	a.stepLabel.SetText(fmt.Sprintf("Step %d / %d", ev.Index+1, ev.Total))
	a.rod.SetStep(step)
	a.table.SetStep(step)
	a.formula.show(step)
	a.explanation.SetText(step.Explanation)
	a.code.highlight(step.CodeLines)
	a.stats.show(ev)

	a.prevBtn.Enable()
	if ev.Index == 0 {
		a.prevBtn.Disable()
	}
	a.nextBtn.Enable()
	if ev.State == playback.Finished {
		a.nextBtn.Disable()
		a.challenges.Show()
	} else {
		a.challenges.Hide()
	}
	a.playBtn.Enable()
	if ev.Playing {
		a.playBtn.SetIcon(theme.MediaPauseIcon())
	} else {
		a.playBtn.SetIcon(theme.MediaPlayIcon())
	}
}

func (a *App) renderIdle() {
	a.statusLabel.SetText(model.Phase("").Status())
	a.stepLabel.SetText("")
	a.rod.SetRod(a.problem.RodLength)
	a.table.SetPrices(a.problem.Prices)
	a.formula.idle("Initialize the algorithm to see the DP recurrence here.")
	a.explanation.SetText("Press Initialize to start the visualization.")
	a.code.highlight(nil)
	a.stats.clear()
	a.challenges.Hide()

	a.prevBtn.Disable()
	a.nextBtn.Enable()
	a.playBtn.Enable()
	a.playBtn.SetIcon(theme.MediaPlayIcon())
}

// ─── Keyboard ──────────────────────────────────────────────

// handleKey runs when no entry has focus.
func (a *App) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace, fyne.KeyRight:
		a.stepForward()
	case fyne.KeyB, fyne.KeyLeft:
		a.stepBackward()
	case fyne.KeyP:
		a.togglePlay()
	case fyne.KeyR:
		a.reset()
	case fyne.KeyH:
		a.showShortcuts()
	case fyne.KeyT:
		a.toggleTheme()
	}
}

func (a *App) toggleTheme() {
	name := a.theme.Toggled(a.app.Settings().ThemeVariant())
	a.setTheme(name)
}

func (a *App) setTheme(name string) {
	a.theme.SetName(name)
	a.app.Settings().SetTheme(a.theme)
	a.config.Theme = a.theme.Name()
	a.saveConfig()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() {
	if err := project.SaveAppConfig(a.opts.ConfigPath, a.config); err != nil {
		a.logger.Error("failed to save config", "path", a.opts.ConfigPath, "error", err)
	}
}
