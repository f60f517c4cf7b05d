package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// TutorialStep is one card of the first-run walkthrough.
type TutorialStep struct {
	Title string
	Body  string
}

var tutorialSteps = []TutorialStep{
	{
		Title: "Welcome to the Rod Cutting Visualizer",
		Body:  "This tool shows how dynamic programming solves the rod cutting problem, step by step, with an explanation for every decision.",
	},
	{
		Title: "Choose a Preset or Set Prices",
		Body:  "Pick a preset to load it instantly, or enter a price for each piece length in the left panel.",
	},
	{
		Title: "Initialize the Algorithm",
		Body:  "Click Initialize to solve the table. The DP table and the rod diagram come to life.",
	},
	{
		Title: "Step Through the Algorithm",
		Body:  "Play the animation or move one step at a time. The DP table fills in and the formula panel shows each comparison.",
	},
	{
		Title: "Read the Explanation",
		Body:  "The right panel describes each step in plain English and highlights the line of pseudocode being run.",
	},
}

// challenges are offered once a solution is on screen.
var challenges = []string{
	"Can you predict the max profit before the algorithm finishes?",
	"What happens if you double the price of length 1?",
	"Try to design prices where the rod should NOT be cut at all.",
	"Which preset gives the most cuts in its optimal solution?",
}

type shortcut struct {
	Keys   string
	Action string
}

var shortcuts = []shortcut{
	{"Space / →", "Step forward"},
	{"B / ←", "Step back"},
	{"P", "Play / Pause"},
	{"R", "Reset"},
	{"H", "Show shortcuts"},
	{"T", "Toggle light / dark theme"},
	{"Ctrl+Z / Ctrl+Y", "Undo / Redo price edits"},
}

func challengeList() fyne.CanvasObject {
	box := container.NewVBox()
	for _, q := range challenges {
		check := widget.NewCheck(q, nil)
		box.Add(check)
	}
	return box
}

// ShowTutorialIfNeeded opens the walkthrough on first run.
func (a *App) ShowTutorialIfNeeded() {
	if !a.config.TutorialDone {
		a.startTutorial()
	}
}

func (a *App) startTutorial() {
	a.showTutorialStep(0)
}

func (a *App) showTutorialStep(i int) {
	step := tutorialSteps[i]
	last := i == len(tutorialSteps)-1

	next := "Next →"
	if last {
		next = "Got it!"
	}
	body := widget.NewLabel(step.Body)
	body.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(
		body,
		widget.NewLabel(fmt.Sprintf("%d of %d", i+1, len(tutorialSteps))),
	)

	d := dialog.NewCustomConfirm(step.Title, next, "Skip", content, func(ok bool) {
		if ok && !last {
			a.showTutorialStep(i + 1)
			return
		}
		a.finishTutorial()
	}, a.window)
	d.Resize(fyne.NewSize(420, 220))
	d.Show()
}

func (a *App) finishTutorial() {
	if a.config.TutorialDone {
		return
	}
	a.config.TutorialDone = true
	a.saveConfig()
}

func (a *App) showShortcuts() {
	grid := container.NewGridWithColumns(2)
	for _, s := range shortcuts {
		grid.Add(widget.NewLabelWithStyle(s.Keys, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true, Bold: true}))
		grid.Add(widget.NewLabel(s.Action))
	}
	dialog.ShowCustom("Keyboard Shortcuts", "Close", grid, a.window)
}
