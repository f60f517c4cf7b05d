package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/project"
)

// allProfiles returns the built-in profiles followed by the custom ones.
func allProfiles(custom []model.GCodeProfile) []model.GCodeProfile {
	all := make([]model.GCodeProfile, 0, len(model.GCodeProfiles)+len(custom))
	all = append(all, model.GCodeProfiles...)
	return append(all, custom...)
}

// upsertProfile validates p and adds it to custom, replacing the profile
// named replacing (or p.Name when replacing is empty). Built-in names are
// reserved.
func upsertProfile(custom []model.GCodeProfile, p model.GCodeProfile, replacing string) ([]model.GCodeProfile, error) {
	if err := p.Validate(); err != nil {
		return custom, err
	}
	for _, b := range model.GCodeProfiles {
		if b.Name == p.Name {
			return custom, fmt.Errorf("%q is a built-in profile name", p.Name)
		}
	}
	if replacing == "" {
		replacing = p.Name
	}
	p.IsBuiltIn = false

	out := make([]model.GCodeProfile, 0, len(custom)+1)
	replaced := false
	for _, c := range custom {
		switch {
		case c.Name == replacing:
			out = append(out, p)
			replaced = true
		case c.Name == p.Name:
			return custom, fmt.Errorf("a profile named %q already exists", p.Name)
		default:
			out = append(out, c)
		}
	}
	if !replaced {
		out = append(out, p)
	}
	return out, nil
}

// removeProfile drops the custom profile with the given name.
func removeProfile(custom []model.GCodeProfile, name string) ([]model.GCodeProfile, bool) {
	for i, c := range custom {
		if c.Name == name {
			return append(custom[:i:i], custom[i+1:]...), true
		}
	}
	return custom, false
}

// showProfileManager opens the profile management window where users can
// view, create, edit, duplicate, delete, import, and export GCode profiles.
func (a *App) showProfileManager() {
	w := fyne.CurrentApp().NewWindow("GCode Profile Manager")
	w.Resize(fyne.NewSize(700, 500))

	var listWidget *widget.List
	selectedIdx := -1
	profiles := allProfiles(a.profiles)

	detailContainer := container.NewVBox(
		widget.NewLabel("Select a profile to view details."),
	)

	refresh := func() {
		profiles = allProfiles(a.profiles)
		selectedIdx = -1
		listWidget.UnselectAll()
		listWidget.Refresh()
		detailContainer.RemoveAll()
		detailContainer.Add(widget.NewLabel("Select a profile to view details."))
		detailContainer.Refresh()
	}

	listWidget = widget.NewList(
		func() int {
			return len(profiles)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Profile Name"),
				layout.NewSpacer(),
				widget.NewLabel("(built-in)"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			nameLabel := box.Objects[1].(*widget.Label)
			tagLabel := box.Objects[3].(*widget.Label)
			p := profiles[id]
			nameLabel.SetText(p.Name)
			if p.IsBuiltIn {
				tagLabel.SetText("(built-in)")
			} else {
				tagLabel.SetText("(custom)")
			}
		},
	)

	listWidget.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
		a.showProfileDetail(detailContainer, profiles[id], w, refresh)
	}

	selected := func(action string) (model.GCodeProfile, bool) {
		if selectedIdx < 0 || selectedIdx >= len(profiles) {
			dialog.ShowInformation("No Selection", "Select a profile to "+action+".", w)
			return model.GCodeProfile{}, false
		}
		return profiles[selectedIdx], true
	}

	newBtn := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		base := model.GetProfile("Generic")
		base.Name = ""
		base.Description = ""
		a.showEditProfileDialog(base, "", w, refresh)
	})

	duplicateBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), func() {
		if p, ok := selected("duplicate"); ok {
			dup := p
			dup.Name = p.Name + " (Copy)"
			dup.Description = "Copy of " + p.Name
			dup.StartCode = append([]string(nil), p.StartCode...)
			dup.EndCode = append([]string(nil), p.EndCode...)
			a.showEditProfileDialog(dup, "", w, refresh)
		}
	})

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		a.importProfileDialog(w, refresh)
	})

	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		if p, ok := selected("export"); ok {
			a.exportProfileDialog(p, w)
		}
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p, ok := selected("delete")
		if !ok {
			return
		}
		if p.IsBuiltIn {
			dialog.ShowInformation("Cannot Delete", "Built-in profiles cannot be deleted.", w)
			return
		}
		dialog.ShowConfirm("Delete Profile",
			fmt.Sprintf("Delete custom profile %q?", p.Name),
			func(ok bool) {
				if !ok {
					return
				}
				a.profiles, _ = removeProfile(a.profiles, p.Name)
				if a.settings.GCodeProfile == p.Name {
					a.settings.GCodeProfile = model.DefaultCutSettings().GCodeProfile
				}
				a.persistCustomProfiles(w)
				refresh()
			},
			w,
		)
	})

	toolbar := container.NewHBox(newBtn, duplicateBtn, importBtn, exportBtn, deleteBtn)

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		toolbar,
		nil, nil,
		listWidget,
	)

	detailPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profile Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(detailContainer),
	)

	split := container.NewHSplit(listPanel, detailPanel)
	split.SetOffset(0.35)

	w.SetContent(split)
	w.Show()
}

// showProfileDetail populates the detail pane with profile information and an edit button.
func (a *App) showProfileDetail(c *fyne.Container, p model.GCodeProfile, w fyne.Window, onChanged func()) {
	c.RemoveAll()

	info := container.NewVBox(
		widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(p.Description),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewLabel("Decimal Places:"), widget.NewLabel(fmt.Sprintf("%d", p.DecimalPlaces)),
			widget.NewLabel("Rapid Move:"), widget.NewLabel(p.RapidMove),
			widget.NewLabel("Feed Move:"), widget.NewLabel(p.FeedMove),
			widget.NewLabel("Spindle Start:"), widget.NewLabel(p.SpindleStart),
			widget.NewLabel("Spindle Stop:"), widget.NewLabel(p.SpindleStop),
			widget.NewLabel("Comment:"), widget.NewLabel(fmt.Sprintf("%q … %q", p.CommentPrefix, p.CommentSuffix)),
		),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Start Code", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(strings.Join(p.StartCode, "\n")),
		widget.NewLabelWithStyle("End Code", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(strings.Join(p.EndCode, "\n")),
	)

	if !p.IsBuiltIn {
		c.Add(widget.NewButtonWithIcon("Edit Profile", theme.DocumentCreateIcon(), func() {
			a.showEditProfileDialog(p, p.Name, w, onChanged)
		}))
	} else {
		c.Add(widget.NewLabel("Built-in profiles are read-only. Duplicate to customize."))
	}

	c.Add(info)
	c.Refresh()
}

// showEditProfileDialog edits p in its own window. original is the name of
// the custom profile being replaced, or "" for a new one.
func (a *App) showEditProfileDialog(p model.GCodeProfile, original string, w fyne.Window, onSaved func()) {
	entry := func(text string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(text)
		return e
	}
	nameEntry := entry(p.Name)
	nameEntry.SetPlaceHolder("My Saw")
	descEntry := entry(p.Description)
	decimalEntry := entry(strconv.Itoa(p.DecimalPlaces))
	rapidEntry := entry(p.RapidMove)
	feedEntry := entry(p.FeedMove)
	spindleStartEntry := entry(p.SpindleStart)
	spindleStopEntry := entry(p.SpindleStop)
	commentPrefixEntry := entry(p.CommentPrefix)
	commentSuffixEntry := entry(p.CommentSuffix)

	startCodeEntry := widget.NewMultiLineEntry()
	startCodeEntry.SetText(strings.Join(p.StartCode, "\n"))
	startCodeEntry.SetMinRowsVisible(4)

	endCodeEntry := widget.NewMultiLineEntry()
	endCodeEntry.SetText(strings.Join(p.EndCode, "\n"))
	endCodeEntry.SetMinRowsVisible(4)

	generalTab := container.NewTabItem("General", container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Description"), descEntry,
		widget.NewLabel("Decimal Places"), decimalEntry,
		widget.NewLabel("Comment Prefix"), commentPrefixEntry,
		widget.NewLabel("Comment Suffix"), commentSuffixEntry,
	))

	motionTab := container.NewTabItem("Motion / Spindle", container.NewGridWithColumns(2,
		widget.NewLabel("Rapid Move Command"), rapidEntry,
		widget.NewLabel("Feed Move Command"), feedEntry,
		widget.NewLabel("Spindle Start (use %d for RPM)"), spindleStartEntry,
		widget.NewLabel("Spindle Stop"), spindleStopEntry,
	))

	codeTab := container.NewTabItem("Start/End Code", container.NewVBox(
		widget.NewLabelWithStyle("Start Code (one command per line)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		startCodeEntry,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("End Code (one command per line, [SafeZ] is replaced)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		endCodeEntry,
	))

	tabs := container.NewAppTabs(generalTab, motionTab, codeTab)
	editWindow := fyne.CurrentApp().NewWindow("Edit Profile: " + p.Name)

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		decimals, err := strconv.Atoi(strings.TrimSpace(decimalEntry.Text))
		if err != nil {
			dialog.ShowError(fmt.Errorf("decimal places must be a number"), editWindow)
			return
		}
		updated := model.GCodeProfile{
			Name:          strings.TrimSpace(nameEntry.Text),
			Description:   descEntry.Text,
			StartCode:     splitLines(startCodeEntry.Text),
			SpindleStart:  strings.TrimSpace(spindleStartEntry.Text),
			SpindleStop:   strings.TrimSpace(spindleStopEntry.Text),
			RapidMove:     strings.TrimSpace(rapidEntry.Text),
			FeedMove:      strings.TrimSpace(feedEntry.Text),
			EndCode:       splitLines(endCodeEntry.Text),
			CommentPrefix: commentPrefixEntry.Text,
			CommentSuffix: commentSuffixEntry.Text,
			DecimalPlaces: decimals,
		}
		profiles, err := upsertProfile(a.profiles, updated, original)
		if err != nil {
			dialog.ShowError(err, editWindow)
			return
		}
		a.profiles = profiles
		if original != "" && a.settings.GCodeProfile == original {
			a.settings.GCodeProfile = updated.Name
		}
		a.persistCustomProfiles(w)
		onSaved()
		editWindow.Close()
	})
	saveBtn.Importance = widget.HighImportance

	editWindow.SetContent(container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), saveBtn),
		nil, nil,
		tabs,
	))
	editWindow.Resize(fyne.NewSize(600, 460))
	editWindow.Show()
}

// importProfileDialog opens a file dialog to import a profile from JSON.
func (a *App) importProfileDialog(w fyne.Window, onImported func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		profile, err := project.ImportProfile(reader.URI().Path())
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to import profile: %w", err), w)
			return
		}

		profiles, err := upsertProfile(a.profiles, profile, "")
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		a.profiles = profiles
		a.persistCustomProfiles(w)
		onImported()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Profile %q imported successfully.", profile.Name), w)
	}, w)
}

// exportProfileDialog opens a file save dialog to export a profile to JSON.
func (a *App) exportProfileDialog(p model.GCodeProfile, w fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportProfile(writer.URI().Path(), p); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export profile: %w", err), w)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Profile %q exported successfully.", p.Name), w)
	}, w)
	d.SetFileName(strings.ReplaceAll(strings.ToLower(p.Name), " ", "_") + "_profile.json")
	d.Show()
}

// persistCustomProfiles saves the current custom profiles to disk.
func (a *App) persistCustomProfiles(w fyne.Window) {
	if err := project.SaveCustomProfiles(a.opts.ProfilesPath, a.profiles); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save profiles: %w", err), w)
	}
}

// splitLines splits a multiline string into non-empty lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	var lines []string
	for _, line := range raw {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
