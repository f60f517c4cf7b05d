package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/export"
	"github.com/piwi3910/RodCut/internal/gcode"
	"github.com/piwi3910/RodCut/internal/importer"
	"github.com/piwi3910/RodCut/internal/model"
	"github.com/piwi3910/RodCut/internal/project"
)

// Run solves the configured problem, prints the result to out and writes
// every requested export.
func Run(out io.Writer, cfg *Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "cli")

	appConfig, err := project.LoadAppConfig(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", cfg.ConfigPath, err)
	}
	dir := filepath.Dir(cfg.ConfigPath)
	presets, err := project.LoadPresets(filepath.Join(dir, "presets.json"))
	if err != nil {
		logger.Warn("custom presets not loaded", "error", err)
		presets = model.NewPresetStore()
	}

	problem, presetID, err := resolveProblem(cfg, &presets, logger)
	if err != nil {
		return err
	}

	trace, err := engine.Solve(problem)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logger.Info("problem solved", "rod_length", problem.RodLength, "steps", trace.Len(), "max_profit", trace.MaxProfit())

	printSummary(out, trace)
	if cfg.Steps {
		printSteps(out, trace)
	}
	if cfg.Compare {
		printComparison(out, problem)
	}

	settings := model.DefaultCutSettings()
	appConfig.ApplyToSettings(&settings)
	if cfg.Profile != "" {
		settings.GCodeProfile = cfg.Profile
	}

	return writeExports(out, cfg, trace, presetID, settings, filepath.Join(dir, "profiles.json"), logger)
}

// resolveProblem builds the price table from the single configured source.
func resolveProblem(cfg *Config, presets *model.PresetStore, logger *slog.Logger) (model.Problem, string, error) {
	var (
		problem  model.Problem
		presetID string
	)

	switch {
	case cfg.Prices != "":
		p, warnings, err := importer.ParseProblem(cfg.RodLength, cfg.Prices)
		logWarnings(logger, warnings)
		if err != nil {
			return model.Problem{}, "", usageError("invalid -prices: %v", err)
		}
		return p, "", nil

	case cfg.CSVIn != "" || cfg.XLSXIn != "":
		var res importer.ImportResult
		if cfg.CSVIn != "" {
			res = importer.ImportCSV(cfg.CSVIn)
		} else {
			res = importer.ImportExcel(cfg.XLSXIn)
		}
		logWarnings(logger, res.Warnings)
		p, err := res.Problem()
		if err != nil {
			return model.Problem{}, "", &ExitError{Code: 1, Message: err.Error()}
		}
		problem = p

	default:
		id := cfg.Preset
		if id == "" {
			id = model.DefaultPresetID
		}
		p, ok := presets.Find(id)
		if !ok {
			p, ok = presets.FindByLabel(id)
		}
		if !ok {
			return model.Problem{}, "", usageError("unknown preset %q", id)
		}
		problem = p.Problem()
		presetID = p.ID
	}

	if cfg.RodLength != 0 && cfg.RodLength != problem.RodLength {
		logger.Info("price table resized", "from", problem.RodLength, "to", cfg.RodLength)
		problem = model.NewProblem(cfg.RodLength, importer.ResizePrices(problem.Prices, cfg.RodLength))
		presetID = ""
	}
	if err := problem.Validate(); err != nil {
		return model.Problem{}, "", usageError("%v", err)
	}
	return problem, presetID, nil
}

func logWarnings(logger *slog.Logger, warnings []string) {
	for _, w := range warnings {
		logger.Warn("price warning", "warning", w)
	}
}

func printSummary(out io.Writer, trace *model.Trace) {
	p := trace.Problem()
	s := trace.Summary()
	pieces := trace.Pieces()

	fmt.Fprintf(out, "Rod length:  %s\n", model.Units(p.RodLength))
	fmt.Fprintf(out, "Prices:      %s\n", model.JoinInts(p.Prices, ", "))
	fmt.Fprintf(out, "Max profit:  $%d\n", s.MaxProfit)
	fmt.Fprintf(out, "Pieces:      %s\n", model.JoinInts(pieces, " + "))
	fmt.Fprintf(out, "Cuts:        %d\n", len(pieces)-1)
	fmt.Fprintf(out, "Steps:       %d (%d comparisons)\n", s.TotalSteps, s.TotalComparisons)
}

func printSteps(out io.Writer, trace *model.Trace) {
	fmt.Fprintln(out)
	for i, step := range trace.Steps() {
		fmt.Fprintf(out, "%3d  %-9s  %s\n", i+1, step.Phase, step.Explanation)
	}
}

func printComparison(out io.Writer, base model.Problem) {
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Scenario\tMax Profit\tDelta\tPieces")
	for _, r := range engine.CompareScenarios(engine.BuildDefaultScenarios(base)) {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t$%d\t%+d\t%s\n", r.Scenario.Name, r.MaxProfit, r.ProfitDelta, model.JoinInts(r.Pieces, " + "))
	}
	tw.Flush()
}

// writeExports runs each requested export and reports the written paths.
func writeExports(out io.Writer, cfg *Config, trace *model.Trace, presetID string, settings model.CutSettings, profilesPath string, logger *slog.Logger) error {
	type job struct {
		what  string
		path  string
		write func(string) error
	}
	jobs := []job{
		{"PDF report", cfg.PDF, func(p string) error { return export.ExportPDF(p, trace, settings) }},
		{"workbook", cfg.XLSX, func(p string) error { return export.ExportXLSX(p, trace) }},
		{"cut diagram", cfg.DXF, func(p string) error { return export.ExportDXF(p, trace, settings) }},
		{"trace JSON", cfg.JSON, func(p string) error { return export.ExportJSON(p, trace) }},
		{"share card", cfg.Share, func(p string) error { return export.ExportShareCard(p, trace, presetID) }},
		{"cut program", cfg.GCode, func(p string) error {
			gen, err := generatorFor(settings, profilesPath, logger)
			if err != nil {
				return err
			}
			return gen.WriteFile(p, trace)
		}},
	}

	var failed []string
	for _, j := range jobs {
		if j.path == "" {
			continue
		}
		if err := j.write(j.path); err != nil {
			logger.Error("export failed", "kind", j.what, "path", j.path, "error", err)
			failed = append(failed, fmt.Sprintf("%s: %v", j.what, err))
			continue
		}
		logger.Info("exported", "kind", j.what, "path", j.path)
		fmt.Fprintf(out, "Wrote %s: %s\n", j.what, j.path)
	}
	if len(failed) > 0 {
		return &ExitError{Code: 1, Message: "export failed:\n  " + strings.Join(failed, "\n  ")}
	}
	return nil
}

func generatorFor(settings model.CutSettings, profilesPath string, logger *slog.Logger) (*gcode.Generator, error) {
	custom, err := project.LoadCustomProfiles(profilesPath)
	if err != nil {
		logger.Warn("custom profiles not loaded", "path", profilesPath, "error", err)
		custom = nil
	}
	if !knownProfile(settings.GCodeProfile, custom) {
		return nil, fmt.Errorf("unknown GCode profile %q", settings.GCodeProfile)
	}
	return gcode.NewWithProfile(settings, model.ResolveProfile(settings.GCodeProfile, custom)), nil
}

func knownProfile(name string, custom []model.GCodeProfile) bool {
	for _, p := range custom {
		if p.Name == name {
			return true
		}
	}
	for _, n := range model.GetProfileNames() {
		if n == name {
			return true
		}
	}
	return false
}
