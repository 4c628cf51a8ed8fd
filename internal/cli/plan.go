package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadPlan/internal/export"
	"github.com/piwi3910/LoadPlan/internal/importer"
	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
	"github.com/piwi3910/LoadPlan/internal/session"
)

// errUnplaced is returned with --strict when boxes remain unplaced.
var errUnplaced = errors.New("not every box fits")

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	name      string
	container string
	gap       float64
	strict    bool
	pdf       string
	labels    string
	xlsx      string
	dxf       string
	save      string
	manifest  string
}

// newPlanCmd creates the plan command. Input is a TOML manifest, a saved
// project or a cargo table (xlsx, csv); every cargo type is batch-placed in
// order and the result is summarized and optionally exported.
func newPlanCmd(root *rootOpts) *cobra.Command {
	var opts planOpts

	cmd := &cobra.Command{
		Use:   "plan <manifest.toml|project.json|cargo.xlsx|cargo.csv>",
		Short: "Batch-load cargo into a container and write reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.cfg.BindPFlag(cfgKeyGap, cmd.Flags().Lookup("gap")); err != nil {
				return err
			}
			if err := root.cfg.BindPFlag(cfgKeyContainer, cmd.Flags().Lookup("container")); err != nil {
				return err
			}
			return runPlan(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "project name (defaults to the input file name)")
	f.StringVarP(&opts.container, "container", "c", "", "container preset name")
	f.Float64Var(&opts.gap, "gap", model.DefaultSettings().Gap, "spacing between boxes in mm")
	f.BoolVar(&opts.strict, "strict", false, "fail when boxes remain unplaced")
	f.StringVar(&opts.pdf, "pdf", "", "write a PDF load plan report")
	f.StringVar(&opts.labels, "labels", "", "write a PDF sheet of QR cargo labels")
	f.StringVar(&opts.xlsx, "xlsx", "", "write the cargo table as an Excel workbook")
	f.StringVar(&opts.dxf, "dxf", "", "write a 3D DXF wireframe")
	f.StringVar(&opts.save, "save", "", "save the loaded project as JSON")
	f.StringVar(&opts.manifest, "manifest", "", "write the cargo list as a TOML manifest")

	return cmd
}

// loadInput is what an input file resolves to before placement.
type loadInput struct {
	name      string
	container model.Container
	settings  model.Settings
	cargo     []model.CargoSpec
	project   *model.Project
}

func runPlan(cmd *cobra.Command, root *rootOpts, opts planOpts, path string) error {
	logger := loggerFromContext(cmd.Context())
	w := cmd.OutOrStdout()

	settings, err := settingsFromConfig(root.cfg)
	if err != nil {
		return err
	}
	inv, err := root.inventory()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	in, err := readInput(w, logger, path, settings, inv, root.cfg.GetString(cfgKeyContainer), cmd.Flags().Changed("container"))
	if err != nil {
		return err
	}
	if opts.name != "" {
		in.name = opts.name
	}

	var s *session.Session
	if in.project != nil {
		in.project.Name = in.name
		s, err = session.FromProject(*in.project, logger)
		if err != nil {
			return err
		}
	} else {
		s = session.New(in.container, in.settings, logger)
		s.SetName(in.name)
	}

	c := s.Snapshot().Container
	printInfo(w, "loading %d cargo types into %s", len(in.cargo)+len(s.Types()), c.Label)
	for _, spec := range in.cargo {
		if _, err := s.AddType(spec); err != nil {
			printWarning(w, "skipped %q: %v", spec.Name, err)
		}
	}

	batches, err := s.PlaceAll()
	if err != nil {
		return fmt.Errorf("place cargo: %w", err)
	}
	for _, b := range batches {
		logger.Debug("batch", "cargo", b.Type.Name, "placed", len(b.Result.Placed), "remaining", b.Result.Remaining)
	}

	p := s.Project()
	fmt.Fprintln(w, StyleTitle.Render(p.Name))
	printTypeTable(w, p.Plan.Types)
	fmt.Fprintln(w)
	status := s.Status()
	printStatus(w, p.Plan.Container, status)

	if err := writeOutputs(w, opts, p); err != nil {
		return err
	}

	if status.UnplacedBoxes > 0 {
		printWarning(w, "%d of %d boxes do not fit", status.UnplacedBoxes, status.RequestedBoxes)
		if opts.strict {
			return fmt.Errorf("%w: %d unplaced", errUnplaced, status.UnplacedBoxes)
		}
	} else {
		printSuccess(w, "all %d boxes placed", status.Instances)
	}
	return nil
}

// readInput resolves the input file by extension.
func readInput(w io.Writer, logger *log.Logger, path string, settings model.Settings, inv model.Inventory, containerName string, containerFlag bool) (loadInput, error) {
	base := filepath.Base(path)
	in := loadInput{
		name:     strings.TrimSuffix(base, filepath.Ext(base)),
		settings: settings,
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".toml"):
		m, err := project.LoadManifest(path)
		if err != nil {
			return in, err
		}
		if containerFlag {
			m.Container, m.Dimensions = containerName, nil
		}
		c, cargo, err := m.Resolve(inv)
		if err != nil {
			return in, err
		}
		in.container, in.cargo = c, cargo
		in.settings = m.Settings(settings)
		if m.Name != "" {
			in.name = m.Name
		}
		logger.Debug("manifest loaded", "path", path, "cargo", len(cargo))

	case strings.HasSuffix(lower, ".json"):
		p, err := project.LoadProject(path)
		if err != nil {
			return in, err
		}
		in.project = &p
		in.name = p.Name
		logger.Debug("project loaded", "path", path, "types", len(p.Plan.Types), "instances", len(p.Plan.Instances))

	default:
		result := importer.ImportFile(path)
		for _, warning := range result.Warnings {
			printDetail(w, "%s", warning)
		}
		for _, e := range result.Errors {
			printWarning(w, "%s", e)
		}
		if len(result.Cargo) == 0 {
			return in, fmt.Errorf("no cargo imported from %s", path)
		}
		c, err := resolveContainer(inv, containerName)
		if err != nil {
			return in, err
		}
		in.container, in.cargo = c, result.Cargo
		logger.Debug("cargo table imported", "path", path, "cargo", len(result.Cargo), "errors", len(result.Errors))
	}
	return in, nil
}

// resolveContainer looks up a container preset by name; an empty name gives
// the default container.
func resolveContainer(inv model.Inventory, name string) (model.Container, error) {
	if name == "" {
		return model.DefaultContainer(), nil
	}
	preset := inv.FindContainerByName(name)
	if preset == nil {
		return model.Container{}, fmt.Errorf("%w: container preset %q", model.ErrNotFound, name)
	}
	return preset.ToContainer()
}

// writeOutputs writes every requested output file.
func writeOutputs(w io.Writer, opts planOpts, p model.Project) error {
	outputs := []struct {
		path  string
		write func(string) error
	}{
		{opts.pdf, func(path string) error { return export.ExportPDF(path, p) }},
		{opts.labels, func(path string) error { return export.ExportLabels(path, p.Plan) }},
		{opts.xlsx, func(path string) error { return export.ExportXLSX(path, p.Plan) }},
		{opts.dxf, func(path string) error { return export.ExportDXF(path, p.Plan) }},
		{opts.save, func(path string) error { return project.SaveProject(path, p) }},
		{opts.manifest, func(path string) error {
			return project.SaveManifest(path, project.ManifestFromPlan(p.Name, p.Plan, p.Settings))
		}},
	}

	wrote := false
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := out.write(out.path); err != nil {
			printError(w, "%s: %v", out.path, err)
			return fmt.Errorf("write %s: %w", out.path, err)
		}
		if !wrote {
			fmt.Fprintln(w)
			wrote = true
		}
		printFile(w, out.path)
	}
	return nil
}
