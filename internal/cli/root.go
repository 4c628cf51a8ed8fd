package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/LoadPlan/internal/model"
	"github.com/piwi3910/LoadPlan/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version and the
// version command. main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GUIOptions is what the CLI hands to the desktop application.
type GUIOptions struct {
	ProjectPath   string // optional project file to open
	InventoryPath string
	Logger        *charmlog.Logger
}

// GUILauncher opens the desktop application.
type GUILauncher func(ctx context.Context, opts GUIOptions) error

// rootOpts holds the state shared by every subcommand.
type rootOpts struct {
	verbose   bool
	configDir string
	cfg       *viper.Viper
	gui       GUILauncher
}

// inventory loads the preset inventory named in the config, or the one in
// the config directory.
func (o *rootOpts) inventory() (model.Inventory, error) {
	return project.LoadInventory(o.inventoryPath())
}

func (o *rootOpts) inventoryPath() string {
	if path := o.cfg.GetString(cfgKeyInventory); path != "" {
		return path
	}
	return filepath.Join(o.configDir, "inventory.json")
}

// Execute runs the loadplan CLI. Without a subcommand it opens the desktop
// application through gui.
func Execute(ctx context.Context, gui GUILauncher) error {
	return newRootCmd(gui).ExecuteContext(ctx)
}

func newRootCmd(gui GUILauncher) *cobra.Command {
	opts := &rootOpts{gui: gui}

	root := &cobra.Command{
		Use:           "loadplan",
		Short:         "LoadPlan lays out cargo in a shipping container",
		Long:          `LoadPlan places rectangular cargo boxes in a container under gravity, shows the load in top, side and front views and exports load plans as PDF, labels, spreadsheets and DXF.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := loadConfig(opts.configDir)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logger.Debug("config loaded", "dir", opts.configDir, "file", cfg.ConfigFileUsed())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts, args)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("loadplan %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", project.DefaultConfigDir(), "directory holding cli.yaml and inventory.json")

	root.AddCommand(newPlanCmd(opts))
	root.AddCommand(newPresetsCmd(opts))
	root.AddCommand(newGUICmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			printKeyValue(w, "version", version)
			if commit != "" {
				printKeyValue(w, "commit", commit)
			}
			if date != "" {
				printKeyValue(w, "built", date)
			}
		},
	}
}
