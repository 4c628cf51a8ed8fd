package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// errNoGUI is returned when the binary was built without a desktop front end.
var errNoGUI = errors.New("desktop application not available in this build")

func newGUICmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [project]",
		Short: "Open the desktop application",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts, args)
		},
	}
}

func runGUI(cmd *cobra.Command, opts *rootOpts, args []string) error {
	if opts.gui == nil {
		return errNoGUI
	}
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	logger := loggerFromContext(cmd.Context())
	logger.Debug("opening desktop application", "project", path)
	return opts.gui(cmd.Context(), GUIOptions{
		ProjectPath:   path,
		InventoryPath: opts.inventoryPath(),
		Logger:        logger,
	})
}
