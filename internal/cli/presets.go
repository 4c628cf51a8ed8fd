package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetsCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List container and cargo presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := opts.inventory()
			if err != nil {
				return fmt.Errorf("load inventory: %w", err)
			}
			w := cmd.OutOrStdout()
			width := 0
			for _, name := range append(inv.ContainerNames(), inv.CargoNames()...) {
				width = max(width, len(name))
			}
			width += 2

			fmt.Fprintln(w, StyleTitle.Render("Containers"))
			for _, c := range inv.Containers {
				printKeyValueWidth(w, width, c.Name, fmt.Sprintf("%.0f x %.0f x %.0f mm", c.Length, c.Width, c.Height))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, StyleTitle.Render("Cargo"))
			for _, c := range inv.Cargo {
				printKeyValueWidth(w, width, c.Name, fmt.Sprintf("%.0f x %.0f x %.0f mm, %.0f kg", c.Length, c.Width, c.Height, c.Weight))
			}
			return nil
		},
	}
}
