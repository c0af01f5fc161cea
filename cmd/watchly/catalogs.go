package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/textwidth"
)

const nameColumn = 32

func newCatalogsCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "List catalogs in their current order",
		Long: `List catalogs in their current order.

When signed in, the order and options come from your saved settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			s, err := openSession(cmd, g, false)
			if err != nil {
				return err
			}
			if err := s.boot(ctx, g.launchURL); err != nil {
				return err
			}
			printCatalogs(cmd.OutOrStdout(), s.app.Catalogs(), s.app.CanRename)
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func printCatalogs(out io.Writer, list []catalog.Descriptor, canRename func(string) bool) {
	idWidth := len("ID")
	for _, d := range list {
		idWidth = max(idWidth, textwidth.Width(d.ID))
	}
	fmt.Fprintf(out, "%-3s %s %s %-7s %-6s %-4s %-7s %s\n",
		"#", textwidth.Pad("ID", idWidth), textwidth.Pad("NAME", nameColumn), "ENABLED", "TYPE", "HOME", "SHUFFLE", "RENAME")
	for i, d := range list {
		rename := "yes"
		if !canRename(d.ID) {
			rename = "fixed"
		}
		fmt.Fprintf(out, "%-3d %s %s %-7s %-6s %-4s %-7s %s\n",
			i+1,
			textwidth.Pad(d.ID, idWidth),
			textwidth.Pad(d.Name, nameColumn),
			yesNo(d.Enabled),
			d.Mode(),
			yesNo(d.DisplayAtHome),
			yesNo(d.Shuffle),
			rename)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// describeCatalog is the one-line summary used after edits.
func describeCatalog(d catalog.Descriptor) string {
	parts := []string{string(d.Mode())}
	if !d.Enabled {
		parts = append(parts, "disabled")
	}
	if d.DisplayAtHome {
		parts = append(parts, "home")
	}
	if d.Shuffle {
		parts = append(parts, "shuffled")
	}
	return fmt.Sprintf("%s (%s)", d.Name, strings.Join(parts, ", "))
}
