package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/licenses"
	"github.com/oukeidos/watchly-config/internal/version"
)

const projectURL = "https://github.com/oukeidos/watchly-config"

func newAboutCmd() *cobra.Command {
	var showLicense, showNotices, showDisclaimer bool
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description, license and notices",
		Example: `  watchly about
  watchly about --notices`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			switch {
			case showLicense:
				fmt.Fprint(out, licenses.LicenseText())
			case showNotices:
				fmt.Fprint(out, licenses.NoticesText())
			case showDisclaimer:
				fmt.Fprint(out, licenses.DisclaimerText())
			default:
				fmt.Fprintln(out, "watchly: configure the Watchly recommendation addon for Stremio")
				fmt.Fprintf(out, "version %s (c) 2026 oukeidos\n", version.Version)
				fmt.Fprintln(out, projectURL)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	f := cmd.Flags()
	f.BoolVar(&showLicense, "license", false, "Print the license")
	f.BoolVar(&showNotices, "notices", false, "Print third-party notices")
	f.BoolVar(&showDisclaimer, "disclaimer", false, "Print the disclaimer")
	cmd.MarkFlagsMutuallyExclusive("license", "notices", "disclaimer")
	return cmd
}
