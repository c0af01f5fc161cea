package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/genre"
	"github.com/oukeidos/watchly-config/internal/textwidth"
)

func newLanguagesCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List content languages offered by the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			s, err := openSession(cmd, g, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range s.app.LoadLanguages(ctx) {
				fmt.Fprintf(out, "  %s %s\n", textwidth.Pad(l.Code, 8), l.Label())
			}
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newGenresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "genres [movie|series]",
		Short:     "List genres that can be excluded",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(genre.Movie), string(genre.Series)},
		Run: func(cmd *cobra.Command, args []string) {
			kinds := []genre.Kind{genre.Movie, genre.Series}
			if len(args) == 1 {
				kinds = []genre.Kind{genre.Kind(args[0])}
			}
			out := cmd.OutOrStdout()
			for i, k := range kinds {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s genres:\n", k)
				for _, gr := range genre.All(k) {
					fmt.Fprintf(out, "  %s %s\n", textwidth.Pad(gr.ID, 6), gr.Name)
				}
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newAnnouncementCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announcement",
		Short: "Show the current announcement, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			s, err := openSession(cmd, g, false)
			if err != nil {
				return err
			}
			b := s.app.LoadAnnouncement(ctx)
			if b.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No announcement.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Text)
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
