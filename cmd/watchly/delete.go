package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/wizard"
)

type deleteOptions struct {
	yes bool
}

func newDeleteCmd(g *globalOptions) *cobra.Command {
	opts := deleteOptions{}
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your saved settings and sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			s, err := openSession(cmd, g, opts.yes)
			if err != nil {
				return err
			}
			if err := s.boot(ctx, g.launchURL); err != nil {
				return err
			}
			err = s.app.Delete(ctx)
			if errors.Is(err, wizard.ErrCanceled) {
				if s.view.confirmErr != nil {
					return s.view.confirmErr
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
				return nil
			}
			return err
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Delete without asking")
	return cmd
}
