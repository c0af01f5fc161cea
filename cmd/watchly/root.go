package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/cleanup"
	"github.com/oukeidos/watchly-config/internal/version"
)

func execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if cleanupErr := cleanup.RunAll(); cleanupErr != nil {
		fmt.Fprintln(os.Stderr, cleanupErr)
		if err == nil {
			err = cleanupErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	envFile    string
	backend    string
	logLevel   string
	logFile    string
	launchURL  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "watchly",
		Short:        "Configure your Watchly Stremio addon",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Config file (default: ./config.yaml, ~/.watchly/config.yaml)")
	pf.StringVar(&opts.envFile, "env-file", "", "Env file loaded before the environment (default: .env)")
	pf.StringVar(&opts.backend, "backend", "", "Watchly backend URL (overrides backend.url)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFile, "log-file", "", "Append JSONL logs to this file")
	pf.StringVar(&opts.launchURL, "launch-url", "", "Launch URL carrying a key or authKey parameter, e.g. watchly://configure?key=...")

	cmd.AddCommand(
		newAboutCmd(),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newStatusCmd(opts),
		newConfigureCmd(opts),
		newCatalogsCmd(opts),
		newDeleteCmd(opts),
		newLanguagesCmd(opts),
		newGenresCmd(),
		newAnnouncementCmd(opts),
	)

	cmd.InitDefaultCompletionCmd()
	for _, sub := range cmd.Commands() {
		if sub.Name() == "completion" {
			sub.Short = "Generate shell completion scripts"
			sub.SetUsageTemplate(subcommandUsageTemplate)
			break
		}
	}

	return cmd
}
