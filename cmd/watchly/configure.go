package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/catalog"
	"github.com/oukeidos/watchly-config/internal/files"
	"github.com/oukeidos/watchly-config/internal/genre"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

type configureOptions struct {
	language       string
	excludeMovie   []string
	excludeSeries  []string
	posterProvider string
	posterKey      string

	order   []string
	enable  []string
	disable []string
	rename  map[string]string
	mode    map[string]string
	home    map[string]string
	shuffle map[string]string

	dryRun bool
	out    string
	force  bool
}

func newConfigureCmd(g *globalOptions) *cobra.Command {
	opts := configureOptions{}
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Change preferences and catalogs, then save and install",
		Long: `Change preferences and catalogs, then save and install.

Starts from your saved settings when you are signed in, applies the flags,
and saves. The manifest URL and a stremio:// install link are printed.`,
		Example: `  watchly configure --language de --exclude-movie Horror,War
  watchly configure --order watchly.loved,watchly.rec --disable watchly.creators
  watchly configure --rename watchly.rec="For tonight" --mode watchly.watched=series
  watchly configure --poster-provider rpdb --poster-key t0-xxxx
  watchly configure --dry-run --out settings.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, g, &opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)

	f := cmd.Flags()
	f.StringVar(&opts.language, "language", "", "Content language code, e.g. en-US or de")
	f.StringSliceVar(&opts.excludeMovie, "exclude-movie", nil, "Movie genres to exclude (names or ids; empty clears)")
	f.StringSliceVar(&opts.excludeSeries, "exclude-series", nil, "Series genres to exclude (names or ids; empty clears)")
	f.StringVar(&opts.posterProvider, "poster-provider", "", "Poster rating provider: rpdb, top_posters or none")
	f.StringVar(&opts.posterKey, "poster-key", "", "Poster rating API key")

	f.StringSliceVar(&opts.order, "order", nil, "Catalog ids to move to the top, in this order")
	f.StringSliceVar(&opts.enable, "enable", nil, "Catalog ids to enable")
	f.StringSliceVar(&opts.disable, "disable", nil, "Catalog ids to disable")
	f.StringToStringVar(&opts.rename, "rename", nil, "Rename catalogs: id=name")
	f.StringToStringVar(&opts.mode, "mode", nil, "Catalog content type: id=both|movie|series")
	f.StringToStringVar(&opts.home, "home", nil, "Show catalog on the home screen: id=true|false")
	f.StringToStringVar(&opts.shuffle, "shuffle", nil, "Shuffle catalog items: id=true|false")

	f.BoolVar(&opts.dryRun, "dry-run", false, "Print the settings that would be saved instead of saving")
	f.StringVar(&opts.out, "out", "", "With --dry-run, write the settings to this file")
	f.BoolVarP(&opts.force, "force", "f", false, "Overwrite --out without asking")
	return cmd
}

func runConfigure(cmd *cobra.Command, g *globalOptions, opts *configureOptions) error {
	if opts.out != "" && !opts.dryRun {
		return fmt.Errorf("--out requires --dry-run")
	}
	ctx, stop := signalContext()
	defer stop()

	s, err := openSession(cmd, g, false)
	if err != nil {
		return err
	}
	if err := s.boot(ctx, g.launchURL); err != nil {
		return err
	}
	if err := applyConfigure(cmd, s.app, opts); err != nil {
		return err
	}

	if opts.dryRun {
		return exportPayload(cmd, s.app, opts)
	}
	return submit(ctx, cmd.OutOrStdout(), s.app)
}

func applyConfigure(cmd *cobra.Command, app *wizard.App, opts *configureOptions) error {
	changed := cmd.Flags().Changed

	if changed("language") {
		if err := app.SetLanguage(opts.language); err != nil {
			return err
		}
	}
	if changed("exclude-movie") {
		if err := app.SetExcludedGenres(genre.Movie, opts.excludeMovie); err != nil {
			return err
		}
	}
	if changed("exclude-series") {
		if err := app.SetExcludedGenres(genre.Series, opts.excludeSeries); err != nil {
			return err
		}
	}
	if changed("poster-provider") {
		if err := app.SetPosterProvider(opts.posterProvider); err != nil {
			return err
		}
	}
	if changed("poster-key") {
		app.SetPosterKey(opts.posterKey)
	}

	if err := reorder(app, opts.order); err != nil {
		return err
	}
	for _, id := range opts.enable {
		if err := app.SetCatalogEnabled(strings.TrimSpace(id), true); err != nil {
			return err
		}
	}
	for _, id := range opts.disable {
		if err := app.SetCatalogEnabled(strings.TrimSpace(id), false); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(opts.mode) {
		m, err := catalog.ParseMode(opts.mode[id])
		if err != nil {
			return err
		}
		if err := app.SetCatalogMode(id, m); err != nil {
			return err
		}
	}
	if err := applyBools(opts.home, "--home", app.SetCatalogHome); err != nil {
		return err
	}
	if err := applyBools(opts.shuffle, "--shuffle", app.SetCatalogShuffle); err != nil {
		return err
	}
	for _, id := range sortedKeys(opts.rename) {
		if _, err := app.RenameCatalog(id, opts.rename[id]); err != nil {
			return err
		}
	}
	return nil
}

// reorder moves the listed catalogs to the top with the same single-step
// moves the GUI arrows use.
func reorder(app *wizard.App, ids []string) error {
	for pos, id := range ids {
		id = strings.TrimSpace(id)
		i := indexOf(app.Catalogs(), id)
		if i < 0 {
			return fmt.Errorf("%w: %s", catalog.ErrUnknownCatalog, id)
		}
		if i < pos {
			return fmt.Errorf("catalog %s is listed twice in --order", id)
		}
		for ; i > pos; i-- {
			app.MoveUp(i)
		}
	}
	return nil
}

func indexOf(list []catalog.Descriptor, id string) int {
	for i, d := range list {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func applyBools(values map[string]string, flag string, set func(string, bool) error) error {
	for _, id := range sortedKeys(values) {
		on, err := strconv.ParseBool(strings.TrimSpace(values[id]))
		if err != nil {
			return fmt.Errorf("%s %s: want true or false, got %q", flag, id, values[id])
		}
		if err := set(id, on); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func exportPayload(cmd *cobra.Command, app *wizard.App, opts *configureOptions) error {
	data, err := app.ExportPayload()
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')
	out := cmd.OutOrStdout()
	if opts.out == "" {
		_, err := out.Write(data)
		return err
	}

	path := opts.out
	if _, err := os.Lstat(path); err == nil {
		ok, err := newConfirmer().ConfirmOverwrite(path, opts.force)
		if err != nil {
			return err
		}
		if !ok {
			written, err := files.WriteNew(path, data, 0600)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Kept %s; wrote settings to %s\n", path, written)
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := files.AtomicWrite(path, data, 0600); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote settings to %s\n", path)
	return nil
}

func submit(ctx context.Context, out io.Writer, app *wizard.App) error {
	framing := app.State().Form.Framing
	fmt.Fprintf(out, "%s...\n", framing.Title)

	res, err := app.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Settings saved.")
	fmt.Fprintf(out, "Manifest: %s\n", res.ManifestURL)
	fmt.Fprintf(out, "Install:  %s\n", res.InstallURL)
	if !res.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Expires:  %s\n", res.ExpiresAt.Local().Format(time.RFC1123))
	}
	fmt.Fprintln(out, "Catalogs:")
	for i, d := range app.Catalogs() {
		fmt.Fprintf(out, "  %d. %s\n", i+1, describeCatalog(d))
	}
	return nil
}
