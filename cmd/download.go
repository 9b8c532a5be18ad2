package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reelgrab/internal/config"
	"reelgrab/internal/debugsink"
	"reelgrab/internal/download"
	"reelgrab/internal/history"
	"reelgrab/internal/httputil"
	"reelgrab/internal/media"
	"reelgrab/internal/metadata"
	"reelgrab/internal/resolver"
	"reelgrab/internal/shortcode"
	"reelgrab/internal/ui"
)

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download a single Instagram video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return downloadAll(cmd.Context(), args)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <url>...",
	Short: "Download several videos in one run",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return downloadAll(cmd.Context(), args)
	},
}

// downloadAll runs the urls sequentially. Without --continue-on-error the
// first failure aborts; with it every url is attempted and the run only
// fails when nothing succeeded.
func downloadAll(ctx context.Context, urls []string) error {
	printer := ui.Printer{Quiet: cfg.Quiet}

	env, err := newDownloadEnv(cfg)
	if err != nil {
		return err
	}
	defer env.close()

	var succeeded, failed int
	for _, rawURL := range urls {
		if err := env.downloadOne(ctx, rawURL, printer); err != nil {
			failed++
			printer.Errorf("%s: %v", rawURL, err)
			if !cfg.ContinueOnError {
				return fmt.Errorf("download failed: %w", err)
			}
			continue
		}
		succeeded++
	}

	if len(urls) > 1 && !cfg.Quiet {
		printer.Infof("done: %d downloaded, %d failed", succeeded, failed)
	}
	if succeeded == 0 {
		return fmt.Errorf("all %d downloads failed", failed)
	}
	return nil
}

// downloadEnv bundles the collaborators shared by every url in a run.
type downloadEnv struct {
	res    *resolver.Resolver
	client *httputil.Client
	store  *history.Store
	outDir string
	cfg    *config.Config
}

func newDownloadEnv(cfg *config.Config) (*downloadEnv, error) {
	outDir, err := cfg.ExpandOutputDir()
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	var sink debugsink.Sink
	if cfg.Debug {
		dir, err := cfg.ExpandDebugDir()
		if err != nil {
			return nil, fmt.Errorf("resolving debug directory: %w", err)
		}
		sink, err = debugsink.NewDir(dir)
		if err != nil {
			return nil, fmt.Errorf("creating debug directory: %w", err)
		}
		debugf("debug artifacts go to %s", dir)
	}

	client := httputil.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second)
	res := resolver.New(client, sink)
	res.SetDebug(cfg.Debug)

	env := &downloadEnv{res: res, client: client, outDir: outDir, cfg: cfg}

	if cfg.History {
		path, err := config.HistoryPath()
		if err == nil {
			if store, err := history.Open(path); err == nil {
				env.store = store
			} else {
				debugf("history disabled: %v", err)
			}
		}
	}

	return env, nil
}

func (e *downloadEnv) close() {
	if e.store != nil {
		e.store.Close()
	}
}

func (e *downloadEnv) downloadOne(ctx context.Context, rawURL string, printer ui.Printer) error {
	code, err := shortcode.Parse(rawURL)
	if err != nil {
		return err
	}
	debugf("resolved shortcode %q from %s", code, rawURL)

	m, err := e.res.Resolve(ctx, code)
	if err != nil {
		return err
	}
	printer.Dimf("%s by @%s", code, displayOwner(m))

	opts := download.Options{
		Dir:          e.outDir,
		SkipExisting: e.cfg.SkipExisting,
		Referer:      m.SourceURL,
	}

	var result *download.Result
	if !e.cfg.Quiet && ui.IsTerminal() {
		err = ui.RunWithProgress(m.FileName, func(report func(written, total int64)) error {
			o := opts
			o.Progress = report
			var ferr error
			result, ferr = download.File(ctx, e.client.Underlying(), m.URL, m.FileName, o)
			return ferr
		})
	} else {
		result, err = download.File(ctx, e.client.Underlying(), m.URL, m.FileName, opts)
	}
	if err != nil {
		return err
	}

	if result.Skipped {
		printer.Infof("skipped %s (already exists)", result.Path)
		return nil
	}
	printer.Successf("saved %s", result.Path)

	if e.cfg.SaveThumbnail && m.ThumbnailURL != "" {
		if _, err := download.File(ctx, e.client.Underlying(), m.ThumbnailURL, code+".jpg", opts); err != nil {
			printer.Warnf("thumbnail download failed: %v", err)
		}
	}

	now := time.Now()
	if e.cfg.SaveMetadata {
		sidecar, err := metadata.Write(result.Path, m, now)
		if err != nil {
			printer.Warnf("writing metadata sidecar failed: %v", err)
		} else {
			printer.Dimf("metadata %s", sidecar)
		}
	}

	if e.store != nil {
		rec := media.DownloadRecord{
			Shortcode:    code,
			Owner:        m.Owner,
			FilePath:     result.Path,
			SourceURL:    m.SourceURL,
			DownloadedAt: now,
		}
		if err := e.store.Add(rec); err != nil {
			debugf("recording history: %v", err)
		}
	}

	return nil
}

func displayOwner(m *media.Media) string {
	if m.Owner == "" {
		return "unknown"
	}
	return m.Owner
}
