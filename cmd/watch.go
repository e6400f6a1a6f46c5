package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chriserin/cukenav/internal/ui"
	"github.com/chriserin/cukenav/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:       "watch features|steps",
	Short:     "Show a tree and show it again whenever its files change",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"features", "steps"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunWatch(cmd.Context(), cmd.OutOrStdout(), globals, args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// RunWatch renders the tree, then prints every batch of change events and
// renders the tree again until ctx is cancelled.
func RunWatch(ctx context.Context, w io.Writer, g Globals, kindArg string) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	a, err := openApp(g, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.composer(kind)
	root, ok := c.Root()
	if !ok {
		return fmt.Errorf("no project folder open")
	}

	if err := ui.RenderTree(w, c, ui.TreeOptions{}); err != nil {
		return err
	}

	batches := make(chan []watch.Event)
	watcher, err := watch.New(watch.Config{
		BaseDir:  root,
		Ignore:   a.cfg.Watch.Ignore,
		Debounce: a.cfg.Watch.Debounce,
		Logger:   a.logger,
		OnChange: func(ctx context.Context, events []watch.Event) error {
			select {
			case batches <- events:
			case <-ctx.Done():
			}
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	refreshed := make(chan struct{}, 1)
	unsubscribe := c.Subscribe(func() {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return watcher.Run(gctx)
	})
	group.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case events := <-batches:
				for _, ev := range events {
					ui.ChangeLine(w, root, ev)
					if err := a.cache.InvalidateUnder(ev.Path); err != nil {
						return err
					}
				}
				c.Refresh()
			case <-refreshed:
				ui.RefreshLine(w, kind.String(), root)
				if err := ui.RenderTree(w, c, ui.TreeOptions{}); err != nil {
					a.logger.Warn("render failed", "tree", kind, "err", err)
				}
			}
		}
	})
	return group.Wait()
}
