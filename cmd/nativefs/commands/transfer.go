package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pterm/pterm"
	"github.com/zb140/nativefs/cmd/nativefs/opts"
	"github.com/zb140/nativefs/pkg/log"
	"github.com/zb140/nativefs/pkg/operation"
	"github.com/zb140/nativefs/pkg/transfer"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🎯 transferPlan pairs one source file with its destination path
type transferPlan struct {
	source      string
	destination string
	size        int64
}

// 🎫 transferResult captures the outcome of one finished transfer
type transferResult struct {
	plan    transferPlan
	samples int
	err     error
}

// 🔍 expandSources resolves glob patterns to a deduplicated list of files
func expandSources(patterns []string) ([]string, error) {
	var sources []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			sources = append(sources, m)
		}
	}
	return sources, nil
}

// 🗺️ planTransfers maps each source onto its destination path. Copying into
// an existing directory keeps the source base name; anything else is a
// direct file-to-file transfer.
func planTransfers(sources []string, destination string) ([]transferPlan, error) {
	intoDir := false
	if info, err := os.Stat(destination); err == nil {
		intoDir = info.IsDir()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Errorf("reading destination: %w", err)
	}

	if len(sources) > 1 && !intoDir {
		return nil, errors.Errorf("destination %q must be an existing directory to receive %d files", destination, len(sources))
	}

	plans := make([]transferPlan, 0, len(sources))
	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil {
			return nil, errors.Errorf("reading source: %w", err)
		}
		if info.IsDir() {
			return nil, errors.Errorf("source %q is a directory", source)
		}

		dest := destination
		if intoDir {
			dest = filepath.Join(destination, filepath.Base(source))
		}

		// The engine truncates the destination on open, so transferring a
		// file onto itself would destroy it.
		if samePath(source, dest) {
			return nil, errors.Errorf("source and destination are the same file: %s", source)
		}

		plans = append(plans, transferPlan{source: source, destination: dest, size: info.Size()})
	}
	return plans, nil
}

// samePath reports whether two paths name the same file lexically
func samePath(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return aa == bb
}

// 🏃 runTransfers expands, plans and executes one batch of transfers. Per-file
// failures do not abort the batch; they are reported per line and rolled up
// into the returned error.
func runTransfers(ctx context.Context, ro *opts.RootOpts, kind operation.Kind, args []string) error {
	sources, err := expandSources(args[:len(args)-1])
	if err != nil {
		return err
	}

	destination := args[len(args)-1]
	plans, err := planTransfers(sources, destination)
	if err != nil {
		return err
	}

	verb := "copying"
	if kind == operation.KindMove {
		verb = "moving"
	}

	ro.Console.Header(fmt.Sprintf("%s %d %s", verb, len(plans), plural("file", len(plans))))
	ro.Console.StartBatch(ctx, log.BatchOperation{
		Kind:        string(kind),
		Destination: destination,
		Sources:     len(plans),
		Concurrency: ro.Config.Concurrency,
	})

	showProgress := ro.Config.ProgressEnabled()

	var bar *pterm.ProgressbarPrinter
	var barMu sync.Mutex
	if showProgress {
		var total int64
		for _, plan := range plans {
			total += plan.size
		}
		bar, err = pterm.DefaultProgressbar.WithTotal(int(total)).WithTitle(verb).Start()
		if err != nil {
			return errors.Errorf("starting progress bar: %w", err)
		}
	}

	results := make([]transferResult, len(plans))

	g := new(errgroup.Group)
	g.SetLimit(ro.Config.Concurrency)
	for i, plan := range plans {
		g.Go(func() error {
			hooks := transfer.Hooks{}
			if showProgress {
				var last int64
				hooks.OnProgress = func(completed, total int64) {
					barMu.Lock()
					bar.Add(int(completed - last))
					last = completed
					results[i].samples++
					barMu.Unlock()
				}
			}

			var op *operation.Operation
			if kind == operation.KindMove {
				op = ro.Operator.Move(ctx, plan.source, plan.destination, hooks)
			} else {
				op = ro.Operator.Copy(ctx, plan.source, plan.destination, hooks)
			}

			results[i].plan = plan
			results[i].err = op.Wait(ctx)
			return nil
		})
	}
	_ = g.Wait()

	if showProgress {
		_, _ = bar.Stop()
	}

	// One line per transfer, then the batch summary
	failed := 0
	for _, res := range results {
		ro.Console.LogTransferOperation(ctx, transferLine(kind, res))
		if res.err != nil {
			failed++
		}
	}
	ro.Console.EndBatch(ctx)

	if failed > 0 {
		return errors.Errorf("%d of %d transfers failed", failed, len(plans))
	}

	done := "copied"
	if kind == operation.KindMove {
		done = "moved"
	}
	ro.Console.Successf("%s %d %s", done, len(plans), plural("file", len(plans)))
	return nil
}

// 📝 transferLine builds the console line for one finished transfer
func transferLine(kind operation.Kind, res transferResult) log.TransferOperation {
	line := log.TransferOperation{
		Source:      res.plan.source,
		Destination: res.plan.destination,
		Kind:        string(kind),
		Status:      "done",
		Bytes:       res.plan.size,
	}

	switch {
	case res.err != nil:
		line.Status = "failed"
		line.Failed = true
		line.Bytes = 0
	case kind == operation.KindMove && res.samples == 1 && res.plan.size > 0:
		// A streamed move of a non-empty file always reports at least two
		// samples (in-flight plus the final one); a lone sample means the
		// rename fast path was taken.
		line.Status = "renamed"
		line.Renamed = true
	}

	return line
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
