// Package warmer pre-locates application links for known grants so the
// link cache is populated before users ask for them.
package warmer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/WanderingWalnut/Grantly/internal/model"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

// GrantSource lists the grants whose links should be kept warm.
type GrantSource func() ([]model.Grant, error)

type Result struct {
	Located int
	Failed  int
}

// Warmer runs a link warm pass on a cron schedule.
type Warmer struct {
	cron   *cron.Cron
	spec   string
	links  service.ApplicationLinkService
	source GrantSource

	// running guards against overlapping passes when one outlasts the interval.
	running sync.Mutex
	// startup tracks the pass Start runs outside the scheduler.
	startup sync.WaitGroup
	cancel  context.CancelFunc
}

// New creates a Warmer for a cron spec such as "@every 6h".
func New(spec string, links service.ApplicationLinkService, source GrantSource) *Warmer {
	return &Warmer{
		cron:   cron.New(),
		spec:   spec,
		links:  links,
		source: source,
	}
}

// Start registers the job, starts the scheduler and runs one pass
// immediately in the background. Passes run under a context derived from ctx
// that Stop cancels.
func (w *Warmer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	if _, err := w.cron.AddFunc(w.spec, func() { w.RunOnce(ctx) }); err != nil {
		cancel()
		return fmt.Errorf("adding warm job %q: %w", w.spec, err)
	}
	w.cancel = cancel
	w.cron.Start()
	slog.InfoContext(ctx, "link warmer started", "schedule", w.spec)

	w.startup.Add(1)
	go func() {
		defer w.startup.Done()
		w.RunOnce(ctx)
	}()
	return nil
}

// Stop cancels running passes, halts the scheduler and returns a context
// that is done once the startup pass and any scheduled pass have returned.
func (w *Warmer) Stop() context.Context {
	if w.cancel != nil {
		w.cancel()
	}
	scheduled := w.cron.Stop()

	done, finish := context.WithCancel(context.Background())
	go func() {
		<-scheduled.Done()
		w.startup.Wait()
		finish()
	}()
	return done
}

// RunOnce locates the link of every grant from the source. A pass already in
// progress makes this call a no-op.
func (w *Warmer) RunOnce(ctx context.Context) Result {
	if !w.running.TryLock() {
		slog.DebugContext(ctx, "link warm pass already running, skipping")
		return Result{}
	}
	defer w.running.Unlock()

	grants, err := w.source()
	if err != nil {
		slog.WarnContext(ctx, "link warm pass could not list grants", "error", err)
		return Result{}
	}

	start := time.Now()
	var res Result
	seen := make(map[string]struct{}, len(grants))
	for _, g := range grants {
		if ctx.Err() != nil {
			break
		}
		if _, ok := seen[g.Link]; ok || !model.IsAbsoluteURL(g.Link) {
			continue
		}
		seen[g.Link] = struct{}{}

		if _, err := w.links.Locate(ctx, g.Link); err != nil {
			res.Failed++
			slog.DebugContext(ctx, "link warm failed", "grant_url", g.Link, "error", err)
			continue
		}
		res.Located++
	}

	slog.InfoContext(ctx, "link warm pass completed",
		"located", res.Located,
		"failed", res.Failed,
		"duration_ms", time.Since(start).Milliseconds())
	return res
}
