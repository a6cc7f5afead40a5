// Package session holds the state of one interactive planning session:
// the plan being worked on, the cached history and the busy flag that
// keeps generation and refinement from overlapping.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abhisek/lessonplan/internal/export"
	"github.com/abhisek/lessonplan/internal/history"
	"github.com/abhisek/lessonplan/internal/lessonplan"
	"github.com/abhisek/lessonplan/internal/logger"
)

var (
	// ErrBusy is returned when a generation or refinement is already running.
	ErrBusy = errors.New("a request is already in progress")

	// ErrNoCurrentPlan is returned by operations that need an open plan.
	ErrNoCurrentPlan = errors.New("no lesson plan is open")

	// ErrNotFound is returned when a history entry does not exist.
	ErrNotFound = errors.New("lesson plan not found in history")
)

// Planner produces plans. *planner.Planner satisfies it.
type Planner interface {
	Generate(ctx context.Context, params lessonplan.GenerationParams) (lessonplan.LessonPlan, error)
	Refine(ctx context.Context, current lessonplan.LessonPlan, feedback string) (lessonplan.LessonPlan, error)
}

// Result is the outcome of a successful generate or refine. Warning is
// set when the plan was produced but could not be saved to history.
type Result struct {
	Plan    lessonplan.LessonPlan
	Warning error
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Now    func() time.Time
	NewID  func() string
	Logger *logger.Logger
}

// Controller coordinates the planner, the history and the exporters.
// It is safe for use from multiple goroutines.
type Controller struct {
	planner Planner
	history history.Store
	now     func() time.Time
	newID   func() string
	log     *logger.Logger

	busy atomic.Bool

	mu      sync.RWMutex
	current *lessonplan.LessonPlan
	entries []lessonplan.LessonPlan
}

// New creates a Controller.
func New(p Planner, h history.Store, opts Options) *Controller {
	c := &Controller{
		planner: p,
		history: h,
		now:     opts.Now,
		newID:   opts.NewID,
		log:     opts.Logger,
		entries: []lessonplan.LessonPlan{},
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = lessonplan.NewID
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	return c
}

// Busy reports whether a generation or refinement is running.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Generate drafts a new plan, makes it current and saves it to history.
func (c *Controller) Generate(ctx context.Context, params lessonplan.GenerationParams) (Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer c.busy.Store(false)

	plan, err := c.planner.Generate(ctx, params)
	if err != nil {
		c.log.Error("plan generation failed", "topic", params.Topic, "error", err)
		return Result{}, err
	}

	plan.ID = c.newID()
	plan.CreatedAt = lessonplan.NewTimestamp(c.now())
	c.log.Info("plan generated", "id", plan.ID, "title", plan.Title, "steps", len(plan.Procedure))

	return c.commit(ctx, plan), nil
}

// Refine rewrites the current plan from feedback. The plan keeps its ID
// and creation time. On failure the current plan is left unchanged.
func (c *Controller) Refine(ctx context.Context, feedback string) (Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer c.busy.Store(false)

	current, ok := c.Current()
	if !ok {
		return Result{}, ErrNoCurrentPlan
	}

	refined, err := c.planner.Refine(ctx, current, feedback)
	if err != nil {
		c.log.Error("plan refinement failed", "id", current.ID, "error", err)
		return Result{}, err
	}

	plan := refined.WithIdentityOf(current)
	c.log.Info("plan refined", "id", plan.ID, "title", plan.Title)

	return c.commit(ctx, plan), nil
}

// commit makes plan current and persists it. A persistence failure is
// reported as a warning; the plan stays usable.
func (c *Controller) commit(ctx context.Context, plan lessonplan.LessonPlan) Result {
	c.mu.Lock()
	p := plan.Clone()
	c.current = &p
	c.mu.Unlock()

	res := Result{Plan: plan.Clone()}
	if err := c.history.Save(ctx, plan); err != nil {
		c.log.Warn("history save failed", "id", plan.ID, "error", err)
		res.Warning = err
		c.mu.Lock()
		c.entries = upsertCached(c.entries, plan)
		c.mu.Unlock()
		return res
	}
	if err := c.Reload(ctx); err != nil {
		c.log.Warn("history reload failed", "error", err)
		res.Warning = err
	}
	return res
}

// upsertCached mirrors a save in the cached list when the store failed,
// so the session still shows the plan.
func upsertCached(list []lessonplan.LessonPlan, plan lessonplan.LessonPlan) []lessonplan.LessonPlan {
	out := []lessonplan.LessonPlan{plan.Clone()}
	for _, p := range list {
		if p.ID != plan.ID && len(out) < history.MaxEntries {
			out = append(out, p)
		}
	}
	return out
}

// Current returns a copy of the open plan.
func (c *Controller) Current() (lessonplan.LessonPlan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return lessonplan.LessonPlan{}, false
	}
	return c.current.Clone(), true
}

// History returns the cached history, most recent first.
func (c *Controller) History() []lessonplan.LessonPlan {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]lessonplan.LessonPlan, len(c.entries))
	for i, p := range c.entries {
		out[i] = p.Clone()
	}
	return out
}

// Reload refreshes the cached history from the store.
func (c *Controller) Reload(ctx context.Context) error {
	list, err := c.history.LoadAll(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries = list
	c.mu.Unlock()
	return nil
}

// Open makes the history entry with the given ID the current plan. It
// fails with ErrBusy while a generation or refinement is running, since
// that result would replace the opened plan.
func (c *Controller) Open(id string) (lessonplan.LessonPlan, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return lessonplan.LessonPlan{}, ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.entries {
		if p.ID == id {
			cur := p.Clone()
			c.current = &cur
			return p.Clone(), nil
		}
	}
	return lessonplan.LessonPlan{}, ErrNotFound
}

// Delete removes a plan from history. If it is the current plan, the
// session no longer has one open. Deleting an unknown ID is a no-op.
// Like Open, it fails with ErrBusy while a request is running.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if !c.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.busy.Store(false)

	if err := c.history.Delete(ctx, id); err != nil {
		c.log.Warn("history delete failed", "id", id, "error", err)
		return err
	}

	c.mu.Lock()
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
	c.mu.Unlock()

	c.log.Info("plan deleted", "id", id)
	return c.Reload(ctx)
}

// Export writes the current plan to dir in the given format, dated with
// the controller clock.
func (c *Controller) Export(dir string, format export.Format) (string, error) {
	plan, ok := c.Current()
	if !ok {
		return "", ErrNoCurrentPlan
	}
	path, err := export.WriteFile(dir, plan, format, c.now())
	if err != nil {
		c.log.Error("export failed", "id", plan.ID, "format", string(format), "error", err)
		return "", err
	}
	c.log.Info("plan exported", "id", plan.ID, "path", path)
	return path, nil
}
