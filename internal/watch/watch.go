// Package watch re-runs the dataset download on a cron schedule so the
// CSV stays current between labeling sessions.
package watch

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Refresher runs a single refresh task on a cron schedule.
type Refresher struct {
	Cron *cron.Cron
	Ctx  context.Context
	task func(ctx context.Context) error
}

// NewRefresher creates a Refresher around the given task.
func NewRefresher(ctx context.Context, task func(ctx context.Context) error) *Refresher {
	return &Refresher{
		Cron: cron.New(cron.WithSeconds()),
		Ctx:  ctx,
		task: task,
	}
}

// Register adds the refresh task under the given cron spec.
func (r *Refresher) Register(spec string) error {
	if _, err := r.Cron.AddFunc(spec, r.run); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

func (r *Refresher) run() {
	log.Println("[INFO] scheduled refresh starting")
	if err := r.task(r.Ctx); err != nil {
		log.Printf("[ERROR] scheduled refresh failed: %v", err)
		return
	}
	log.Println("[INFO] scheduled refresh done")
}

// Start starts the cron scheduler.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Println("[INFO] refresh scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (r *Refresher) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] refresh scheduler stopped")
}
