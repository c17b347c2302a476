// Package scheduler runs the nightly batch: derived-field recomputation for
// every person, then the calendar notification checks.
package scheduler

import (
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/directory"
	"github.com/geula-list/registry/internal/notify"
)

// Spec is when the nightly job fires (10:00 server time).
const Spec = "0 10 * * *"

// Start registers the nightly job and returns the running cron, or nil when
// the scheduler is disabled. Gate it off in tests and one-off tooling with
// ENABLE_SCHEDULER unset.
func Start(gdb *gorm.DB, dir *directory.Service) *cron.Cron {
	if os.Getenv("ENABLE_SCHEDULER") != "1" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(Spec, func() { Run(gdb, dir, time.Now()) }); err != nil {
		log.Fatalf("scheduler: bad cron spec: %v", err)
	}
	c.Start()
	log.Printf("scheduler started (%s)", Spec)
	return c
}

// Run executes one pass of the batch. Each step is independent; a failure is
// logged and the remaining steps still run.
func Run(gdb *gorm.DB, dir *directory.Service, now time.Time) {
	if n, err := dir.RecalculateDerived(now); err != nil {
		log.Printf("scheduler: recalculate derived fields: %v", err)
	} else {
		log.Printf("scheduler: refreshed %d person(s)", n)
	}

	if n, err := notify.CheckBirthdays(gdb, now); err != nil {
		log.Printf("scheduler: birthday check: %v", err)
	} else if n > 0 {
		log.Printf("scheduler: created %d birthday notification(s)", n)
	}

	if n, err := notify.CheckUpcomingBnaiMitzvah(gdb, now); err != nil {
		log.Printf("scheduler: bnai mitzvah check: %v", err)
	} else if n > 0 {
		log.Printf("scheduler: created %d bar/bat-mitzvah notification(s)", n)
	}
}
