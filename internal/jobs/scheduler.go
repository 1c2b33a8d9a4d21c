package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the background maintenance jobs on a UTC clock
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates the scheduler
func NewScheduler() (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{scheduler: scheduler}, nil
}

// Daily registers a job that runs once a day at the given UTC hour
func (s *Scheduler) Daily(name string, hour int, task func()) error {
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), 0, 0))),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}
	log.Printf("⏰ [SCHEDULER] Registered daily job %s (%02d:00 UTC)", name, hour)
	return nil
}

// Start begins running registered jobs
func (s *Scheduler) Start() {
	s.scheduler.Start()
	log.Println("✅ [SCHEDULER] Job scheduler started")
}

// Stop shuts the scheduler down, waiting for running jobs
func (s *Scheduler) Stop() error {
	log.Println("🛑 [SCHEDULER] Stopping job scheduler...")
	return s.scheduler.Shutdown()
}
