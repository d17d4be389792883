package service

import (
	"fmt"
	"time"

	"github.com/khwelo/classward/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReminderScheduler periodically sweeps the visible assessments and sends
// reminders for those closing within the configured lead time. Selection of
// recipients stays in ReminderService; this loop only decides when to run.
type ReminderScheduler struct {
	assessmentRepo repository.AssessmentRepository
	reminders      ReminderService
	schedule       ScheduleService
	clock          Clock
	interval       time.Duration
	leadDays       int
	stop           chan struct{}
}

func NewReminderScheduler(
	assessmentRepo repository.AssessmentRepository,
	reminders ReminderService,
	schedule ScheduleService,
	clock Clock,
	interval time.Duration,
	leadDays int,
) *ReminderScheduler {
	return &ReminderScheduler{
		assessmentRepo: assessmentRepo,
		reminders:      reminders,
		schedule:       schedule,
		clock:          clock,
		interval:       interval,
		leadDays:       leadDays,
		stop:           make(chan struct{}),
	}
}

// Start runs the sweep loop in a goroutine until Stop is called.
func (s *ReminderScheduler) Start() {
	log.Info().Dur("interval", s.interval).Int("leadDays", s.leadDays).
		Msg("Starting reminder scheduler")
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runSweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *ReminderScheduler) Stop() {
	close(s.stop)
}

func (s *ReminderScheduler) runSweep() {
	assessments, err := s.assessmentRepo.FindVisible()
	if err != nil {
		log.Error().Err(err).Msg("Reminder sweep: failed to list assessments")
		return
	}

	today := s.clock.Today()
	for i := range assessments {
		a := &assessments[i]
		remaining := s.schedule.DaysUntilDue(a, today)
		if remaining < 0 || remaining > s.leadDays {
			continue
		}
		message := fmt.Sprintf("%q closes in %d day(s). Remember to submit your answers.", a.Title, remaining)
		count, err := s.reminders.SendReminders(a.ID, message)
		if err != nil {
			log.Error().Err(err).Uint("assessmentID", a.ID).Msg("Reminder sweep: send failed")
			continue
		}
		if count > 0 {
			log.Info().Uint("assessmentID", a.ID).Int("recipients", count).
				Msg("Reminder sweep: reminders dispatched")
		}
	}
}
