package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"pg-be-svc/internal/repository"
	"pg-be-svc/internal/service"
	"pg-be-svc/pkg/logger"
)

// NoticeExpiryScheduler runs the daily notice-period sweep: residents whose
// last staying date has passed are moved out through the allocation service,
// and residents whose notice ends soon get a reminder email.
type NoticeExpiryScheduler struct {
	allocationService  service.AllocationService
	residentRepo       repository.ResidentRepository
	notifier           service.NotificationService
	logger             *logger.Logger
	cron               *cron.Cron
	cronExpression     string
	reminderWindowDays int
}

// NewNoticeExpiryScheduler creates a new notice-expiry scheduler
func NewNoticeExpiryScheduler(
	allocationService service.AllocationService,
	residentRepo repository.ResidentRepository,
	notifier service.NotificationService,
	logger *logger.Logger,
	cronExpression string,
	reminderWindowDays int,
) *NoticeExpiryScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &NoticeExpiryScheduler{
		allocationService:  allocationService,
		residentRepo:       residentRepo,
		notifier:           notifier,
		logger:             logger,
		cron:               c,
		cronExpression:     cronExpression,
		reminderWindowDays: reminderWindowDays,
	}
}

// Start initializes and starts all scheduled jobs
func (s *NoticeExpiryScheduler) Start() error {
	s.logger.Info("Starting notice-expiry scheduler...")

	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling notice-expiry sweep")
	if _, err := s.cron.AddFunc(s.cronExpression, s.runSweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Notice-expiry scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *NoticeExpiryScheduler) Stop() {
	s.logger.Info("Stopping notice-expiry scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Notice-expiry scheduler stopped successfully")
}

// runSweep deactivates residents past their last staying date and reminds
// those approaching it
func (s *NoticeExpiryScheduler) runSweep() {
	s.logger.Info("Starting notice-expiry sweep...")

	now := time.Now()
	s.deactivateExpired(now)
	s.remindExpiring(now)

	s.logger.Info("Notice-expiry sweep completed")
}

// deactivateExpired moves out residents whose notice has run out. Going
// through the allocation service keeps the room occupancy counters correct.
func (s *NoticeExpiryScheduler) deactivateExpired(now time.Time) {
	expired, err := s.residentRepo.GetResidentsWithNoticeExpired(now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load residents with expired notice")
		return
	}

	for _, resident := range expired {
		if _, err := s.allocationService.Deactivate(resident.ID); err != nil {
			s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to deactivate resident with expired notice")
			continue
		}
		s.logger.WithField("resident_id", resident.ID).Info("Resident deactivated after notice expiry")
	}

	s.logger.WithField("count", len(expired)).Info("Expired-notice deactivation pass completed")
}

// remindExpiring sends a move-out reminder to residents whose notice ends
// within the reminder window
func (s *NoticeExpiryScheduler) remindExpiring(now time.Time) {
	windowEnd := now.AddDate(0, 0, s.reminderWindowDays)

	expiring, err := s.residentRepo.GetResidentsWithNoticeExpiring(now, windowEnd)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load residents with expiring notice")
		return
	}

	for _, resident := range expiring {
		if resident.LastStayingDate == nil {
			continue
		}

		err := s.notifier.Send(resident.Email, service.TemplateReminderOverdue, map[string]string{
			"name":              resident.Name,
			"last_staying_date": resident.LastStayingDate.Format("2006-01-02"),
		})
		if err != nil {
			// Best-effort: reminders are retried on the next sweep
			s.logger.WithError(err).WithField("resident_id", resident.ID).Error("Failed to send move-out reminder")
			continue
		}

		s.logger.WithField("resident_id", resident.ID).Info("Move-out reminder sent")
	}
}
