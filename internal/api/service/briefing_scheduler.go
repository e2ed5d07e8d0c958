package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"regintel/internal/api/repository"
	"regintel/pkg/logger"
	"regintel/pkg/telegram"
)

// BriefingScheduler generates the daily briefing for every user on a cron
// schedule and optionally pushes it to Telegram.
type BriefingScheduler struct {
	briefingService BriefingService
	userRepo        repository.UserRepository
	notifier        telegram.Notifier
	spec            string
	cron            *cron.Cron
	logger          *logger.Logger
}

// NewBriefingScheduler creates a new scheduler. notifier may be nil, in
// which case briefings are generated but not pushed.
func NewBriefingScheduler(briefingService BriefingService, userRepo repository.UserRepository, notifier telegram.Notifier, spec string, logger *logger.Logger) *BriefingScheduler {
	return &BriefingScheduler{
		briefingService: briefingService,
		userRepo:        userRepo,
		notifier:        notifier,
		spec:            spec,
		cron:            cron.New(),
		logger:          logger,
	}
}

// Start registers the cron entry and starts the scheduler.
func (s *BriefingScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.Run(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Briefing scheduler started", logger.StringField("spec", s.spec))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *BriefingScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Run generates today's briefing for every user.
func (s *BriefingScheduler) Run(ctx context.Context) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users for briefing run", logger.ErrorField(err))
		return
	}

	today := time.Now()
	for _, user := range users {
		briefing, err := s.briefingService.Generate(ctx, user.ID, today)
		if err != nil {
			s.logger.Error("Failed to generate briefing",
				logger.ErrorField(err),
				logger.StringField("user_id", user.ID))
			continue
		}
		s.logger.Info("Generated daily briefing",
			logger.StringField("user_id", user.ID),
			logger.IntField("total_alerts", briefing.Stats.TotalAlerts))

		if s.notifier == nil {
			continue
		}
		if err := s.notifier.SendMessage(telegram.FormatBriefing(briefing)); err != nil {
			s.logger.Error("Failed to push briefing to Telegram",
				logger.ErrorField(err),
				logger.StringField("user_id", user.ID))
		}
	}
}
