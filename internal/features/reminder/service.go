// Package reminder mails users a daily digest of their due tasks.
package reminder

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tablecrm/internal/config"
	"tablecrm/internal/features/email"
)

type ReminderService interface {
	Run(ctx context.Context) (int, error)
	Start() error
	Stop()
}

type ReminderServiceImpl struct {
	Store        *Store
	EmailService email.EmailService
	Config       *config.Config
	Logger       *zap.Logger

	scheduler *cron.Cron
}

func NewReminderService(store *Store, emailService email.EmailService, cfg *config.Config, logger *zap.Logger) ReminderService {
	return &ReminderServiceImpl{
		Store:        store,
		EmailService: emailService,
		Config:       cfg,
		Logger:       logger,
	}
}

// Run sends one digest per user covering every task of theirs that is due.
// It returns how many digests went out.
func (s *ReminderServiceImpl) Run(ctx context.Context) (int, error) {
	tasks, err := s.Store.DueToday(ctx)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	byUser := make(map[int64][]DueTask)
	addresses := make(map[int64]string)
	for _, t := range tasks {
		byUser[t.UserID] = append(byUser[t.UserID], t)
		addresses[t.UserID] = t.OwnerEmail
	}

	sent := 0
	for userID, userTasks := range byUser {
		body := digestBody(userTasks)
		subject := fmt.Sprintf("You have %d task(s) due", len(userTasks))
		if err := s.EmailService.Send(ctx, userID, []string{addresses[userID]}, subject, body); err != nil {
			s.Logger.Warn("reminder send failed",
				zap.Int64("userId", userID), zap.Error(err))
			continue
		}
		sent++
	}

	s.Logger.Info("reminder run finished",
		zap.Int("users", len(byUser)),
		zap.Int("sent", sent))
	return sent, nil
}

// Start schedules the daily run.
func (s *ReminderServiceImpl) Start() error {
	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.Config.ReminderSpec, func() {
		if _, err := s.Run(context.Background()); err != nil {
			s.Logger.Error("scheduled reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	s.scheduler.Start()
	return nil
}

func (s *ReminderServiceImpl) Stop() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
}

func digestBody(tasks []DueTask) string {
	var b strings.Builder
	b.WriteString("<p>The following tasks are due:</p><ul>")
	for _, t := range tasks {
		fmt.Fprintf(&b, "<li>%s (due %s)</li>", t.Title, t.DueDate.Format("01/02/2006"))
	}
	b.WriteString("</ul>")
	return b.String()
}
