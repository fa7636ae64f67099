package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"tablecrm/internal/config"
	"tablecrm/internal/features/record"
)

// MassResult reports how a bulk send over a table's records went.
type MassResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type EmailService interface {
	Send(ctx context.Context, userID int64, to []string, subject, body string) error
	MassSend(ctx context.Context, userID int64, tableName, subject, body string) (*MassResult, error)
	History(ctx context.Context, userID int64) ([]Message, error)
}

type EmailServiceImpl struct {
	Config        *config.Config
	Repo          *EmailRepository
	RecordService record.RecordService
	Logger        *zap.Logger

	// sendMail is swappable in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg *config.Config, repo *EmailRepository, recordService record.RecordService, logger *zap.Logger) EmailService {
	return &EmailServiceImpl{
		Config:        cfg,
		Repo:          repo,
		RecordService: recordService,
		Logger:        logger,
		sendMail:      smtp.SendMail,
	}
}

func (s *EmailServiceImpl) Send(ctx context.Context, userID int64, to []string, subject, body string) error {
	if s.Config.SMTPHost == "" {
		return errors.New("email is not configured")
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	from := s.Config.SMTPUser
	msg := &Message{
		UserID:  userID,
		From:    from,
		To:      to,
		Subject: subject,
		Body:    body,
		Status:  StatusQueued,
	}
	if err := s.Repo.Create(ctx, msg); err != nil {
		s.Logger.Warn("email journal write failed", zap.Error(err))
	}

	addr := fmt.Sprintf("%s:%d", s.Config.SMTPHost, s.Config.SMTPPort)
	auth := smtp.PlainAuth("", s.Config.SMTPUser, s.Config.SMTPPassword, s.Config.SMTPHost)

	payload := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n",
		strings.Join(to, ", "), subject, body))

	err := s.sendMail(addr, auth, from, to, payload)

	status, errMsg := StatusSent, ""
	if err != nil {
		status, errMsg = StatusFailed, err.Error()
	}
	if !msg.ID.IsZero() {
		if uerr := s.Repo.UpdateStatus(ctx, msg.ID, status, errMsg); uerr != nil {
			s.Logger.Warn("email journal update failed", zap.Error(uerr))
		}
	}

	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	s.Logger.Info("email sent",
		zap.Int64("userId", userID),
		zap.Strings("to", to),
		zap.String("subject", subject))
	return nil
}

// MassSend emails every record in the table that carries an email address,
// one message per recipient so a bad address only fails its own send.
func (s *EmailServiceImpl) MassSend(ctx context.Context, userID int64, tableName, subject, body string) (*MassResult, error) {
	records, err := s.RecordService.List(ctx, tableName, userID)
	if err != nil {
		return nil, err
	}

	result := &MassResult{}
	for _, rec := range records {
		addr, ok := rec["email"].(string)
		if !ok || strings.TrimSpace(addr) == "" {
			continue
		}
		if err := s.Send(ctx, userID, []string{addr}, subject, body); err != nil {
			result.Failed++
			continue
		}
		result.Sent++
	}

	s.Logger.Info("mass send finished",
		zap.String("table", tableName),
		zap.Int64("userId", userID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *EmailServiceImpl) History(ctx context.Context, userID int64) ([]Message, error) {
	return s.Repo.FindByUser(ctx, userID, 100)
}
