package scheduler

import (
	"context"
	"fmt"
	"time"

	"payexsync/config"
	"payexsync/dto/model"
	"payexsync/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type AuthorizationSource interface {
	ListPendingAuthorizations(ctx context.Context, olderThan time.Time) ([]model.PendingAuthorization, error)
}

type WarningNotifier interface {
	ReportWarning(message string)
}

// AuthorizationScheduler reports PayEx authorizations that were neither
// captured nor cancelled in time. Authorizations expire at PayEx, so
// forgotten orders mean lost payments.
type AuthorizationScheduler struct {
	cron     *cron.Cron
	source   AuthorizationSource
	notifier WarningNotifier
	email    *service.EmailService
	sftp     *service.SFTPService
	logger   *zap.Logger

	Schedule string
	MaxAge   time.Duration
}

// NewAuthorizationScheduler reads AUTHORIZATION_REPORT_CRON (default 07:00
// daily) and AUTHORIZATION_MAX_AGE (default 5 days). email and sftp may be
// nil.
func NewAuthorizationScheduler(source AuthorizationSource, notifier WarningNotifier, email *service.EmailService, sftp *service.SFTPService, logger *zap.Logger) *AuthorizationScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(config.Config("REPORT_TIMEZONE", "Europe/Stockholm"))
	if err != nil {
		logger.Warn("invalid REPORT_TIMEZONE, using UTC", zap.Error(err))
		loc = time.UTC
	}

	return &AuthorizationScheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		source:   source,
		notifier: notifier,
		email:    email,
		sftp:     sftp,
		logger:   logger,
		Schedule: config.Config("AUTHORIZATION_REPORT_CRON", "00 07 * * *"),
		MaxAge:   config.ConfigDuration("AUTHORIZATION_MAX_AGE", 5*24*time.Hour),
	}
}

func (s *AuthorizationScheduler) Start() error {
	entryID, err := s.cron.AddFunc(s.Schedule, func() {
		if _, err := s.RunOnce(context.Background(), time.Now()); err != nil {
			s.logger.Error("authorization report failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling authorization report: %w", err)
	}

	s.cron.Start()
	s.logger.Info("authorization scheduler started",
		zap.Int("entry_id", int(entryID)),
		zap.String("schedule", s.Schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next))
	return nil
}

// Stop waits for a running job to finish.
func (s *AuthorizationScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce reports authorizations older than MaxAge at now and returns how
// many were found.
func (s *AuthorizationScheduler) RunOnce(ctx context.Context, now time.Time) (int, error) {
	rows, err := s.source.ListPendingAuthorizations(ctx, now.Add(-s.MaxAge))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		s.logger.Info("no stale authorizations")
		return 0, nil
	}

	days := int(s.MaxAge.Hours() / 24)
	s.notifier.ReportWarning(fmt.Sprintf("%d PayEx authorization(s) older than %d days are waiting for capture or cancel", len(rows), days))

	emailOn := s.email != nil && s.email.Enabled()
	sftpOn := s.sftp != nil && s.sftp.Enabled()
	if !emailOn && !sftpOn {
		return len(rows), nil
	}

	report, err := service.GenerateAuthorizationReport(rows, now)
	if err != nil {
		return len(rows), fmt.Errorf("error generating authorization report: %w", err)
	}

	if emailOn {
		if err := s.email.SendAuthorizationReport(report, len(rows), now); err != nil {
			s.logger.Error("failed to email authorization report", zap.Error(err))
		}
	}
	if sftpOn {
		if err := s.sftp.UploadFile(service.AuthorizationReportName(now), report); err != nil {
			s.logger.Error("failed to upload authorization report", zap.Error(err))
		}
	}

	s.logger.Info("authorization report sent", zap.Int("count", len(rows)))
	return len(rows), nil
}
