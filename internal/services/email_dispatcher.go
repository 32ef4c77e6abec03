package services

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pressdeck/pressdeck/pkg/logger"
	"github.com/pressdeck/pressdeck/pkg/mail"
	"github.com/pressdeck/pressdeck/pkg/metrics"
)

const defaultDispatchSpec = "@every 1m"

// EmailDispatcher drains due scheduled emails through the configured mailer.
// Each delivery failure is recorded on the queue row and the drain continues
// with the remaining emails.
type EmailDispatcher struct {
	emails   *EmailService
	mailer   mail.Mailer
	cron     *cron.Cron
	schedule string
	now      func() time.Time
	log      *zap.Logger
}

// DispatcherOption customises the EmailDispatcher.
type DispatcherOption func(*EmailDispatcher)

// WithDispatchCron injects a preconfigured cron instance, primarily for testing.
func WithDispatchCron(c *cron.Cron) DispatcherOption {
	return func(d *EmailDispatcher) {
		if c != nil {
			d.cron = c
		}
	}
}

// WithDispatchSchedule overrides the cron specification for the drain loop.
func WithDispatchSchedule(spec string) DispatcherOption {
	return func(d *EmailDispatcher) {
		if spec != "" {
			d.schedule = spec
		}
	}
}

// WithDispatchNow overrides the clock used to select due emails.
func WithDispatchNow(now func() time.Time) DispatcherOption {
	return func(d *EmailDispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewEmailDispatcher constructs a dispatcher over the email queue.
func NewEmailDispatcher(emails *EmailService, mailer mail.Mailer, opts ...DispatcherOption) (*EmailDispatcher, error) {
	if emails == nil {
		return nil, errors.New("email dispatcher: email service is required")
	}
	if mailer == nil {
		return nil, errors.New("email dispatcher: mailer is required")
	}

	dispatcher := &EmailDispatcher{
		emails:   emails,
		mailer:   mailer,
		schedule: defaultDispatchSpec,
		now:      time.Now,
		log:      logger.WithModule("email.dispatcher"),
	}
	for _, opt := range opts {
		opt(dispatcher)
	}
	if dispatcher.cron == nil {
		dispatcher.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	return dispatcher, nil
}

// Start registers the drain job and launches the scheduler.
func (d *EmailDispatcher) Start() error {
	if _, err := d.cron.AddFunc(d.schedule, func() {
		if err := d.RunOnce(context.Background()); err != nil {
			d.log.Warn("email drain failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	d.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running drain to complete.
func (d *EmailDispatcher) Stop() context.Context {
	if d.cron == nil {
		return context.Background()
	}
	return d.cron.Stop()
}

// RunOnce drains all currently due pending emails. Individual send failures
// are recorded and do not stop the drain; the combined error is returned for
// logging.
func (d *EmailDispatcher) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	due, err := d.emails.DuePending(ctx, d.now())
	if err != nil {
		return err
	}

	var errs error
	for _, email := range due {
		rendered, err := d.emails.RenderDraft(ctx, email.OrganizationID, email.DraftID, nil)
		if err != nil {
			errs = multierr.Append(errs, err)
			if markErr := d.emails.MarkFailed(ctx, email.ID, err); markErr != nil {
				errs = multierr.Append(errs, markErr)
			}
			metrics.EmailsDispatched.WithLabelValues("failed").Inc()
			continue
		}

		sendErr := d.mailer.Send(ctx, mail.Message{
			To:      []string{email.Recipient},
			Subject: rendered.Subject,
			Body:    rendered.Body,
		})
		if sendErr != nil {
			errs = multierr.Append(errs, sendErr)
			if markErr := d.emails.MarkFailed(ctx, email.ID, sendErr); markErr != nil {
				errs = multierr.Append(errs, markErr)
			}
			metrics.EmailsDispatched.WithLabelValues("failed").Inc()
			continue
		}

		if err := d.emails.MarkSent(ctx, email.ID); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		metrics.EmailsDispatched.WithLabelValues("sent").Inc()
	}

	if pending, err := d.emails.CountPending(ctx); err == nil {
		metrics.PendingEmails.Set(float64(pending))
	}

	return errs
}
