package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pressdeck/pressdeck/internal/database/testutil"
	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

func newEmailService(t *testing.T) *EmailService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewEmailService(db)
	require.NoError(t, err)
	return svc
}

func TestEmailService_RenderDraftSubstitutesVariables(t *testing.T) {
	svc := newEmailService(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, testOrg, DraftInput{
		Subject:  "Neues von {{company}}",
		BodyHTML: "<p>Hallo {{firstName}},</p><p>{{company}} hat Neuigkeiten.</p>",
		Variables: map[string]any{
			"company": "Acme",
		},
	})
	require.NoError(t, err)

	rendered, err := svc.RenderDraft(ctx, testOrg, draft.ID, map[string]any{"firstName": "Anna"})
	require.NoError(t, err)
	require.Equal(t, "Neues von Acme", rendered.Subject)
	require.Equal(t, "<p>Hallo Anna,</p><p>Acme hat Neuigkeiten.</p>", rendered.Body)
}

func TestEmailService_RenderDraftKeepsUnknownPlaceholders(t *testing.T) {
	svc := newEmailService(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, testOrg, DraftInput{
		Subject:  "Hallo {{firstName}}",
		BodyHTML: "{{missing}}",
	})
	require.NoError(t, err)

	rendered, err := svc.RenderDraft(ctx, testOrg, draft.ID, nil)
	require.NoError(t, err)
	require.Equal(t, "Hallo {{firstName}}", rendered.Subject)
	require.Equal(t, "{{missing}}", rendered.Body)
}

func TestEmailService_ScheduleDeduplicatesRecipients(t *testing.T) {
	svc := newEmailService(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, testOrg, DraftInput{Subject: "Update"})
	require.NoError(t, err)

	sendAt := time.Now().Add(time.Hour)
	queued, err := svc.Schedule(ctx, testOrg, draft.ID, []string{
		"editor@example.com",
		"Editor@Example.com",
		"  ",
		"press@example.com",
	}, sendAt)
	require.NoError(t, err)
	require.Len(t, queued, 2)
	for _, email := range queued {
		require.Equal(t, models.EmailStatusPending, email.Status)
	}
}

func TestEmailService_ScheduleRequiresRecipients(t *testing.T) {
	svc := newEmailService(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, testOrg, DraftInput{Subject: "Update"})
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, testOrg, draft.ID, []string{" "}, time.Now())
	require.Error(t, err)
}

func TestEmailService_DuePendingSelectsOnlyDue(t *testing.T) {
	svc := newEmailService(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, testOrg, DraftInput{Subject: "Update"})
	require.NoError(t, err)

	now := time.Now()
	_, err = svc.Schedule(ctx, testOrg, draft.ID, []string{"due@example.com"}, now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = svc.Schedule(ctx, testOrg, draft.ID, []string{"future@example.com"}, now.Add(time.Hour))
	require.NoError(t, err)

	due, err := svc.DuePending(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "due@example.com", due[0].Recipient)
}

func TestEmailService_MarkFailedRecordsError(t *testing.T) {
	svc := newEmailService(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, testOrg, DraftInput{Subject: "Update"})
	require.NoError(t, err)
	queued, err := svc.Schedule(ctx, testOrg, draft.ID, []string{"a@example.com"}, time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.MarkFailed(ctx, queued[0].ID, apperrors.ErrInternalServer))

	due, err := svc.DuePending(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Empty(t, due)
}

func TestEmailService_MarkSentUnknownID(t *testing.T) {
	svc := newEmailService(t)
	require.ErrorIs(t, svc.MarkSent(context.Background(), "missing"), apperrors.ErrNotFound)
}
