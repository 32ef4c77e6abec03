package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

// EmailService manages email drafts, template rendering and the scheduled
// delivery queue.
type EmailService struct {
	db  *gorm.DB
	now func() time.Time
}

// DraftInput describes an email draft payload.
type DraftInput struct {
	CampaignID *string
	Subject    string
	BodyHTML   string
	Variables  map[string]any
}

// RenderedDraft is the outcome of variable substitution over a draft.
type RenderedDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// NewEmailService constructs an email service.
func NewEmailService(db *gorm.DB) (*EmailService, error) {
	if db == nil {
		return nil, errors.New("email service: db is required")
	}
	return &EmailService{db: db, now: time.Now}, nil
}

// CreateDraft stores a new draft.
func (s *EmailService) CreateDraft(ctx context.Context, orgID string, input DraftInput) (*models.EmailDraft, error) {
	ctx = ensureContext(ctx)

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, apperrors.NewBadRequest("email subject is required")
	}

	draft := models.EmailDraft{
		OrganizationID: orgID,
		CampaignID:     input.CampaignID,
		Subject:        subject,
		BodyHTML:       input.BodyHTML,
	}

	if input.Variables != nil {
		data, err := encodeJSONMap(input.Variables)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid variables payload")
		}
		draft.Variables = data
	}

	if err := s.db.WithContext(ctx).Create(&draft).Error; err != nil {
		return nil, fmt.Errorf("email service: create draft: %w", err)
	}
	return &draft, nil
}

// GetDraft loads one draft scoped to the organization.
func (s *EmailService) GetDraft(ctx context.Context, orgID, draftID string) (*models.EmailDraft, error) {
	ctx = ensureContext(ctx)

	var draft models.EmailDraft
	err := s.db.WithContext(ctx).
		First(&draft, "id = ? AND organization_id = ?", draftID, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("email service: load draft: %w", err)
	}
	return &draft, nil
}

// ListDrafts returns drafts newest first.
func (s *EmailService) ListDrafts(ctx context.Context, orgID string) ([]models.EmailDraft, error) {
	ctx = ensureContext(ctx)

	var drafts []models.EmailDraft
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&drafts).Error
	if err != nil {
		return nil, fmt.Errorf("email service: list drafts: %w", err)
	}
	return drafts, nil
}

// RenderDraft substitutes {{placeholder}} variables into the subject and body.
// Stored draft variables are the base; overrides win. Placeholders without a
// value are left verbatim so missing data stays visible to the author.
func (s *EmailService) RenderDraft(ctx context.Context, orgID, draftID string, overrides map[string]any) (*RenderedDraft, error) {
	draft, err := s.GetDraft(ctx, orgID, draftID)
	if err != nil {
		return nil, err
	}

	vars := decodeJSONMap(draft.Variables)
	if vars == nil {
		vars = map[string]any{}
	}
	for key, value := range overrides {
		vars[key] = value
	}

	return &RenderedDraft{
		Subject: substituteVariables(draft.Subject, vars),
		Body:    substituteVariables(draft.BodyHTML, vars),
	}, nil
}

func substituteVariables(text string, vars map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[key]; ok {
			return fmt.Sprintf("%v", value)
		}
		return match
	})
}

// Schedule queues one delivery per recipient at sendAt. Recipients are
// deduplicated; an empty recipient list is rejected.
func (s *EmailService) Schedule(ctx context.Context, orgID, draftID string, recipients []string, sendAt time.Time) ([]models.ScheduledEmail, error) {
	ctx = ensureContext(ctx)

	if _, err := s.GetDraft(ctx, orgID, draftID); err != nil {
		return nil, err
	}

	unique := normaliseRecipients(recipients)
	if len(unique) == 0 {
		return nil, apperrors.NewBadRequest("at least one recipient is required")
	}

	queued := make([]models.ScheduledEmail, 0, len(unique))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rcpt := range unique {
			email := models.ScheduledEmail{
				OrganizationID: orgID,
				DraftID:        draftID,
				Recipient:      rcpt,
				SendAt:         sendAt,
				Status:         models.EmailStatusPending,
			}
			if err := tx.Create(&email).Error; err != nil {
				return fmt.Errorf("email service: queue email: %w", err)
			}
			queued = append(queued, email)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queued, nil
}

// DuePending returns pending emails whose send time has passed, oldest first.
func (s *EmailService) DuePending(ctx context.Context, now time.Time) ([]models.ScheduledEmail, error) {
	ctx = ensureContext(ctx)

	var due []models.ScheduledEmail
	err := s.db.WithContext(ctx).
		Where("status = ? AND send_at <= ?", models.EmailStatusPending, now).
		Order("send_at ASC").
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("email service: due pending: %w", err)
	}
	return due, nil
}

// CountPending returns the number of queued deliveries still pending.
func (s *EmailService) CountPending(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ScheduledEmail{}).
		Where("status = ?", models.EmailStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("email service: count pending: %w", err)
	}
	return count, nil
}

// MarkSent transitions a queued email into the sent state.
func (s *EmailService) MarkSent(ctx context.Context, emailID string) error {
	return s.markStatus(ctx, emailID, models.EmailStatusSent, "")
}

// MarkFailed records a delivery failure with its error message.
func (s *EmailService) MarkFailed(ctx context.Context, emailID string, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return s.markStatus(ctx, emailID, models.EmailStatusFailed, message)
}

func (s *EmailService) markStatus(ctx context.Context, emailID, status, lastError string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Model(&models.ScheduledEmail{}).
		Where("id = ?", emailID).
		Updates(map[string]any{"status": status, "last_error": lastError})
	if result.Error != nil {
		return fmt.Errorf("email service: mark %s: %w", status, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func normaliseRecipients(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(strings.ToLower(value))
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
