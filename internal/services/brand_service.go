package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

// BrandService manages an organization's brand identity documents.
type BrandService struct {
	db *gorm.DB
}

// BrandDocumentInput describes create/update payloads.
type BrandDocumentInput struct {
	Kind        string
	Title       string
	ContentHTML string
}

// NewBrandService constructs a brand document service.
func NewBrandService(db *gorm.DB) (*BrandService, error) {
	if db == nil {
		return nil, errors.New("brand service: db is required")
	}
	return &BrandService{db: db}, nil
}

// Create stores a new brand document at version 1.
func (s *BrandService) Create(ctx context.Context, orgID string, input BrandDocumentInput) (*models.BrandDocument, error) {
	ctx = ensureContext(ctx)

	kind := strings.TrimSpace(strings.ToLower(input.Kind))
	if kind == "" {
		return nil, apperrors.NewBadRequest("brand document kind is required")
	}

	doc := models.BrandDocument{
		OrganizationID: orgID,
		Kind:           kind,
		Title:          strings.TrimSpace(input.Title),
		ContentHTML:    input.ContentHTML,
		Version:        1,
	}

	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("brand service: create document: %w", err)
	}
	return &doc, nil
}

// Get loads one brand document scoped to the organization.
func (s *BrandService) Get(ctx context.Context, orgID, docID string) (*models.BrandDocument, error) {
	ctx = ensureContext(ctx)

	var doc models.BrandDocument
	err := s.db.WithContext(ctx).
		First(&doc, "id = ? AND organization_id = ?", docID, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("brand service: load document: %w", err)
	}
	return &doc, nil
}

// List returns brand documents, optionally filtered by kind.
func (s *BrandService) List(ctx context.Context, orgID, kind string) ([]models.BrandDocument, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.BrandDocument{}).
		Where("organization_id = ?", orgID).
		Order("kind ASC, created_at DESC")

	if kind = strings.TrimSpace(strings.ToLower(kind)); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var docs []models.BrandDocument
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("brand service: list documents: %w", err)
	}
	return docs, nil
}

// Update modifies a brand document. Content changes bump the version so
// downstream consumers can detect stale copies.
func (s *BrandService) Update(ctx context.Context, orgID, docID string, input BrandDocumentInput) (*models.BrandDocument, error) {
	ctx = ensureContext(ctx)

	doc, err := s.Get(ctx, orgID, docID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if title := strings.TrimSpace(input.Title); title != "" && title != doc.Title {
		updates["title"] = title
	}
	if input.ContentHTML != "" && input.ContentHTML != doc.ContentHTML {
		updates["content_html"] = input.ContentHTML
		updates["version"] = doc.Version + 1
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(doc).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("brand service: update document: %w", err)
		}
		if err := s.db.WithContext(ctx).First(doc, "id = ?", docID).Error; err != nil {
			return nil, fmt.Errorf("brand service: reload document: %w", err)
		}
	}

	return doc, nil
}

// Delete removes a brand document.
func (s *BrandService) Delete(ctx context.Context, orgID, docID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Delete(&models.BrandDocument{}, "id = ? AND organization_id = ?", docID, orgID)
	if result.Error != nil {
		return fmt.Errorf("brand service: delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
