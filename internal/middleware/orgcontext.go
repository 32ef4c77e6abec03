package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/models"
	appErrors "github.com/pressdeck/pressdeck/pkg/errors"
	"github.com/pressdeck/pressdeck/pkg/response"
)

// CtxOrgIDKey is the gin context key carrying the resolved organization id.
const CtxOrgIDKey = "org_id"

// OrgHeader is the request header clients use to select the tenant.
const OrgHeader = "X-Org-ID"

// OrgContext resolves the tenant organization from the X-Org-ID header and
// aborts the request when it is missing or unknown. Authentication itself is
// handled upstream of this service.
func OrgContext(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := strings.TrimSpace(c.GetHeader(OrgHeader))
		if orgID == "" {
			response.Error(c, appErrors.ErrOrgRequired)
			c.Abort()
			return
		}

		var org models.Organization
		err := db.WithContext(c.Request.Context()).
			Select("id").
			First(&org, "id = ?", orgID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, appErrors.NewNotFound("organization not found"))
			} else {
				response.Error(c, appErrors.Wrap(err, "resolve organization"))
			}
			c.Abort()
			return
		}

		c.Set(CtxOrgIDKey, org.ID)
		c.Next()
	}
}
