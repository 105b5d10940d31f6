package handlers

import (
	"regexp"

	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var periodLabelRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// period labels come in as "YYYY-MM"
		_ = v.RegisterValidation("period_label", func(fl validator.FieldLevel) bool {
			return periodLabelRe.MatchString(fl.Field().String())
		})
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerMembershipRoutes(v1, services.Membership)
	registerReportRoutes(v1, services.Reporting, services.Snapshot)
	registerPaymentRoutes(v1, services.Payment)
}
