package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	mailer := utils.NewMailer(cfg)

	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, cfg, mailer)

	// Public catalog browsing
	SetupStoreRoutes(r, db)

	// JWT-protected user, cart, order, and chat routes
	SetupUserRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg)
	SetupChatRoutes(r, db, cfg)

	// Admin routes (JWT + role guard)
	SetupAdminRoutes(r, db, cfg)
}
