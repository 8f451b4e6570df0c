package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/auth"
	"github.com/zarib-ali-wasif/ecommerce-api/config"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, mailer auth.Mailer) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignupHandler(db, cfg, mailer))
		authGroup.POST("/verify-otp", auth.VerifyOTPHandler(db, cfg))
		authGroup.POST("/resend-otp", auth.ResendOTPHandler(db, cfg, mailer))
		authGroup.POST("/login", auth.LoginHandler(db, cfg))
		authGroup.POST("/forgot-password", auth.ForgotPasswordHandler(db, cfg, mailer))
		authGroup.POST("/reset-password", auth.ResetPasswordHandler(db, cfg))
	}
}
