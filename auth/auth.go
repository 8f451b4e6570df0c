package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	"github.com/zarib-ali-wasif/ecommerce-api/models"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

// Mailer delivers transactional mail. Satisfied by utils.Mailer.
type Mailer interface {
	Send(to, subject, body string) error
}

// -------- Request Structs --------

type SignupRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Phone    string          `json:"phone"`
	Address  *models.Address `json:"address"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// -------- Helpers --------

func sendOTPMail(mailer Mailer, email, code string, purpose models.VerificationPurpose) {
	subject := "Verify your email"
	action := "complete your signup"
	if purpose == models.PurposeReset {
		subject = "Reset your password"
		action = "reset your password"
	}
	body := fmt.Sprintf("<p>Your verification code is <b>%s</b>.</p><p>Use it within 5 minutes to %s.</p>", code, action)

	// Mail delivery is best-effort; the OTP record is already persisted and
	// can be resent.
	if err := mailer.Send(email, subject, body); err != nil {
		utils.Zlog.Error("Failed to send OTP mail", zap.String("email", email), zap.Error(err))
	}
}

func createVerification(db *gorm.DB, cfg *config.Config, email string, purpose models.VerificationPurpose) (*models.EmailVerification, error) {
	// Replace any previous code for this email+purpose.
	if err := db.Where("email = ? AND purpose = ?", email, purpose).
		Delete(&models.EmailVerification{}).Error; err != nil {
		return nil, err
	}

	verification := models.EmailVerification{
		Email:     email,
		Code:      utils.GenerateOTP(),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(cfg.OTPTTL),
	}
	if err := db.Create(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

// checkOTP validates a submitted code against the stored record. On expiry or
// when the attempt cap is reached, the record is deleted and gone reports that
// the verification is irrecoverable.
func checkOTP(db *gorm.DB, cfg *config.Config, verification *models.EmailVerification, submitted string) (ok bool, gone bool, err error) {
	if time.Now().After(verification.ExpiresAt) {
		if err := db.Delete(verification).Error; err != nil {
			return false, false, err
		}
		return false, true, nil
	}

	if verification.Code != submitted {
		verification.Attempts++
		if verification.Attempts >= cfg.OTPMaxAttempts {
			if err := db.Delete(verification).Error; err != nil {
				return false, false, err
			}
			return false, true, nil
		}
		if err := db.Save(verification).Error; err != nil {
			return false, false, err
		}
		return false, false, nil
	}

	if err := db.Delete(verification).Error; err != nil {
		return false, false, err
	}
	return true, false, nil
}

// deletePendingSignup removes an unverified user after a failed verification.
func deletePendingSignup(db *gorm.DB, email string) {
	if err := db.Where("email = ? AND verified = ?", email, false).
		Delete(&models.User{}).Error; err != nil {
		utils.Zlog.Error("Failed to delete pending signup", zap.String("email", email), zap.Error(err))
	}
}

// -------- Handlers --------

// POST /auth/signup
func SignupHandler(db *gorm.DB, cfg *config.Config, mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			if existing.Verified {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			// A stale pending signup is replaced wholesale.
			if err := db.Select("Cart").Delete(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			Phone:        req.Phone,
		}
		if req.Address != nil {
			user.Address = *req.Address
		}

		var verification *models.EmailVerification
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			var err error
			verification, err = createVerification(tx, cfg, user.Email, models.PurposeSignup)
			return err
		})
		if txErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		sendOTPMail(mailer, user.Email, verification.Code, models.PurposeSignup)

		c.JSON(http.StatusCreated, gin.H{
			"message": "Signup successful, verify the OTP sent to your email",
			"email":   user.Email,
		})
	}
}

// POST /auth/verify-otp
func VerifyOTPHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var verification models.EmailVerification
		if err := db.Where("email = ? AND purpose = ?", req.Email, models.PurposeSignup).
			First(&verification).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending verification for this email"})
			return
		}

		ok, gone, err := checkOTP(db, cfg, &verification, req.OTP)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if gone {
			// Expiry or attempt cap: the pending account is deleted too and
			// the user must sign up again.
			deletePendingSignup(db, req.Email)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification expired, please sign up again"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":         "Incorrect OTP",
				"attempts_left": cfg.OTPMaxAttempts - verification.Attempts,
			})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := db.Model(&user).Update("verified", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
			return
		}
		user.Verified = true

		c.JSON(http.StatusOK, gin.H{
			"message": "Email verified",
			"user":    user,
			"token":   issueJWT(cfg.JwtSecret, cfg.JwtExpiry, &user),
		})
	}
}

// POST /auth/resend-otp
func ResendOTPHandler(db *gorm.DB, cfg *config.Config, mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ? AND verified = ?", req.Email, false).
			First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending signup for this email"})
			return
		}

		verification, err := createVerification(db, cfg, req.Email, models.PurposeSignup)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification"})
			return
		}
		sendOTPMail(mailer, req.Email, verification.Code, models.PurposeSignup)

		c.JSON(http.StatusOK, gin.H{"message": "OTP resent"})
	}
}

// POST /auth/login
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if !user.Verified {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   issueJWT(cfg.JwtSecret, cfg.JwtExpiry, &user),
		})
	}
}

// POST /auth/forgot-password
func ForgotPasswordHandler(db *gorm.DB, cfg *config.Config, mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ? AND verified = ?", req.Email, true).
			First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account for this email"})
			return
		}

		verification, err := createVerification(db, cfg, req.Email, models.PurposeReset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification"})
			return
		}
		sendOTPMail(mailer, req.Email, verification.Code, models.PurposeReset)

		c.JSON(http.StatusOK, gin.H{"message": "Reset code sent"})
	}
}

// POST /auth/reset-password
func ResetPasswordHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var verification models.EmailVerification
		if err := db.Where("email = ? AND purpose = ?", req.Email, models.PurposeReset).
			First(&verification).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending reset for this email"})
			return
		}

		ok, gone, err := checkOTP(db, cfg, &verification, req.OTP)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if gone {
			// Unlike signup, the account survives a failed reset.
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reset code expired, request a new one"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":         "Incorrect OTP",
				"attempts_left": cfg.OTPMaxAttempts - verification.Attempts,
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		if err := db.Model(&models.User{}).Where("email = ?", req.Email).
			Update("password_hash", string(hash)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
