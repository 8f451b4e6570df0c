package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	"github.com/zarib-ali-wasif/ecommerce-api/models"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := utils.InitLogger("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeMailer struct {
	sent []string // recipient addresses
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.EmailVerification{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JwtSecret:      "test-secret",
		JwtExpiry:      time.Hour,
		OTPTTL:         5 * time.Minute,
		OTPMaxAttempts: 3,
	}
}

func newAuthRouter(db *gorm.DB, cfg *config.Config, mailer Mailer) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", SignupHandler(db, cfg, mailer))
	r.POST("/auth/verify-otp", VerifyOTPHandler(db, cfg))
	r.POST("/auth/resend-otp", ResendOTPHandler(db, cfg, mailer))
	r.POST("/auth/login", LoginHandler(db, cfg))
	r.POST("/auth/forgot-password", ForgotPasswordHandler(db, cfg, mailer))
	r.POST("/auth/reset-password", ResetPasswordHandler(db, cfg))
	return r
}

func postJSON(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func storedCode(t *testing.T, db *gorm.DB, email string, purpose models.VerificationPurpose) string {
	t.Helper()
	var v models.EmailVerification
	require.NoError(t, db.Where("email = ? AND purpose = ?", email, purpose).First(&v).Error)
	return v.Code
}

func TestSignupCreatesPendingUserAndSendsOTP(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	r := newAuthRouter(db, testConfig(), mailer)

	w := postJSON(r, "/auth/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.False(t, user.Verified)
	assert.Equal(t, models.RoleUser, user.Role)

	assert.Equal(t, []string{"ada@example.com"}, mailer.sent)
	assert.NotEmpty(t, storedCode(t, db, "ada@example.com", models.PurposeSignup))
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	r := newAuthRouter(db, testConfig(), mailer)

	require.NoError(t, db.Create(&models.User{
		ID: uuid.NewString(), Email: "ada@example.com", Verified: true,
	}).Error)

	w := postJSON(r, "/auth/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerifyOTPSuccess(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	r := newAuthRouter(db, cfg, &fakeMailer{})

	postJSON(r, "/auth/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2hunter2",
	})
	code := storedCode(t, db, "ada@example.com", models.PurposeSignup)

	w := postJSON(r, "/auth/verify-otp", gin.H{"email": "ada@example.com", "otp": code})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.True(t, user.Verified)

	// The OTP record is consumed.
	var count int64
	db.Model(&models.EmailVerification{}).Where("email = ?", "ada@example.com").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestVerifyOTPAttemptCapDeletesPendingUser(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db, testConfig(), &fakeMailer{})

	postJSON(r, "/auth/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2hunter2",
	})

	// Two wrong attempts are rejected but recoverable.
	for i := 0; i < 2; i++ {
		w := postJSON(r, "/auth/verify-otp", gin.H{"email": "ada@example.com", "otp": "000001"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// The third strike deletes the OTP record and the pending account.
	w := postJSON(r, "/auth/verify-otp", gin.H{"email": "ada@example.com", "otp": "000001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var users, codes int64
	db.Model(&models.User{}).Where("email = ?", "ada@example.com").Count(&users)
	db.Model(&models.EmailVerification{}).Where("email = ?", "ada@example.com").Count(&codes)
	assert.Equal(t, int64(0), users)
	assert.Equal(t, int64(0), codes)
}

func TestVerifyOTPExpiredDeletesPendingUser(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db, testConfig(), &fakeMailer{})

	postJSON(r, "/auth/signup", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2hunter2",
	})
	code := storedCode(t, db, "ada@example.com", models.PurposeSignup)

	// Age the record past its validity window.
	require.NoError(t, db.Model(&models.EmailVerification{}).
		Where("email = ?", "ada@example.com").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	w := postJSON(r, "/auth/verify-otp", gin.H{"email": "ada@example.com", "otp": code})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var users int64
	db.Model(&models.User{}).Where("email = ?", "ada@example.com").Count(&users)
	assert.Equal(t, int64(0), users)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db, testConfig(), &fakeMailer{})

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		ID: uuid.NewString(), Email: "ada@example.com",
		PasswordHash: string(hash), Role: models.RoleUser, Verified: true,
	}).Error)

	w := postJSON(r, "/auth/login", gin.H{"email": "ada@example.com", "password": "hunter2hunter2"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/auth/login", gin.H{"email": "ada@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", gin.H{"email": "ghost@example.com", "password": "hunter2hunter2"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnverifiedForbidden(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db, testConfig(), &fakeMailer{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, db.Create(&models.User{
		ID: uuid.NewString(), Email: "ada@example.com",
		PasswordHash: string(hash), Role: models.RoleUser, Verified: false,
	}).Error)

	w := postJSON(r, "/auth/login", gin.H{"email": "ada@example.com", "password": "hunter2hunter2"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	r := newAuthRouter(db, testConfig(), mailer)

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password-1"), bcrypt.MinCost)
	require.NoError(t, db.Create(&models.User{
		ID: uuid.NewString(), Email: "ada@example.com",
		PasswordHash: string(hash), Role: models.RoleUser, Verified: true,
	}).Error)

	w := postJSON(r, "/auth/forgot-password", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	code := storedCode(t, db, "ada@example.com", models.PurposeReset)

	w = postJSON(r, "/auth/reset-password", gin.H{
		"email": "ada@example.com", "otp": code, "new_password": "new-password-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does.
	w = postJSON(r, "/auth/login", gin.H{"email": "ada@example.com", "password": "old-password-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = postJSON(r, "/auth/login", gin.H{"email": "ada@example.com", "password": "new-password-1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetAttemptCapKeepsAccount(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db, testConfig(), &fakeMailer{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password-1"), bcrypt.MinCost)
	require.NoError(t, db.Create(&models.User{
		ID: uuid.NewString(), Email: "ada@example.com",
		PasswordHash: string(hash), Role: models.RoleUser, Verified: true,
	}).Error)

	postJSON(r, "/auth/forgot-password", gin.H{"email": "ada@example.com"})

	for i := 0; i < 3; i++ {
		postJSON(r, "/auth/reset-password", gin.H{
			"email": "ada@example.com", "otp": "000001", "new_password": "new-password-1",
		})
	}

	// The reset record is gone but the account survives.
	var users, codes int64
	db.Model(&models.User{}).Where("email = ?", "ada@example.com").Count(&users)
	db.Model(&models.EmailVerification{}).Where("email = ?", "ada@example.com").Count(&codes)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(0), codes)
}
