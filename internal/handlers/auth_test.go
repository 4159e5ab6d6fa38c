package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/config"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/service"
	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type stubProvider struct {
	Welcomes []string
}

func (p *stubProvider) SendOTPEmail(ctx context.Context, data service.OTPEmailData) error {
	return nil
}

func (p *stubProvider) SendWelcomeEmail(ctx context.Context, email, name string) error {
	p.Welcomes = append(p.Welcomes, email)
	return nil
}

func postJSON(t require.TestingT, r *gin.Engine, path string, body gin.H) (*httptest.ResponseRecorder, gin.H) {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp gin.H
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestRegisterLoginVerifyFlow(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("student account", func(mt *mtest.T) {
		gin.SetMode(gin.TestMode)
		config.AppConfig = &config.Config{
			JWT: config.JWTConfig{Secret: "test-jwt-secret", Expiry: "24h"},
		}
		defer func() { config.AppConfig = nil }()

		mailer := &stubMailer{}
		provider := &stubProvider{}
		store := service.NewMemoryOTPStore()
		engine := service.NewOTPEngine(store, mailer, 0)
		emailService := service.NewMultiProviderEmailService([]service.EmailProvider{provider})
		h := NewAuthHandler(mt.DB, emailService, engine, engine)

		r := gin.New()
		r.POST("/auth/register", h.Register)
		r.POST("/auth/login", h.Login)
		r.POST("/auth/verify-otp", h.VerifyOTP)

		// Register: no existing account, insert succeeds, code is mailed.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "csrippers.students", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)
		w, _ := postJSON(mt, r, "/auth/register", gin.H{
			"email":     "neo@college.edu",
			"password":  "matrix-has-you",
			"full_name": "Neo",
			"role":      "student",
		})
		require.Equal(mt, http.StatusCreated, w.Code)
		require.NotEmpty(mt, mailer.LastCode)

		// A wrong guess on the uncapped flow keeps the record alive.
		w, resp := postJSON(mt, r, "/auth/verify-otp", gin.H{
			"email":    "neo@college.edu",
			"otp_code": "000000",
			"role":     "student",
		})
		if mailer.LastCode != "000000" {
			assert.Equal(mt, http.StatusUnauthorized, w.Code)
			assert.Equal(mt, "Invalid OTP code", resp["error"])
		}

		// Login overwrites the pending code with a fresh one.
		now := time.Now().UTC().Truncate(time.Millisecond)
		userDoc := bson.D{
			{Key: "_id", Value: "user-1"},
			{Key: "email", Value: "neo@college.edu"},
			{Key: "password", Value: "matrix-has-you"},
			{Key: "full_name", Value: "Neo"},
			{Key: "status", Value: "pending_verification"},
			{Key: "created_at", Value: now},
			{Key: "updated_at", Value: now},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "csrippers.students", mtest.FirstBatch, userDoc),
		)
		w, _ = postJSON(mt, r, "/auth/login", gin.H{
			"email":    "neo@college.edu",
			"password": "matrix-has-you",
			"role":     "student",
		})
		require.Equal(mt, http.StatusOK, w.Code)
		require.NotEmpty(mt, mailer.LastCode)

		// Verify with the mailed code: the account goes active, a session
		// token comes back, and the first verification sends the welcome
		// email.
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: userDoc}),
		)
		w, resp = postJSON(mt, r, "/auth/verify-otp", gin.H{
			"email":    "neo@college.edu",
			"otp_code": mailer.LastCode,
			"role":     "student",
		})
		require.Equal(mt, http.StatusOK, w.Code)

		token, _ := resp["token"].(string)
		require.NotEmpty(mt, token)
		claims, err := utils.ValidateJWT(token)
		require.NoError(mt, err)
		assert.Equal(mt, "neo@college.edu", claims.Email)
		assert.Equal(mt, "student", claims.Role)

		assert.Equal(mt, []string{"neo@college.edu"}, provider.Welcomes)

		// The matched code is consumed: nothing is left for the subject.
		rec, err := store.Get(context.Background(), "neo@college.edu")
		require.NoError(mt, err)
		assert.Nil(mt, rec)
	})

	mt.Run("register refuses a taken email", func(mt *mtest.T) {
		gin.SetMode(gin.TestMode)

		mailer := &stubMailer{}
		engine := service.NewOTPEngine(service.NewMemoryOTPStore(), mailer, 0)
		emailService := service.NewMultiProviderEmailService([]service.EmailProvider{&stubProvider{}})
		h := NewAuthHandler(mt.DB, emailService, engine, engine)

		r := gin.New()
		r.POST("/auth/register", h.Register)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "csrippers.students", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "user-1"},
				{Key: "email", Value: "neo@college.edu"},
			}),
		)
		w, resp := postJSON(mt, r, "/auth/register", gin.H{
			"email":     "neo@college.edu",
			"password":  "matrix-has-you",
			"full_name": "Neo",
			"role":      "student",
		})
		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Equal(mt, "User already exists", resp["error"])
		assert.Empty(mt, mailer.LastCode)
	})

	mt.Run("login rejects a wrong password", func(mt *mtest.T) {
		gin.SetMode(gin.TestMode)

		mailer := &stubMailer{}
		engine := service.NewOTPEngine(service.NewMemoryOTPStore(), mailer, 0)
		emailService := service.NewMultiProviderEmailService([]service.EmailProvider{&stubProvider{}})
		h := NewAuthHandler(mt.DB, emailService, engine, engine)

		r := gin.New()
		r.POST("/auth/login", h.Login)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "csrippers.students", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "user-1"},
				{Key: "email", Value: "neo@college.edu"},
				{Key: "password", Value: "matrix-has-you"},
			}),
		)
		w, resp := postJSON(mt, r, "/auth/login", gin.H{
			"email":    "neo@college.edu",
			"password": "wrong",
			"role":     "student",
		})
		assert.Equal(mt, http.StatusUnauthorized, w.Code)
		assert.Equal(mt, "Invalid credentials", resp["error"])
		assert.Empty(mt, mailer.LastCode)
	})
}
