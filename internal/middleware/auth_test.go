package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"pasarumkm/internal/domain"
)

type stubUserUseCase struct {
	user *domain.User
	err  error
}

func (s *stubUserUseCase) RegisterUser(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUserUseCase) AuthenticateUser(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUserUseCase) Logout(ctx context.Context, token string) error { return nil }
func (s *stubUserUseCase) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	return s.user, s.err
}
func (s *stubUserUseCase) GetUserProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	return nil, errors.New("not implemented")
}
func (s *stubUserUseCase) UpdateProfile(ctx context.Context, id int64, name, phone string) (*domain.UserProfile, error) {
	return nil, errors.New("not implemented")
}

func authRouter(users domain.UserUseCase, mitraOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	router := gin.New()
	group := router.Group("/", AuthMiddleware(users, logger))
	if mitraOnly {
		group.Use(MitraOnly(logger))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64(ContextUserIDKey)})
	})
	return router
}

func request(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router := authRouter(&stubUserUseCase{user: &domain.User{ID: 42}}, false)

	rec := request(router, "Bearer some-session-uuid")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	router := authRouter(&stubUserUseCase{user: &domain.User{ID: 42}}, false)

	assert.Equal(t, http.StatusUnauthorized, request(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "some-session-uuid").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "Basic abc").Code)
}

func TestAuthMiddlewareRejectsUnknownToken(t *testing.T) {
	router := authRouter(&stubUserUseCase{err: errors.New("invalid session token")}, false)

	assert.Equal(t, http.StatusUnauthorized, request(router, "Bearer nope").Code)
}

func TestMitraOnly(t *testing.T) {
	customer := authRouter(&stubUserUseCase{user: &domain.User{ID: 42}}, true)
	assert.Equal(t, http.StatusForbidden, request(customer, "Bearer tok").Code)

	mitra := authRouter(&stubUserUseCase{user: &domain.User{ID: 42, IsMitra: true}}, true)
	assert.Equal(t, http.StatusOK, request(mitra, "Bearer tok").Code)
}
