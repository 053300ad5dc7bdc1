package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/internal/auth"
	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
	"github.com/vinverse/gamerlink/internal/service"
)

const testSecret = "test-secret"

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Notification{}))

	followRepo := repository.NewFollowRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifier := service.NewNotifier(repository.NewNotificationRepository(db), nil)
	relSvc := service.NewRelationshipService(followRepo, userRepo, nil, notifier)

	h := &Handler{relSvc: relSvc}
	r := gin.New()
	r.POST("/api/v1/follow/:user_id", middleware.Auth(testSecret), h.Follow)
	r.DELETE("/api/v1/follow/:user_id", middleware.Auth(testSecret), h.Unfollow)
	r.GET("/api/v1/connections/:user_id", middleware.OptionalAuth(testSecret), h.Connections)
	return r, db
}

func apiUser(t *testing.T, db *gorm.DB, username string) (*model.User, string) {
	t.Helper()
	repo := repository.NewUserRepository(db)
	u := &model.User{Username: username, Email: username + "@example.com", Password: "p"}
	require.NoError(t, repo.Create(context.Background(), u))
	token, err := auth.GenerateToken(testSecret, u.ID, username, time.Hour)
	require.NoError(t, err)
	return u, token
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFollowEndpointStatusCodes(t *testing.T) {
	r, db := setupAPI(t)
	_, token := apiUser(t, db, "alice")
	bob, _ := apiUser(t, db, "bob")

	// 首次 201，重放 200
	w := doRequest(r, http.MethodPost, "/api/v1/follow/"+bob.ID, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/follow/"+bob.ID, token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Created bool `json:"created"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Data.Created)
}

func TestFollowEndpointErrors(t *testing.T) {
	r, db := setupAPI(t)
	alice, token := apiUser(t, db, "alice")

	// 自关注 400
	w := doRequest(r, http.MethodPost, "/api/v1/follow/"+alice.ID, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 目标不存在 404
	w = doRequest(r, http.MethodPost, "/api/v1/follow/nope", token)
	require.Equal(t, http.StatusNotFound, w.Code)

	// 未认证 401
	w = doRequest(r, http.MethodPost, "/api/v1/follow/"+alice.ID, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnfollowEndpoint(t *testing.T) {
	r, db := setupAPI(t)
	_, token := apiUser(t, db, "alice")
	bob, _ := apiUser(t, db, "bob")

	doRequest(r, http.MethodPost, "/api/v1/follow/"+bob.ID, token)

	w := doRequest(r, http.MethodDelete, "/api/v1/follow/"+bob.ID, token)
	require.Equal(t, http.StatusOK, w.Code)

	// 边已删除，再取关 404
	w = doRequest(r, http.MethodDelete, "/api/v1/follow/"+bob.ID, token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestConnectionsEndpointAnonymous(t *testing.T) {
	r, db := setupAPI(t)
	_, token := apiUser(t, db, "alice")
	bob, _ := apiUser(t, db, "bob")

	doRequest(r, http.MethodPost, "/api/v1/follow/"+bob.ID, token)

	// 匿名读公开
	w := doRequest(r, http.MethodGet, "/api/v1/connections/"+bob.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			FollowersCount int64 `json:"followers_count"`
			IsFollowing    bool  `json:"is_following"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.EqualValues(t, 1, body.Data.FollowersCount)
	require.False(t, body.Data.IsFollowing)

	// 关注者视角 is_following = true
	w = doRequest(r, http.MethodGet, "/api/v1/connections/"+bob.ID, token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Data.IsFollowing)
}
