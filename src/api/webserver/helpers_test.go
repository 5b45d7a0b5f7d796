package webserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/okonari/okonari-board/src/api/config"
	"github.com/okonari/okonari-board/src/api/types"
)

func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&types.Post{}, &types.NewsPost{}, &types.ChatMessage{}))

	r := gin.New()
	attachRoutes(r, config.Config{CORSOrigins: []string{"http://localhost:3000"}}, db, nil)
	return r, db
}

func doRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func seedPost(t *testing.T, db *gorm.DB, createdAt time.Time, age int, gender string, places, actions []string, solution string) types.Post {
	t.Helper()
	post := types.Post{
		CreatedAt: createdAt,
		Age:       age,
		Gender:    gender,
		Places:    places,
		Actions:   actions,
		Solution:  solution,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}
