package webserver

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/okonari/okonari-board/src/api/types"
)

func seedChatMessages(t *testing.T, db *gorm.DB, n int, base time.Time) []types.ChatMessage {
	t.Helper()
	msgs := make([]types.ChatMessage, 0, n)
	for i := 0; i < n; i++ {
		m := types.ChatMessage{
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
			DisplayName: "member",
			Message:     fmt.Sprintf("message %d", i),
		}
		require.NoError(t, db.Create(&m).Error)
		msgs = append(msgs, m)
	}
	return msgs
}

func TestCreateChatMessage(t *testing.T) {
	r, db := newTestEnv(t)

	w := doRequest(t, r, http.MethodPost, "/api/chat/messages", map[string]interface{}{
		"displayName": " はなこ ",
		"message":     " こんにちは！ ",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.ChatMessage
	decodeBody(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "はなこ", created.DisplayName)
	assert.Equal(t, "こんにちは！", created.Message)

	var count int64
	require.NoError(t, db.Model(&types.ChatMessage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateChatMessage_validation(t *testing.T) {
	r, db := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"displayName": "  ", "message": "hi"}},
		{"oversized name", map[string]interface{}{"displayName": strings.Repeat("あ", 31), "message": "hi"}},
		{"missing message", map[string]interface{}{"displayName": "はなこ", "message": ""}},
		{"oversized message", map[string]interface{}{"displayName": "はなこ", "message": strings.Repeat("あ", 501)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/chat/messages", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	require.NoError(t, db.Model(&types.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count, "rejected messages must not be stored")
}

func TestListChatMessages_windowOldestFirst(t *testing.T) {
	r, db := newTestEnv(t)
	msgs := seedChatMessages(t, db, 5, time.Now().Add(-time.Minute))

	w := doRequest(t, r, http.MethodGet, "/api/chat/messages?take=3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []types.ChatMessage
	decodeBody(t, w, &got)
	require.Len(t, got, 3)

	// Newest three, returned in reading order.
	assert.Equal(t, msgs[2].ID, got[0].ID)
	assert.Equal(t, msgs[3].ID, got[1].ID)
	assert.Equal(t, msgs[4].ID, got[2].ID)
}

func TestListChatMessages_takeClamp(t *testing.T) {
	r, db := newTestEnv(t)
	seedChatMessages(t, db, 3, time.Now().Add(-time.Minute))

	for _, take := range []string{"0", "-5"} {
		w := doRequest(t, r, http.MethodGet, "/api/chat/messages?take="+take, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got []types.ChatMessage
		decodeBody(t, w, &got)
		assert.Len(t, got, 1, "take=%s clamps to 1", take)
	}

	// Unparseable take falls back to the default window.
	w := doRequest(t, r, http.MethodGet, "/api/chat/messages?take=many", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []types.ChatMessage
	decodeBody(t, w, &got)
	assert.Len(t, got, 3)
}
