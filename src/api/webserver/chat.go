package webserver

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/okonari/okonari-board/src/api/data"
	"github.com/okonari/okonari-board/src/api/types"
)

const (
	defaultChatTake  = 80
	maxChatTake      = 100
	maxNameLength    = 30
	maxMessageLength = 500
)

type Chat struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewChat(db *gorm.DB, rdb *redis.Client) Chat {
	return Chat{db: db, rdb: rdb}
}

// List handles GET /api/chat/messages. The newest `take` messages are
// fetched and returned oldest-first so the client appends in reading order.
func (h Chat) List(c *gin.Context) {
	take := defaultChatTake
	if s := strings.TrimSpace(c.Query("take")); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			take = n
			if take < 1 {
				take = 1
			}
			if take > maxChatTake {
				take = maxChatTake
			}
		}
	}

	msgs := make([]types.ChatMessage, 0)
	if err := h.db.Order("created_at DESC").Limit(take).Find(&msgs).Error; err != nil {
		log.Printf("GET /api/chat/messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GET /api/chat/messages failed", "detail": err.Error()})
		return
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	c.JSON(http.StatusOK, msgs)
}

func (h Chat) Create(c *gin.Context) {
	var req struct {
		DisplayName string `json:"displayName"`
		Message     string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "表示名は必須です"})
		return
	}
	if utf8.RuneCountInString(displayName) > maxNameLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("表示名は%d文字以内で入力してください", maxNameLength)})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "メッセージは必須です"})
		return
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("メッセージは%d文字以内で入力してください", maxMessageLength)})
		return
	}

	msg := types.ChatMessage{DisplayName: displayName, Message: message}
	if err := h.db.Create(&msg).Error; err != nil {
		log.Printf("POST /api/chat/messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "POST /api/chat/messages failed", "detail": err.Error()})
		return
	}

	// Mirror to the chat stream when Redis is configured.
	if h.rdb != nil {
		if err := data.PublishChatMessage(c.Request.Context(), h.rdb, msg); err != nil {
			log.Printf("chat stream publish: %v", err)
		}
	}

	c.JSON(http.StatusCreated, msg)
}
