package webserver

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/okonari/okonari-board/src/api/types"
)

const (
	maxNewsResults   = 200
	maxTitleLength   = 120
	maxContentLength = 3000
)

type News struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

func NewNews(db *gorm.DB) News {
	return News{db: db, sanitizer: bluemonday.StrictPolicy()}
}

func (h News) List(c *gin.Context) {
	news := make([]types.NewsPost, 0)
	if err := h.db.Order("created_at DESC").Limit(maxNewsResults).Find(&news).Error; err != nil {
		log.Printf("GET /api/news: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GET /api/news failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, news)
}

func (h News) Create(c *gin.Context) {
	var req struct {
		Category  string `json:"category"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		EventDate string `json:"eventDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := strings.ToUpper(strings.TrimSpace(req.Category))
	if category != types.NewsCategoryNotice && category != types.NewsCategoryEvent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is invalid"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("title must be <= %d chars", maxTitleLength)})
		return
	}
	// Announcements are rendered on the homepage; escape the title and
	// strip markup from the body.
	title = html.EscapeString(title)

	// The length cap applies to the submitted content; sanitizing first
	// would inflate it through entity escaping.
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("content must be <= %d chars", maxContentLength)})
		return
	}
	content = strings.TrimSpace(h.sanitizer.Sanitize(content))

	eventDate, ok := parseEventDate(req.EventDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventDate is invalid"})
		return
	}
	// An event date only means something for events.
	if category != types.NewsCategoryEvent {
		eventDate = nil
	}

	news := types.NewsPost{
		Category:  category,
		Title:     title,
		Content:   content,
		EventDate: eventDate,
	}
	if err := h.db.Create(&news).Error; err != nil {
		log.Printf("POST /api/news: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "POST /api/news failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, news)
}

func (h News) Delete(c *gin.Context) {
	id := c.Param("id")
	res := h.db.Delete(&types.NewsPost{}, "id = ?", id)
	if res.Error != nil {
		log.Printf("DELETE /api/news/%s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DELETE /api/news/:id failed", "detail": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DELETE /api/news/:id failed", "detail": "record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
