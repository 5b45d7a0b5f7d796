package webserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/okonari/okonari-board/src/api/types"
)

type Posts struct {
	db *gorm.DB
}

func NewPosts(db *gorm.DB) Posts {
	return Posts{db: db}
}

type postInput struct {
	Age      interface{} `json:"age"`
	Gender   string      `json:"gender"`
	Places   interface{} `json:"places"`
	Place    interface{} `json:"place"`
	Actions  interface{} `json:"actions"`
	Action   interface{} `json:"action"`
	Solution string      `json:"solution"`
}

// bindPost validates a create/update payload and writes the 400 response
// itself when the input is rejected.
func (h Posts) bindPost(c *gin.Context) (types.Post, bool) {
	var req postInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return types.Post{}, false
	}

	age, ok := parseAge(req.Age)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age が不正です"})
		return types.Post{}, false
	}

	gender := strings.TrimSpace(req.Gender)
	if gender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender は必須です"})
		return types.Post{}, false
	}

	places := normalizeList(req.Places, req.Place)
	if len(places) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "places は1つ以上必要です"})
		return types.Post{}, false
	}

	actions := normalizeList(req.Actions, req.Action)
	if len(actions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actions は1つ以上必要です"})
		return types.Post{}, false
	}

	solution := strings.TrimSpace(req.Solution)
	if solution == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solution は必須です"})
		return types.Post{}, false
	}

	return types.Post{
		Age:      age,
		Gender:   gender,
		Places:   places,
		Actions:  actions,
		Solution: solution,
	}, true
}

// Search handles GET /api/posts. Every query parameter is optional; with
// none present this is the plain newest-first listing.
func (h Posts) Search(c *gin.Context) {
	f := ParsePostFilter(c.Request.URL.Query())

	q := h.db.Model(&types.Post{})
	for _, cond := range f.Conditions() {
		q = q.Where(cond.Expr, cond.Args...)
	}

	posts := make([]types.Post, 0)
	if err := q.Order("created_at DESC").Limit(maxSearchResults).Find(&posts).Error; err != nil {
		log.Printf("GET /api/posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GET /api/posts failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h Posts) Create(c *gin.Context) {
	post, ok := h.bindPost(c)
	if !ok {
		return
	}

	if err := h.db.Create(&post).Error; err != nil {
		log.Printf("POST /api/posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "POST /api/posts failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h Posts) Get(c *gin.Context) {
	var post types.Post
	err := h.db.First(&post, "id = ?", c.Param("id")).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		log.Printf("GET /api/posts/%s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GET /api/posts/:id failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// Update replaces age/gender/places/actions/solution in full. A missing
// record surfaces as a store error, not a 404.
func (h Posts) Update(c *gin.Context) {
	post, ok := h.bindPost(c)
	if !ok {
		return
	}

	id := c.Param("id")

	// RowsAffected cannot stand in for existence here: MySQL reports
	// changed rows, so resubmitting an identical payload would look like a
	// missing record.
	var existing types.Post
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		log.Printf("PUT /api/posts/%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PUT /api/posts/:id failed", "detail": err.Error()})
		return
	}

	res := h.db.Model(&types.Post{}).Where("id = ?", id).
		Select("age", "gender", "places", "actions", "solution").
		Updates(post)
	if res.Error != nil {
		log.Printf("PUT /api/posts/%s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PUT /api/posts/:id failed", "detail": res.Error.Error()})
		return
	}

	var updated types.Post
	if err := h.db.First(&updated, "id = ?", id).Error; err != nil {
		log.Printf("PUT /api/posts/%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PUT /api/posts/:id failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h Posts) Delete(c *gin.Context) {
	id := c.Param("id")
	res := h.db.Delete(&types.Post{}, "id = ?", id)
	if res.Error != nil {
		log.Printf("DELETE /api/posts/%s: %v", id, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DELETE /api/posts/:id failed", "detail": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DELETE /api/posts/:id failed", "detail": "record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ExportCSV handles GET /api/posts/csv, serving the admin download.
func (h Posts) ExportCSV(c *gin.Context) {
	var posts []types.Post
	if err := h.db.Order("created_at DESC").Limit(csvExportLimit).Find(&posts).Error; err != nil {
		log.Printf("GET /api/posts/csv: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GET /api/posts/csv failed", "detail": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="posts.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(renderPostsCSV(posts)))
}
