package handlers

import (
	"fmt"
	"net/http"
	"time"

	"inkwell/internal/services"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts *services.PostService
	cache *utils.Cache
}

func NewPostHandler(posts *services.PostService, cache *utils.Cache) *PostHandler {
	return &PostHandler{posts: posts, cache: cache}
}

type createPostRequest struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// updatePostRequest uses pointers so an absent field is distinguishable
// from an explicitly empty one.
type updatePostRequest struct {
	AuthorIDs *[]int64  `json:"authorIds"`
	Tags      *[]string `json:"tags"`
	Text      *string   `json:"text"`
}

func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	post, err := h.posts.Create(req.Text, req.Tags, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) List(c *gin.Context) {
	authorIDs, ok := c.GetQuery("authorIds")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Must specify at least 1 author Id as a positive integer."})
		return
	}

	posts, err := h.posts.FindAndSort(authorIDs, c.Query("sortBy"), c.Query("direction"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) Detail(c *gin.Context) {
	postID, err := utils.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, store.ErrNotFound)
		return
	}

	post, err := h.posts.Get(postID)
	if err != nil {
		respondError(c, err)
		return
	}

	cacheKey := renderCacheKey(postID)
	html, _ := h.cache.Get(cacheKey).(string)
	if html == "" {
		html = utils.RenderMarkdown(post.Text)
		h.cache.Set(cacheKey, html, 10*time.Minute)
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "html": html})
}

func (h *PostHandler) Update(c *gin.Context) {
	user := currentUser(c)

	postID, err := utils.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, store.ErrNotFound)
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	post, err := h.posts.ApplyPatch(postID, user.ID, services.PostPatch{
		AuthorIDs: req.AuthorIDs,
		Tags:      req.Tags,
		Text:      req.Text,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Rendered body may be stale now.
	h.cache.Remove(renderCacheKey(postID))

	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) Like(c *gin.Context) {
	postID, err := utils.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, store.ErrNotFound)
		return
	}
	likes, err := h.posts.Like(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *PostHandler) MarkRead(c *gin.Context) {
	postID, err := utils.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, store.ErrNotFound)
		return
	}
	reads, err := h.posts.MarkRead(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reads": reads})
}

func renderCacheKey(postID uint) string {
	return fmt.Sprintf("post:html:%d", postID)
}
