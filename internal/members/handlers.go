package members

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kyri56xcaesar/teamdash/internal/listview"
	"kyri56xcaesar/teamdash/internal/schema"
	"kyri56xcaesar/teamdash/internal/store"
	"kyri56xcaesar/teamdash/pkg/messages"
)

type Handler struct {
	svc  *Service
	msgs *messages.Catalog
	lang string
}

func NewHandler(svc *Service, msgs *messages.Catalog, defaultLang string) *Handler {
	return &Handler{svc: svc, msgs: msgs, lang: defaultLang}
}

func (h *Handler) language(c *gin.Context) string {
	if lang := c.GetHeader("Accept-Language"); lang != "" {
		return lang
	}

	return h.lang
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	q := listview.Query{
		Search: c.Query("search"),
		Filters: []listview.Filter{
			{Field: "role", Value: c.Query("role")},
			{Field: "status", Value: c.Query("status")},
		},
		Page:     page,
		PageSize: pageSize,
	}

	view, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		log.Printf("failed to list members: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": view.Rows,
		"total": view.TotalMatched,
		"pages": view.PageCount,
		"page":  page,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing/invalid id"})

		return
	}

	m, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})

		return
	}
	if err != nil {
		log.Printf("failed to retrieve the member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *Handler) Create(c *gin.Context) {
	var cand schema.Member
	if err := c.ShouldBindJSON(&cand); err != nil {
		log.Printf("failed to bind input: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}

	m, fieldErrs, err := h.svc.Create(c.Request.Context(), cand)
	if err != nil {
		log.Printf("failed to create the member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": h.msgs.Fill(h.language(c), fieldErrs)})

		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing/invalid id"})

		return
	}

	var cand schema.Member
	if err := c.ShouldBindJSON(&cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})

		return
	}

	m, fieldErrs, err := h.svc.Update(c.Request.Context(), id, cand)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})

		return
	}
	if err != nil {
		log.Printf("failed to update the member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": h.msgs.Fill(h.language(c), fieldErrs)})

		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing/invalid id"})

		return
	}

	// deletes are final; the client must confirm explicitly
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})

		return
	}

	err = h.svc.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})

		return
	}
	if err != nil {
		log.Printf("failed to delete the member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
