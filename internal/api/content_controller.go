package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yaara40/academic-department-website-sub000/internal/service"
)

// ContentController exposes admin-editable page copy over HTTP.
type ContentController struct {
	contents service.ContentService
}

// NewContentController creates a content controller.
func NewContentController(contents service.ContentService) *ContentController {
	return &ContentController{contents: contents}
}

// Get returns one content blob by key.
func (cc *ContentController) Get(c *gin.Context) {
	content := cc.contents.Get(c.Request.Context(), c.Param("key"))
	if content == nil {
		Error(c, http.StatusNotFound, "content not found")
		return
	}

	Success(c, gin.H{
		"key":       content.Key,
		"data":      json.RawMessage(content.Data),
		"updatedAt": content.UpdatedAt,
	})
}

// Keys lists the stored content keys (admin only).
func (cc *ContentController) Keys(c *gin.Context) {
	Success(c, cc.contents.Keys(c.Request.Context()))
}

// Save stores a content blob (admin only). The body is the blob itself.
func (cc *ContentController) Save(c *gin.Context) {
	var data json.RawMessage
	if err := c.ShouldBindJSON(&data); err != nil {
		Error(c, http.StatusBadRequest, "body must be valid JSON", err.Error())
		return
	}

	res := cc.contents.Save(c.Request.Context(), c.Param("key"), data)
	if !res.Success {
		Error(c, statusForResult(res.Errors), "failed to save content", res.Errors...)
		return
	}
	Success(c, res)
}

// Delete removes a content blob (admin only).
func (cc *ContentController) Delete(c *gin.Context) {
	res := cc.contents.Delete(c.Request.Context(), c.Param("key"))
	if !res.Success {
		Error(c, statusForResult(res.Errors), "failed to delete content", res.Errors...)
		return
	}
	Success(c, res)
}
