package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

func (h *Handler) listNotices(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required."})
		return
	}

	notices, err := h.notices.ListFor(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	resp := make([]NoticeResponse, len(notices))
	for i := range notices {
		resp[i] = noticeToResponse(&notices[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createNotice(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required."})
		return
	}
	if user.Role != domain.RoleFaculty && user.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only faculty and admins can post notices."})
		return
	}

	var req createNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	notice, err := h.notices.Create(c.Request.Context(), user, req.Title, req.Body, domain.NoticeAudience(req.Audience))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, noticeToResponse(notice))
}

func (h *Handler) deleteNotice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.notices.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Notice not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notice deleted."})
}
