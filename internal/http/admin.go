package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-server/internal/repository"
	"campus-server/internal/service"
)

func (h *Handler) listAdmins(c *gin.Context) {
	profiles, err := h.admins.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	resp := make([]AdminResponse, len(profiles))
	for i := range profiles {
		resp[i] = adminToResponse(&profiles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) addAdmin(c *gin.Context) {
	var req addAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	user, profile, err := h.admins.Add(c.Request.Context(), service.AddAdminInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		EmployeeID: req.EmployeeID,
		Position:   req.Position,
		Department: req.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":    userToResponse(user),
		"profile": adminToResponse(profile),
		"message": "Admin added.",
	})
}

func (h *Handler) updateAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	user, profile, err := h.admins.Update(c.Request.Context(), id, service.AdminPatch{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		EmployeeID: req.EmployeeID,
		Position:   req.Position,
		Department: req.Department,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found."})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    userToResponse(user),
		"profile": adminToResponse(profile),
		"message": "Admin updated.",
	})
}

func (h *Handler) deleteAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admins.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found."})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted."})
}
