package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-server/internal/domain"
	"campus-server/internal/service"
)

func (h *Handler) checkEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required."})
		return
	}

	exists, err := h.accounts.CheckEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	var subjects []string
	if req.Subjects != nil {
		subjects = *req.Subjects
	}
	result, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       domain.Role(req.Role),
		RollNo:     req.RollNo,
		Department: req.Department,
		Course:     req.Course,
		EmployeeID: req.EmployeeID,
		Subjects:   subjects,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   result.Token,
		"user":    userToResponse(result.User),
		"profile": profileToResponse(result.Profile),
		"message": "Registration successful.",
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required.", "errors": []string{err.Error()}})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			// deliberate: self-service login tells the caller the account
			// does not exist so the UI can offer registration
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Email not registered. Please register first.",
				"code":    "EMAIL_NOT_FOUND",
			})
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   result.Token,
		"user":    userToResponse(result.User),
		"profile": profileToResponse(result.Profile),
	})
}

func (h *Handler) adminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required.", "errors": []string{err.Error()}})
		return
	}

	result, err := h.accounts.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
		case errors.Is(err, service.ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. This portal is for administrators only."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   result.Token,
		"user":    userToResponse(result.User),
		"profile": profileToResponse(result.Profile),
	})
}

func (h *Handler) me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required."})
		return
	}

	profile, err := h.accounts.ProfileFor(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    userToResponse(user),
		"profile": profileToResponse(profile),
	})
}
