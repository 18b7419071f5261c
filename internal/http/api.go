package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-server/internal/auth"
	"campus-server/internal/domain"
	"campus-server/internal/service"
	"campus-server/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts service.AuthService
	students service.StudentService
	faculty  service.FacultyService
	admins   service.AdminService
	notices  service.NoticeService
	tokens   *auth.TokenIssuer

	storage   storage.Service
	bucket    string
	keyPrefix string
}

func NewHandler(
	accounts service.AuthService,
	students service.StudentService,
	faculty service.FacultyService,
	admins service.AdminService,
	notices service.NoticeService,
	tokens *auth.TokenIssuer,
	store storage.Service,
	bucket, keyPrefix string,
) *Handler {
	return &Handler{
		accounts:  accounts,
		students:  students,
		faculty:   faculty,
		admins:    admins,
		notices:   notices,
		tokens:    tokens,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": true})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.GET("/check-email", h.checkEmail)
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.GET("/me", h.authRequired(), h.me)
		}

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login", h.adminLogin)

			restricted := adminGroup.Group("", h.authRequired(), h.requireRole(domain.RoleAdmin))
			restricted.GET("/me", h.me)
			restricted.GET("/admins", h.listAdmins)
			restricted.POST("/admins", h.addAdmin)
			restricted.PATCH("/admins/:id", h.updateAdmin)
			restricted.DELETE("/admins/:id", h.deleteAdmin)
		}

		users := api.Group("/users", h.authRequired())
		{
			users.GET("/students", h.listStudents)
			users.GET("/students/:id", h.getStudent)
			users.POST("/students", h.requireRole(domain.RoleAdmin), h.addStudent)
			users.PATCH("/students/:id", h.requireRole(domain.RoleAdmin), h.updateStudent)
			users.DELETE("/students/:id", h.requireRole(domain.RoleAdmin), h.deleteStudent)

			users.GET("/faculty", h.listFaculty)
			users.GET("/faculty/:id", h.getFaculty)
			users.POST("/faculty", h.requireRole(domain.RoleAdmin), h.addFaculty)
			users.PATCH("/faculty/:id", h.requireRole(domain.RoleAdmin), h.updateFaculty)
			users.DELETE("/faculty/:id", h.requireRole(domain.RoleAdmin), h.deleteFaculty)

			users.PATCH("/me/profile", h.updateMyProfile)
		}

		notices := api.Group("/notices", h.authRequired())
		{
			notices.GET("", h.listNotices)
			notices.POST("", h.createNotice)
			notices.DELETE("/:id", h.requireRole(domain.RoleAdmin), h.deleteNotice)
		}

		files := api.Group("/files", h.authRequired())
		{
			files.POST("", h.uploadFile)
			files.GET("", h.listFiles)
			files.GET("/url", h.fileURL)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// respondError maps the shared failure taxonomy to a status code.
// Handlers deal with their resource-specific not-found messages before
// falling through to this.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered."})
	case errors.Is(err, service.ErrSelfDelete):
		c.JSON(http.StatusForbidden, gin.H{"message": "You cannot delete your own account."})
	case errors.Is(err, service.ErrLastAdmin):
		c.JSON(http.StatusForbidden, gin.H{"message": "Cannot delete the last admin. At least one admin must remain."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

type UserResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt string      `json:"createdAt"`
}

type StudentResponse struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userId"`
	RollNo     string        `json:"rollNo"`
	Department string        `json:"department"`
	Course     string        `json:"course"`
	CreatedAt  string        `json:"createdAt"`
	UpdatedAt  string        `json:"updatedAt"`
	User       *UserResponse `json:"user,omitempty"`
}

type FacultyResponse struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userId"`
	EmployeeID string        `json:"employeeId"`
	Department string        `json:"department"`
	Subjects   []string      `json:"subjects"`
	CreatedAt  string        `json:"createdAt"`
	UpdatedAt  string        `json:"updatedAt"`
	User       *UserResponse `json:"user,omitempty"`
}

type AdminResponse struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userId"`
	EmployeeID string        `json:"employeeId"`
	Position   string        `json:"position"`
	Department string        `json:"department"`
	CreatedAt  string        `json:"createdAt"`
	UpdatedAt  string        `json:"updatedAt"`
	User       *UserResponse `json:"user,omitempty"`
}

type NoticeResponse struct {
	ID        int64                 `json:"id"`
	Title     string                `json:"title"`
	Body      string                `json:"body"`
	Audience  domain.NoticeAudience `json:"audience"`
	PostedBy  int64                 `json:"postedBy"`
	CreatedAt string                `json:"createdAt"`
	Poster    *UserResponse         `json:"poster,omitempty"`
}

func userToResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func studentToResponse(profile *domain.StudentProfile) StudentResponse {
	return StudentResponse{
		ID:         profile.ID,
		UserID:     profile.UserID,
		RollNo:     profile.RollNo,
		Department: profile.Department,
		Course:     profile.Course,
		CreatedAt:  profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  profile.UpdatedAt.Format(time.RFC3339),
		User:       userToResponse(profile.User),
	}
}

func facultyToResponse(profile *domain.FacultyProfile) FacultyResponse {
	subjects := profile.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return FacultyResponse{
		ID:         profile.ID,
		UserID:     profile.UserID,
		EmployeeID: profile.EmployeeID,
		Department: profile.Department,
		Subjects:   subjects,
		CreatedAt:  profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  profile.UpdatedAt.Format(time.RFC3339),
		User:       userToResponse(profile.User),
	}
}

func adminToResponse(profile *domain.AdminProfile) AdminResponse {
	return AdminResponse{
		ID:         profile.ID,
		UserID:     profile.UserID,
		EmployeeID: profile.EmployeeID,
		Position:   profile.Position,
		Department: profile.Department,
		CreatedAt:  profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  profile.UpdatedAt.Format(time.RFC3339),
		User:       userToResponse(profile.User),
	}
}

func noticeToResponse(notice *domain.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        notice.ID,
		Title:     notice.Title,
		Body:      notice.Body,
		Audience:  notice.Audience,
		PostedBy:  notice.PostedBy,
		CreatedAt: notice.CreatedAt.Format(time.RFC3339),
		Poster:    userToResponse(notice.Poster),
	}
}

func profileToResponse(profile domain.Profile) any {
	switch p := profile.(type) {
	case *domain.StudentProfile:
		return studentToResponse(p)
	case *domain.FacultyProfile:
		return facultyToResponse(p)
	case *domain.AdminProfile:
		return adminToResponse(p)
	}
	return nil
}
