package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
	"campus-server/internal/service"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id."})
		return 0, false
	}
	return id, true
}

func (h *Handler) listStudents(c *gin.Context) {
	profiles, err := h.students.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	resp := make([]StudentResponse, len(profiles))
	for i := range profiles {
		resp[i] = studentToResponse(&profiles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Student not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, studentToResponse(profile))
}

func (h *Handler) addStudent(c *gin.Context) {
	var req addStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	user, profile, err := h.students.Add(c.Request.Context(), service.AddStudentInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		RollNo:     req.RollNo,
		Department: req.Department,
		Course:     req.Course,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":    userToResponse(user),
		"student": studentToResponse(profile),
	})
}

func (h *Handler) updateStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	profile, err := h.students.Update(c.Request.Context(), id, service.StudentPatch{
		Name:       req.Name,
		RollNo:     req.RollNo,
		Department: req.Department,
		Course:     req.Course,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Student not found."})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, studentToResponse(profile))
}

func (h *Handler) deleteStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Student not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted."})
}

func (h *Handler) listFaculty(c *gin.Context) {
	profiles, err := h.faculty.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	resp := make([]FacultyResponse, len(profiles))
	for i := range profiles {
		resp[i] = facultyToResponse(&profiles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getFaculty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.faculty.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Faculty not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, facultyToResponse(profile))
}

func (h *Handler) addFaculty(c *gin.Context) {
	var req addFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	var subjects []string
	if req.Subjects != nil {
		subjects = *req.Subjects
	}
	user, profile, err := h.faculty.Add(c.Request.Context(), service.AddFacultyInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		Subjects:   subjects,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":    userToResponse(user),
		"faculty": facultyToResponse(profile),
	})
}

func (h *Handler) updateFaculty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	profile, err := h.faculty.Update(c.Request.Context(), id, service.FacultyPatch{
		Name:       req.Name,
		EmployeeID: req.EmployeeID,
		Department: req.Department,
		Subjects:   req.Subjects.slicePtr(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Faculty not found."})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facultyToResponse(profile))
}

func (h *Handler) deleteFaculty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.faculty.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Faculty not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Faculty deleted."})
}

// updateMyProfile is the self-service path: the profile is resolved from
// the caller's identity, and only students and faculty may use it.
func (h *Handler) updateMyProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token required."})
		return
	}

	var req updateMyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "errors": []string{err.Error()}})
		return
	}

	switch user.Role {
	case domain.RoleStudent:
		profile, err := h.students.UpdateByUser(c.Request.Context(), user.ID, service.StudentPatch{
			Name:       req.Name,
			RollNo:     req.RollNo,
			Department: req.Department,
			Course:     req.Course,
		})
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Student profile not found."})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, studentToResponse(profile))
	case domain.RoleFaculty:
		profile, err := h.faculty.UpdateByUser(c.Request.Context(), user.ID, service.FacultyPatch{
			Name:       req.Name,
			EmployeeID: req.EmployeeID,
			Department: req.Department,
			Subjects:   req.Subjects.slicePtr(),
		})
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Faculty profile not found."})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, facultyToResponse(profile))
	default:
		c.JSON(http.StatusForbidden, gin.H{"message": "Only students and faculty can update profile here."})
	}
}
