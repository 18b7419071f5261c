package http

import (
	"bytes"
	"encoding/json"
)

// stringList accepts either a JSON array of strings or a single bare
// string, normalizing both to a list. Explicit null becomes an empty list.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = []string{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if list == nil {
			list = []string{}
		}
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*s = []string{single}
	return nil
}

// slicePtr preserves the present/absent distinction for partial updates.
func (s *stringList) slicePtr() *[]string {
	if s == nil {
		return nil
	}
	v := []string(*s)
	if v == nil {
		v = []string{}
	}
	return &v
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	RollNo     string `json:"rollNo"`
	Department string `json:"department"`
	Course     string `json:"course"`

	EmployeeID string      `json:"employeeId"`
	Subjects   *stringList `json:"subjects"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type addStudentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RollNo     string `json:"rollNo"`
	Department string `json:"department"`
	Course     string `json:"course"`
}

type updateStudentRequest struct {
	Name       *string `json:"name"`
	RollNo     *string `json:"rollNo"`
	Department *string `json:"department"`
	Course     *string `json:"course"`
}

type addFacultyRequest struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	EmployeeID string      `json:"employeeId"`
	Department string      `json:"department"`
	Subjects   *stringList `json:"subjects"`
}

type updateFacultyRequest struct {
	Name       *string     `json:"name"`
	EmployeeID *string     `json:"employeeId"`
	Department *string     `json:"department"`
	Subjects   *stringList `json:"subjects"`
}

type addAdminRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	EmployeeID string `json:"employeeId"`
	Position   string `json:"position"`
	Department string `json:"department"`
}

type updateAdminRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	EmployeeID *string `json:"employeeId"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
}

type updateMyProfileRequest struct {
	Name       *string     `json:"name"`
	RollNo     *string     `json:"rollNo"`
	Department *string     `json:"department"`
	Course     *string     `json:"course"`
	EmployeeID *string     `json:"employeeId"`
	Subjects   *stringList `json:"subjects"`
}

type createNoticeRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience"`
}
