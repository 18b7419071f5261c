package domain

import "time"

// Profile is the role-specific record owned 1:1 by a User. The concrete
// type is keyed by the owner's role.
type Profile interface {
	Role() Role
}

// StudentProfile holds the fields specific to student accounts.
type StudentProfile struct {
	ID         int64
	UserID     int64
	RollNo     string
	Department string
	Course     string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// User carries the sanitized owner record when loaded with a join.
	User *User
}

func (*StudentProfile) Role() Role { return RoleStudent }

// FacultyProfile holds the fields specific to faculty accounts.
// Subjects is an ordered list and may be empty.
type FacultyProfile struct {
	ID         int64
	UserID     int64
	EmployeeID string
	Department string
	Subjects   []string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *User
}

func (*FacultyProfile) Role() Role { return RoleFaculty }

// AdminProfile holds the fields specific to administrator accounts. At
// least one admin profile must exist in the system at all times.
type AdminProfile struct {
	ID         int64
	UserID     int64
	EmployeeID string
	Position   string
	Department string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User *User
}

func (*AdminProfile) Role() Role { return RoleAdmin }
