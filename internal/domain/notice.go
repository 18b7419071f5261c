package domain

import "time"

// NoticeAudience restricts who sees a notice on the board.
type NoticeAudience string

const (
	NoticeAudienceAll      NoticeAudience = "all"
	NoticeAudienceStudents NoticeAudience = "students"
	NoticeAudienceFaculty  NoticeAudience = "faculty"
)

func (a NoticeAudience) Valid() bool {
	switch a {
	case NoticeAudienceAll, NoticeAudienceStudents, NoticeAudienceFaculty:
		return true
	}
	return false
}

// Notice is a board entry posted by faculty or admin accounts.
type Notice struct {
	ID        int64
	Title     string
	Body      string
	Audience  NoticeAudience
	PostedBy  int64
	CreatedAt time.Time

	// Poster carries the sanitized author record when loaded with a join.
	Poster *User
}
