package models

import (
	"time"
)

// Role is the closed set of user roles in the reporting system.
type Role string

const (
	RoleStudent           Role = "Student"
	RoleLecturer          Role = "Lecturer"
	RolePrincipalLecturer Role = "Principal Lecturer"
	RoleProgramLeader     Role = "Program Leader"
)

// AllRoles lists every valid role, in registration-form order.
var AllRoles = []Role{RoleStudent, RoleLecturer, RolePrincipalLecturer, RoleProgramLeader}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsReviewer reports whether the role reviews work across lecturers.
// Principal Lecturers and Program Leaders see unfiltered result sets.
func (r Role) IsReviewer() bool {
	return r == RolePrincipalLecturer || r == RoleProgramLeader
}

// GradeType is the closed set of grade categories.
type GradeType string

const (
	GradeAssignment    GradeType = "assignment"
	GradeExam          GradeType = "exam"
	GradeQuiz          GradeType = "quiz"
	GradeProject       GradeType = "project"
	GradeParticipation GradeType = "participation"
	GradeHomework      GradeType = "homework"
)

// Valid reports whether t is one of the known grade types.
func (t GradeType) Valid() bool {
	switch t {
	case GradeAssignment, GradeExam, GradeQuiz, GradeProject, GradeParticipation, GradeHomework:
		return true
	}
	return false
}

// Faculty represents a faculty that users and courses belong to.
type Faculty struct {
	ID   uint   `json:"faculty_id" db:"faculty_id"`
	Name string `json:"faculty_name" db:"faculty_name"`
}

// User represents an account in any of the four roles.
type User struct {
	ID           uint   `json:"user_id" db:"user_id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	FullName     string `json:"full_name" db:"full_name"`
	Email        string `json:"email" db:"email"`
	Role         Role   `json:"role" db:"role"`
	FacultyID    *uint  `json:"faculty_id,omitempty" db:"faculty_id"`
}

// Course is created and led by a Program Leader.
type Course struct {
	ID              uint    `json:"course_id" db:"course_id"`
	Name            string  `json:"course_name" db:"course_name"`
	Code            string  `json:"course_code" db:"course_code"`
	FacultyID       uint    `json:"faculty_id" db:"faculty_id"`
	FacultyName     *string `json:"faculty_name,omitempty" db:"faculty_name"`
	ProgramLeaderID *uint   `json:"program_leader_id,omitempty" db:"program_leader_id"`
}

// Class is a scheduled teaching unit of a course, taught by one lecturer.
type Class struct {
	ID                 uint       `json:"class_id" db:"class_id"`
	Name               string     `json:"class_name" db:"class_name"`
	CourseID           uint       `json:"course_id" db:"course_id"`
	CourseName         *string    `json:"course_name,omitempty" db:"course_name"`
	LecturerID         uint       `json:"lecturer_id" db:"lecturer_id"`
	LecturerName       *string    `json:"lecturer_name,omitempty" db:"lecturer_name"`
	Venue              string     `json:"venue" db:"venue"`
	ScheduledTime      *time.Time `json:"scheduled_time,omitempty" db:"scheduled_time"`
	RegisteredStudents int        `json:"total_registered_students" db:"total_registered_students"`
}

// Enrollment links a student to a class; unique per (student, class) pair.
type Enrollment struct {
	ID             uint      `json:"enrollment_id" db:"enrollment_id"`
	StudentID      uint      `json:"student_id" db:"student_id"`
	StudentName    *string   `json:"student_name,omitempty" db:"student_name"`
	ClassID        uint      `json:"class_id" db:"class_id"`
	ClassName      *string   `json:"class_name,omitempty" db:"class_name"`
	EnrollmentDate time.Time `json:"enrollment_date" db:"enrollment_date"`
}

// Report is a weekly lecture report submitted by the teaching lecturer.
type Report struct {
	ID                    uint       `json:"report_id" db:"report_id"`
	ClassID               uint       `json:"class_id" db:"class_id"`
	ClassName             *string    `json:"class_name,omitempty" db:"class_name"`
	CourseName            *string    `json:"course_name,omitempty" db:"course_name"`
	CourseCode            *string    `json:"course_code,omitempty" db:"course_code"`
	LecturerID            uint       `json:"lecturer_id" db:"lecturer_id"`
	LecturerName          *string    `json:"lecturer_name,omitempty" db:"lecturer_name"`
	WeekOfReporting       string     `json:"week_of_reporting" db:"week_of_reporting"`
	DateOfLecture         *time.Time `json:"date_of_lecture,omitempty" db:"date_of_lecture"`
	TopicTaught           string     `json:"topic_taught" db:"topic_taught"`
	LearningOutcomes      string     `json:"learning_outcomes" db:"learning_outcomes"`
	Recommendations       string     `json:"recommendations" db:"recommendations"`
	ActualStudentsPresent int        `json:"actual_students_present" db:"actual_students_present"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`

	// Populated by the feedback LEFT JOIN on list queries.
	FeedbackID       *uint   `json:"feedback_id,omitempty" db:"feedback_id"`
	FeedbackComments *string `json:"feedback_comments,omitempty" db:"feedback_comments"`
}

// Feedback is a principal lecturer's review of a report, at most one per report.
type Feedback struct {
	ID         uint   `json:"feedback_id" db:"feedback_id"`
	ReportID   uint   `json:"report_id" db:"report_id"`
	ReviewerID uint   `json:"reviewer_id" db:"reviewer_id"`
	Comments   string `json:"comments" db:"comments"`
}

// Rating is a user's 1-5 rating of a lecturer. One row per (rater, lecturer);
// a repeat submission updates the existing row in place.
type Rating struct {
	ID           uint      `json:"rating_id" db:"rating_id"`
	LecturerID   uint      `json:"lecturer_id" db:"lecturer_id"`
	LecturerName *string   `json:"lecturer_name,omitempty" db:"lecturer_name"`
	UserID       uint      `json:"user_id" db:"user_id"`
	RaterName    *string   `json:"rater_name,omitempty" db:"rater_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comments     string    `json:"comments" db:"comments"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Grade is a score a lecturer records for a student enrolled in their class.
type Grade struct {
	ID          uint      `json:"grade_id" db:"grade_id"`
	StudentID   uint      `json:"student_id" db:"student_id"`
	StudentName *string   `json:"student_name,omitempty" db:"student_name"`
	ClassID     uint      `json:"class_id" db:"class_id"`
	ClassName   *string   `json:"class_name,omitempty" db:"class_name"`
	LecturerID  uint      `json:"lecturer_id" db:"lecturer_id"`
	Grade       float64   `json:"grade" db:"grade"`
	GradeType   GradeType `json:"grade_type" db:"grade_type"`
	Description string    `json:"description" db:"description"`
	DateGiven   time.Time `json:"date_given" db:"date_given"`
}
