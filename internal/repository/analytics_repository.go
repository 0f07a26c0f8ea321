package repository

import (
	"database/sql"
	"fmt"
)

// DashboardTotals holds the aggregate counts shown on the dashboard.
type DashboardTotals struct {
	Users       int `json:"users"`
	Courses     int `json:"courses"`
	Classes     int `json:"classes"`
	Reports     int `json:"reports"`
	Enrollments int `json:"enrollments"`
}

// ClassAttendance is the average reported attendance for one class.
type ClassAttendance struct {
	ClassID           uint    `json:"class_id"`
	ClassName         string  `json:"class_name"`
	Reports           int     `json:"reports"`
	AverageAttendance float64 `json:"average_attendance"`
}

// LecturerActivity summarizes one lecturer's reporting activity.
type LecturerActivity struct {
	LecturerID   uint    `json:"lecturer_id"`
	LecturerName string  `json:"lecturer_name"`
	Reports      int     `json:"reports"`
	Feedback     int     `json:"feedback"`
	AvgPresent   float64 `json:"average_students_present"`
}

// CourseEnrollment summarizes enrollment across one course's classes.
type CourseEnrollment struct {
	CourseID   uint   `json:"course_id"`
	CourseName string `json:"course_name"`
	Classes    int    `json:"classes"`
	Students   int    `json:"students"`
}

// AnalyticsRepository computes aggregate statistics for the dashboard and
// monitoring endpoints.
type AnalyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Totals returns system-wide entity counts
func (r *AnalyticsRepository) Totals() (*DashboardTotals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM reports),
			(SELECT COUNT(*) FROM student_enrollments)
	`

	totals := &DashboardTotals{}
	err := r.db.QueryRow(query).Scan(
		&totals.Users,
		&totals.Courses,
		&totals.Classes,
		&totals.Reports,
		&totals.Enrollments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard totals: %w", err)
	}

	return totals, nil
}

// AttendanceForLecturer returns per-class average attendance for classes
// taught by the given lecturer, computed from submitted reports.
func (r *AnalyticsRepository) AttendanceForLecturer(lecturerID uint) ([]ClassAttendance, error) {
	query := `
		SELECT cl.class_id, cl.class_name, COUNT(rep.report_id),
			COALESCE(AVG(rep.actual_students_present), 0)
		FROM classes cl
		LEFT JOIN reports rep ON cl.class_id = rep.class_id
		WHERE cl.lecturer_id = $1
		GROUP BY cl.class_id, cl.class_name
		ORDER BY cl.class_id
	`
	return r.listAttendance(query, lecturerID)
}

// AttendanceForStudent returns per-class average attendance for classes the
// given student is enrolled in.
func (r *AnalyticsRepository) AttendanceForStudent(studentID uint) ([]ClassAttendance, error) {
	query := `
		SELECT cl.class_id, cl.class_name, COUNT(rep.report_id),
			COALESCE(AVG(rep.actual_students_present), 0)
		FROM classes cl
		INNER JOIN student_enrollments se ON cl.class_id = se.class_id AND se.student_id = $1
		LEFT JOIN reports rep ON cl.class_id = rep.class_id
		GROUP BY cl.class_id, cl.class_name
		ORDER BY cl.class_id
	`
	return r.listAttendance(query, studentID)
}

// LecturerActivitySummary returns report and feedback counts per lecturer
func (r *AnalyticsRepository) LecturerActivitySummary() ([]LecturerActivity, error) {
	query := `
		SELECT u.user_id, u.full_name, COUNT(rep.report_id), COUNT(f.feedback_id),
			COALESCE(AVG(rep.actual_students_present), 0)
		FROM users u
		LEFT JOIN reports rep ON u.user_id = rep.lecturer_id
		LEFT JOIN feedback f ON rep.report_id = f.report_id
		WHERE u.role = 'Lecturer'
		GROUP BY u.user_id, u.full_name
		ORDER BY u.user_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize lecturer activity: %w", err)
	}
	defer rows.Close()

	summary := []LecturerActivity{}
	for rows.Next() {
		var activity LecturerActivity
		if err := rows.Scan(
			&activity.LecturerID,
			&activity.LecturerName,
			&activity.Reports,
			&activity.Feedback,
			&activity.AvgPresent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lecturer activity: %w", err)
		}
		summary = append(summary, activity)
	}

	return summary, rows.Err()
}

// EnrollmentByCourse returns class and enrolled-student counts per course.
// When leaderID is non-zero the result is restricted to courses led by that
// program leader.
func (r *AnalyticsRepository) EnrollmentByCourse(leaderID uint) ([]CourseEnrollment, error) {
	query := `
		SELECT c.course_id, c.course_name, COUNT(DISTINCT cl.class_id), COUNT(se.enrollment_id)
		FROM courses c
		LEFT JOIN classes cl ON c.course_id = cl.course_id
		LEFT JOIN student_enrollments se ON cl.class_id = se.class_id
		WHERE $1 = 0 OR c.program_leader_id = $1
		GROUP BY c.course_id, c.course_name
		ORDER BY c.course_id
	`

	rows, err := r.db.Query(query, leaderID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize course enrollment: %w", err)
	}
	defer rows.Close()

	summary := []CourseEnrollment{}
	for rows.Next() {
		var course CourseEnrollment
		if err := rows.Scan(
			&course.CourseID,
			&course.CourseName,
			&course.Classes,
			&course.Students,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course enrollment: %w", err)
		}
		summary = append(summary, course)
	}

	return summary, rows.Err()
}

func (r *AnalyticsRepository) listAttendance(query string, args ...interface{}) ([]ClassAttendance, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute attendance: %w", err)
	}
	defer rows.Close()

	attendance := []ClassAttendance{}
	for rows.Next() {
		var class ClassAttendance
		if err := rows.Scan(
			&class.ClassID,
			&class.ClassName,
			&class.Reports,
			&class.AverageAttendance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendance = append(attendance, class)
	}

	return attendance, rows.Err()
}
