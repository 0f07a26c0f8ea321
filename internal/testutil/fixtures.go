package testutil

import (
	"database/sql"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"luct-reporting/internal/models"
)

// Fixtures holds test data
type Fixtures struct {
	DB            *sql.DB
	Faculty       *models.Faculty
	Student       *models.User
	Lecturer      *models.User
	PrincipalLect *models.User
	ProgramLeader *models.User
	Course        *models.Course
	Class         *models.Class
}

// SetupFixtures creates a faculty, one user per role, a course owned by the
// program leader, and a class taught by the lecturer.
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()

	fixtures := &Fixtures{DB: db}

	fixtures.Faculty = CreateFaculty(t, db, "Faculty of Information Technology")

	fixtures.Student = CreateUser(t, db, "student1", "Student One", models.RoleStudent, &fixtures.Faculty.ID)
	fixtures.Lecturer = CreateUser(t, db, "lecturer1", "Lecturer One", models.RoleLecturer, &fixtures.Faculty.ID)
	fixtures.PrincipalLect = CreateUser(t, db, "prl1", "Principal One", models.RolePrincipalLecturer, &fixtures.Faculty.ID)
	fixtures.ProgramLeader = CreateUser(t, db, "pl1", "Leader One", models.RoleProgramLeader, &fixtures.Faculty.ID)

	fixtures.Course = CreateCourse(t, db, "Web Application Development", "DIWA2110", fixtures.Faculty.ID, fixtures.ProgramLeader.ID)
	fixtures.Class = CreateClass(t, db, "DIWA2110-A", fixtures.Course.ID, fixtures.Lecturer.ID)

	return fixtures
}

// CreateFaculty inserts a faculty row
func CreateFaculty(t *testing.T, db *sql.DB, name string) *models.Faculty {
	t.Helper()

	faculty := &models.Faculty{Name: name}
	err := db.QueryRow(
		"INSERT INTO faculty (faculty_name) VALUES ($1) RETURNING faculty_id",
		name,
	).Scan(&faculty.ID)
	if err != nil {
		t.Fatalf("Failed to create faculty %s: %v", name, err)
	}

	return faculty
}

// CreateUser inserts a user with the password "password123"
func CreateUser(t *testing.T, db *sql.DB, username, fullName string, role models.Role, facultyID *uint) *models.User {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:  username,
		FullName:  fullName,
		Email:     username + "@test.com",
		Role:      role,
		FacultyID: facultyID,
	}
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, full_name, email, role, faculty_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`, user.Username, string(hashedPassword), user.FullName, user.Email, string(user.Role), user.FacultyID).Scan(&user.ID)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}

	return user
}

// CreateCourse inserts a course row
func CreateCourse(t *testing.T, db *sql.DB, name, code string, facultyID, leaderID uint) *models.Course {
	t.Helper()

	course := &models.Course{
		Name:            name,
		Code:            code,
		FacultyID:       facultyID,
		ProgramLeaderID: &leaderID,
	}
	err := db.QueryRow(`
		INSERT INTO courses (course_name, course_code, faculty_id, program_leader_id)
		VALUES ($1, $2, $3, $4)
		RETURNING course_id
	`, course.Name, course.Code, course.FacultyID, course.ProgramLeaderID).Scan(&course.ID)
	if err != nil {
		t.Fatalf("Failed to create course %s: %v", code, err)
	}

	return course
}

// CreateClass inserts a class row
func CreateClass(t *testing.T, db *sql.DB, name string, courseID, lecturerID uint) *models.Class {
	t.Helper()

	scheduled := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	class := &models.Class{
		Name:          name,
		CourseID:      courseID,
		LecturerID:    lecturerID,
		Venue:         "Room 101",
		ScheduledTime: &scheduled,
	}
	err := db.QueryRow(`
		INSERT INTO classes (class_name, course_id, lecturer_id, venue, scheduled_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING class_id
	`, class.Name, class.CourseID, class.LecturerID, class.Venue, class.ScheduledTime).Scan(&class.ID)
	if err != nil {
		t.Fatalf("Failed to create class %s: %v", name, err)
	}

	return class
}

// EnrollStudent inserts an enrollment row and bumps the class counter
func EnrollStudent(t *testing.T, db *sql.DB, studentID, classID uint) {
	t.Helper()

	if _, err := db.Exec(
		"INSERT INTO student_enrollments (student_id, class_id) VALUES ($1, $2)",
		studentID, classID,
	); err != nil {
		t.Fatalf("Failed to enroll student %d in class %d: %v", studentID, classID, err)
	}
	if _, err := db.Exec(
		"UPDATE classes SET total_registered_students = total_registered_students + 1 WHERE class_id = $1",
		classID,
	); err != nil {
		t.Fatalf("Failed to bump enrollment counter for class %d: %v", classID, err)
	}
}
