package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"luct-reporting/internal/auth"
	"luct-reporting/internal/config"
	"luct-reporting/internal/handlers"
	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
	"luct-reporting/internal/service"
	"luct-reporting/internal/testutil"
)

// newTestServer wires repositories, services, handlers, and the auth
// middleware over a real database the way cmd/api does.
func newTestServer(db *sql.DB, secret string) http.Handler {
	authService := auth.NewService(&config.JWTConfig{Secret: secret, Expiration: time.Hour})

	userRepo := repository.NewUserRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	classRepo := repository.NewClassRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	authSvc := service.NewAuthService(userRepo, facultyRepo, authService)
	courseSvc := service.NewCourseService(courseRepo, facultyRepo)
	classSvc := service.NewClassService(classRepo, courseRepo, userRepo)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classRepo)
	reportSvc := service.NewReportService(reportRepo, feedbackRepo, classRepo)
	ratingSvc := service.NewRatingService(ratingRepo, userRepo)
	gradeSvc := service.NewGradeService(gradeRepo, classRepo, enrollmentRepo)

	authMw := middleware.NewAuthMiddleware(authService)
	rbacMw := middleware.NewRBACMiddleware()

	authHandler := handlers.NewAuthHandler(authSvc)
	facultyHandler := handlers.NewFacultyHandler(facultyRepo)
	courseHandler := handlers.NewCourseHandler(courseSvc)
	classHandler := handlers.NewClassHandler(classSvc)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentSvc)
	reportHandler := handlers.NewReportHandler(reportSvc)
	ratingHandler := handlers.NewRatingHandler(ratingSvc)
	gradeHandler := handlers.NewGradeHandler(gradeSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/faculties", facultyHandler.List)
	mux.Handle("GET /api/auth/profile", authMw.Authenticate(http.HandlerFunc(authHandler.Profile)))
	mux.Handle("POST /api/courses",
		authMw.Authenticate(rbacMw.RequireRole(models.RoleProgramLeader)(http.HandlerFunc(courseHandler.Create))))
	mux.Handle("POST /api/classes",
		authMw.Authenticate(rbacMw.RequireRole(models.RoleProgramLeader, models.RolePrincipalLecturer)(http.HandlerFunc(classHandler.Create))))
	mux.Handle("GET /api/classes/available",
		authMw.Authenticate(rbacMw.RequireRole(models.RoleStudent)(http.HandlerFunc(classHandler.Available))))
	mux.Handle("POST /api/enrollments",
		authMw.Authenticate(rbacMw.RequireRole(models.RoleStudent)(http.HandlerFunc(enrollmentHandler.Enroll))))
	mux.Handle("GET /api/reports",
		authMw.Authenticate(rbacMw.RequireRole(models.RoleLecturer, models.RolePrincipalLecturer, models.RoleProgramLeader)(http.HandlerFunc(reportHandler.List))))
	mux.Handle("POST /api/reports",
		authMw.Authenticate(rbacMw.RequireRole(models.RoleLecturer)(http.HandlerFunc(reportHandler.Create))))
	mux.Handle("POST /api/reports/{id}/feedback",
		authMw.Authenticate(rbacMw.RequireRole(models.RolePrincipalLecturer)(http.HandlerFunc(reportHandler.Feedback))))
	mux.Handle("POST /api/ratings",
		authMw.Authenticate(http.HandlerFunc(ratingHandler.Create)))
	mux.Handle("POST /api/grades",
		authMw.Authenticate(rbacMw.RequireRole(models.RoleLecturer)(http.HandlerFunc(gradeHandler.Create))))

	return mux
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func registerAndLogin(t *testing.T, handler http.Handler, username, role string, facultyID uint) string {
	t.Helper()

	rec, resp := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":   username,
		"password":   "password123",
		"full_name":  "Test " + username,
		"email":      username + "@test.com",
		"role":       role,
		"faculty_id": facultyID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Registration of %s failed with status %d: %v", username, rec.Code, resp)
	}

	token, ok := resp["token"].(string)
	if !ok || token == "" {
		t.Fatalf("Registration of %s returned no token: %v", username, resp)
	}
	return token
}

// TestReportingFlow walks the whole workflow over HTTP: the program leader
// sets up a course and class, a student enrolls, the lecturer reports, the
// principal lecturer reviews, and the student rates the lecturer.
func TestReportingFlow(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	faculty := testutil.CreateFaculty(t, containers.DB, "Faculty of Information Technology")
	server := newTestServer(containers.DB, containers.JWTSecret)

	leaderToken := registerAndLogin(t, server, "leader", "Program Leader", faculty.ID)
	studentToken := registerAndLogin(t, server, "student", "Student", faculty.ID)
	lecturerToken := registerAndLogin(t, server, "lecturer", "Lecturer", faculty.ID)
	reviewerToken := registerAndLogin(t, server, "reviewer", "Principal Lecturer", faculty.ID)

	// Registering the same username again is refused with 409
	rec, _ := doJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":  "student",
		"password":  "password123",
		"full_name": "Copycat",
		"email":     "copycat@test.com",
		"role":      "Student",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("Duplicate registration: expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	// Program leader creates a course and a class
	var lecturerID uint
	if err := containers.DB.QueryRow(
		"SELECT user_id FROM users WHERE username = $1", "lecturer",
	).Scan(&lecturerID); err != nil {
		t.Fatalf("Failed to look up lecturer: %v", err)
	}

	rec, resp := doJSON(t, server, http.MethodPost, "/api/courses", leaderToken, map[string]any{
		"course_name": "Web Application Development",
		"course_code": "DIWA2110",
		"faculty_id":  faculty.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Course creation failed with status %d: %v", rec.Code, resp)
	}
	courseID := uint(resp["course"].(map[string]any)["course_id"].(float64))

	// A student cannot create a course
	rec, _ = doJSON(t, server, http.MethodPost, "/api/courses", studentToken, map[string]any{
		"course_name": "Hacking 101",
		"course_code": "HACK101",
		"faculty_id":  faculty.ID,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("Student course creation: expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	rec, resp = doJSON(t, server, http.MethodPost, "/api/classes", leaderToken, map[string]any{
		"class_name":  "DIWA2110-A",
		"course_id":   courseID,
		"lecturer_id": lecturerID,
		"venue":       "Room 101",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Class creation failed with status %d: %v", rec.Code, resp)
	}
	classID := uint(resp["class"].(map[string]any)["class_id"].(float64))

	// The class shows up as available, the student enrolls, and a second
	// enrollment attempt is refused
	rec, resp = doJSON(t, server, http.MethodGet, "/api/classes/available", studentToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Available classes failed with status %d: %v", rec.Code, resp)
	}
	if classes := resp["classes"].([]any); len(classes) != 1 {
		t.Errorf("Expected 1 available class, got %d", len(classes))
	}

	rec, _ = doJSON(t, server, http.MethodPost, "/api/enrollments", studentToken, map[string]any{"class_id": classID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Enrollment failed with status %d", rec.Code)
	}
	rec, _ = doJSON(t, server, http.MethodPost, "/api/enrollments", studentToken, map[string]any{"class_id": classID})
	if rec.Code != http.StatusConflict {
		t.Errorf("Double enrollment: expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	// Lecturer submits a report for the class
	rec, resp = doJSON(t, server, http.MethodPost, "/api/reports", lecturerToken, map[string]any{
		"class_id":                classID,
		"week_of_reporting":       "Week 3",
		"topic_taught":            "HTTP routing",
		"learning_outcomes":       "Students can wire method-based routes",
		"actual_students_present": 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Report submission failed with status %d: %v", rec.Code, resp)
	}
	reportID := uint(resp["report"].(map[string]any)["report_id"].(float64))

	// A student cannot list reports
	rec, _ = doJSON(t, server, http.MethodGet, "/api/reports", studentToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Student report listing: expected status %d, got %d", http.StatusForbidden, rec.Code)
	}

	// The principal lecturer reviews the report; a second review is refused
	feedbackPath := fmt.Sprintf("/api/reports/%d/feedback", reportID)
	rec, _ = doJSON(t, server, http.MethodPost, feedbackPath, reviewerToken, map[string]any{
		"comments": "Well structured report",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Feedback failed with status %d", rec.Code)
	}
	rec, _ = doJSON(t, server, http.MethodPost, feedbackPath, reviewerToken, map[string]any{
		"comments": "Second opinion",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("Second feedback: expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	// The student rates the lecturer
	rec, _ = doJSON(t, server, http.MethodPost, "/api/ratings", studentToken, map[string]any{
		"lecturer_id": lecturerID,
		"rating":      5,
		"comments":    "Clear lectures",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("Rating failed with status %d", rec.Code)
	}

	// The lecturer grades the enrolled student
	var studentID uint
	if err := containers.DB.QueryRow(
		"SELECT user_id FROM users WHERE username = $1", "student",
	).Scan(&studentID); err != nil {
		t.Fatalf("Failed to look up student: %v", err)
	}
	rec, _ = doJSON(t, server, http.MethodPost, "/api/grades", lecturerToken, map[string]any{
		"student_id": studentID,
		"class_id":   classID,
		"grade":      87.5,
		"grade_type": "exam",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("Grade submission failed with status %d", rec.Code)
	}

	// Requests without a token are refused
	rec, _ = doJSON(t, server, http.MethodGet, "/api/auth/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Profile without token: expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
