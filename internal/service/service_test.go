package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luct-reporting/internal/apperr"
	"luct-reporting/internal/auth"
	"luct-reporting/internal/config"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
	"luct-reporting/internal/service"
	"luct-reporting/internal/testutil"
)

func newAuthService(secret string) *auth.Service {
	return auth.NewService(&config.JWTConfig{Secret: secret, Expiration: time.Hour})
}

func claimsFor(user *models.User) *auth.Claims {
	return &auth.Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		FacultyID: user.FacultyID,
	}
}

func TestRegistrationAndLogin(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)
	fixtures := testutil.SetupFixtures(t, containers.DB)

	userRepo := repository.NewUserRepository(containers.DB)
	facultyRepo := repository.NewFacultyRepository(containers.DB)
	authSvc := service.NewAuthService(userRepo, facultyRepo, newAuthService(containers.JWTSecret))

	user := &models.User{
		Username:  "newstudent",
		FullName:  "New Student",
		Email:     "newstudent@test.com",
		Role:      models.RoleStudent,
		FacultyID: &fixtures.Faculty.ID,
	}
	token, err := authSvc.Register(user, "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)

	// A second registration with the same username creates no row
	dup := &models.User{
		Username: "newstudent",
		FullName: "Impostor",
		Email:    "other@test.com",
		Role:     models.RoleStudent,
	}
	_, err = authSvc.Register(dup, "password123")
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	var count int
	require.NoError(t, containers.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE username = $1", "newstudent",
	).Scan(&count))
	assert.Equal(t, 1, count)

	// Unknown role is rejected before touching the database
	bad := &models.User{Username: "x", FullName: "X", Email: "x@test.com", Role: "Dean"}
	_, err = authSvc.Register(bad, "password123")
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Login round trip
	loggedIn, token, err := authSvc.Login("newstudent", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	// Wrong password and unknown username fail the same way
	_, _, err = authSvc.Login("newstudent", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	assert.Equal(t, "invalid credentials", apperr.MessageOf(err))

	_, _, err = authSvc.Login("nobody", "password123")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	assert.Equal(t, "invalid credentials", apperr.MessageOf(err))
}

func TestEnrollmentLifecycle(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)
	fixtures := testutil.SetupFixtures(t, containers.DB)

	enrollmentRepo := repository.NewEnrollmentRepository(containers.DB)
	classRepo := repository.NewClassRepository(containers.DB)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classRepo)

	student := claimsFor(fixtures.Student)

	enrollment, err := enrollmentSvc.Enroll(student, fixtures.Class.ID)
	require.NoError(t, err)
	assert.NotZero(t, enrollment.ID)

	// Enrolling twice fails and leaves the counter untouched
	_, err = enrollmentSvc.Enroll(student, fixtures.Class.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Equal(t, "already enrolled in this class", apperr.MessageOf(err))

	class, err := classRepo.GetByID(fixtures.Class.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, class.RegisteredStudents)

	// Unknown class
	_, err = enrollmentSvc.Enroll(student, 9999)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// The enrolled class now shows up for the student and is gone from
	// the available list
	classSvc := service.NewClassService(classRepo, repository.NewCourseRepository(containers.DB), repository.NewUserRepository(containers.DB))
	mine, err := classSvc.List(student)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, fixtures.Class.ID, mine[0].ID)

	available, err := classSvc.Available(student)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestReportLifecycle(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)
	fixtures := testutil.SetupFixtures(t, containers.DB)

	reportRepo := repository.NewReportRepository(containers.DB)
	feedbackRepo := repository.NewFeedbackRepository(containers.DB)
	classRepo := repository.NewClassRepository(containers.DB)
	reportSvc := service.NewReportService(reportRepo, feedbackRepo, classRepo)

	testutil.EnrollStudent(t, containers.DB, fixtures.Student.ID, fixtures.Class.ID)

	lecturer := claimsFor(fixtures.Lecturer)
	reviewer := claimsFor(fixtures.PrincipalLect)

	lectureDate := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	report := &models.Report{
		ClassID:               fixtures.Class.ID,
		WeekOfReporting:       "Week 3",
		DateOfLecture:         &lectureDate,
		TopicTaught:           "HTTP routing",
		LearningOutcomes:      "Students can wire method-based routes",
		Recommendations:       "More lab time",
		ActualStudentsPresent: 1,
	}
	require.NoError(t, reportSvc.Submit(lecturer, report))
	assert.NotZero(t, report.ID)

	// A lecturer not assigned to the class cannot report on it
	other := testutil.CreateUser(t, containers.DB, "lecturer2", "Lecturer Two", models.RoleLecturer, &fixtures.Faculty.ID)
	err := reportSvc.Submit(claimsFor(other), &models.Report{
		ClassID:               fixtures.Class.ID,
		WeekOfReporting:       "Week 3",
		TopicTaught:           "Intrusion",
		ActualStudentsPresent: 1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Attendance above the enrollment counter is rejected
	err = reportSvc.Submit(lecturer, &models.Report{
		ClassID:               fixtures.Class.ID,
		WeekOfReporting:       "Week 4",
		TopicTaught:           "Overflow",
		ActualStudentsPresent: 50,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Lecturers see only their own reports
	otherClass := testutil.CreateClass(t, containers.DB, "DIWA2110-B", fixtures.Course.ID, other.ID)
	require.NoError(t, reportSvc.Submit(claimsFor(other), &models.Report{
		ClassID:         otherClass.ID,
		WeekOfReporting: "Week 3",
		TopicTaught:     "Templates",
	}))

	mine, err := reportSvc.List(lecturer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, report.ID, mine[0].ID)

	all, err := reportSvc.List(reviewer)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Feedback attaches once and only once
	feedback, err := reportSvc.AttachFeedback(reviewer, report.ID, "Well structured report")
	require.NoError(t, err)
	assert.NotZero(t, feedback.ID)

	_, err = reportSvc.AttachFeedback(reviewer, report.ID, "Second opinion")
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Equal(t, "report already has feedback", apperr.MessageOf(err))

	_, err = reportSvc.AttachFeedback(reviewer, 9999, "Ghost report")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// Deleting the report removes its feedback with it
	require.NoError(t, reportSvc.Delete(report.ID))

	var count int
	require.NoError(t, containers.DB.QueryRow(
		"SELECT COUNT(*) FROM feedback WHERE report_id = $1", report.ID,
	).Scan(&count))
	assert.Zero(t, count)

	err = reportSvc.Delete(report.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRatings(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)
	fixtures := testutil.SetupFixtures(t, containers.DB)

	ratingRepo := repository.NewRatingRepository(containers.DB)
	userRepo := repository.NewUserRepository(containers.DB)
	ratingSvc := service.NewRatingService(ratingRepo, userRepo)

	student := claimsFor(fixtures.Student)
	lecturer := claimsFor(fixtures.Lecturer)

	// Out-of-range scores are rejected
	err := ratingSvc.Submit(student, &models.Rating{LecturerID: fixtures.Lecturer.ID, Rating: 6})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Only lecturers can be rated
	err = ratingSvc.Submit(student, &models.Rating{LecturerID: fixtures.ProgramLeader.ID, Rating: 3})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Lecturers cannot rate themselves
	err = ratingSvc.Submit(lecturer, &models.Rating{LecturerID: fixtures.Lecturer.ID, Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Re-rating replaces the earlier score instead of adding a row
	require.NoError(t, ratingSvc.Submit(student, &models.Rating{
		LecturerID: fixtures.Lecturer.ID,
		Rating:     4,
		Comments:   "Clear lectures",
	}))
	require.NoError(t, ratingSvc.Submit(student, &models.Rating{
		LecturerID: fixtures.Lecturer.ID,
		Rating:     2,
		Comments:   "Changed my mind",
	}))

	var count, score int
	require.NoError(t, containers.DB.QueryRow(
		"SELECT COUNT(*), MAX(rating) FROM ratings WHERE lecturer_id = $1 AND user_id = $2",
		fixtures.Lecturer.ID, fixtures.Student.ID,
	).Scan(&count, &score))
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, score)

	// Students see their own submissions, lecturers their received ratings
	byStudent, err := ratingSvc.List(student)
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, 2, byStudent[0].Rating)

	received, err := ratingSvc.List(lecturer)
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestGrades(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)
	fixtures := testutil.SetupFixtures(t, containers.DB)

	gradeRepo := repository.NewGradeRepository(containers.DB)
	classRepo := repository.NewClassRepository(containers.DB)
	enrollmentRepo := repository.NewEnrollmentRepository(containers.DB)
	gradeSvc := service.NewGradeService(gradeRepo, classRepo, enrollmentRepo)

	lecturer := claimsFor(fixtures.Lecturer)
	student := claimsFor(fixtures.Student)

	// Grading a student who is not enrolled fails
	err := gradeSvc.Submit(lecturer, &models.Grade{
		StudentID: fixtures.Student.ID,
		ClassID:   fixtures.Class.ID,
		Grade:     75,
		GradeType: models.GradeExam,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.Equal(t, "student is not enrolled in this class", apperr.MessageOf(err))

	testutil.EnrollStudent(t, containers.DB, fixtures.Student.ID, fixtures.Class.ID)

	// Score range and grade type are checked
	err = gradeSvc.Submit(lecturer, &models.Grade{
		StudentID: fixtures.Student.ID,
		ClassID:   fixtures.Class.ID,
		Grade:     101,
		GradeType: models.GradeExam,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	err = gradeSvc.Submit(lecturer, &models.Grade{
		StudentID: fixtures.Student.ID,
		ClassID:   fixtures.Class.ID,
		Grade:     75,
		GradeType: "vibes",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	// Only the assigned lecturer can grade the class
	other := testutil.CreateUser(t, containers.DB, "lecturer2", "Lecturer Two", models.RoleLecturer, &fixtures.Faculty.ID)
	err = gradeSvc.Submit(claimsFor(other), &models.Grade{
		StudentID: fixtures.Student.ID,
		ClassID:   fixtures.Class.ID,
		Grade:     75,
		GradeType: models.GradeExam,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	grade := &models.Grade{
		StudentID:   fixtures.Student.ID,
		ClassID:     fixtures.Class.ID,
		Grade:       87.5,
		GradeType:   models.GradeExam,
		Description: "Midterm",
	}
	require.NoError(t, gradeSvc.Submit(lecturer, grade))
	assert.NotZero(t, grade.ID)

	// Students see their own grades, lecturers the grades they issued
	forStudent, err := gradeSvc.List(student)
	require.NoError(t, err)
	require.Len(t, forStudent, 1)
	assert.InDelta(t, 87.5, forStudent[0].Grade, 0.001)

	forLecturer, err := gradeSvc.List(lecturer)
	require.NoError(t, err)
	assert.Len(t, forLecturer, 1)
}

func TestLecturerSchedule(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)
	fixtures := testutil.SetupFixtures(t, containers.DB)

	classRepo := repository.NewClassRepository(containers.DB)
	classSvc := service.NewClassService(classRepo, repository.NewCourseRepository(containers.DB), repository.NewUserRepository(containers.DB))

	// A lecturer in a different faculty
	otherFaculty := testutil.CreateFaculty(t, containers.DB, "Faculty of Business")
	otherLecturer := testutil.CreateUser(t, containers.DB, "lecturer2", "Lecturer Two", models.RoleLecturer, &otherFaculty.ID)

	// Lecturers see their own schedule but nobody else's
	lecturer := claimsFor(fixtures.Lecturer)
	schedule, err := classSvc.Schedule(lecturer, fixtures.Lecturer.ID)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	assert.Equal(t, fixtures.Class.ID, schedule[0].ID)

	_, err = classSvc.Schedule(lecturer, otherLecturer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Leaders and reviewers only reach lecturers within their own faculty
	leader := claimsFor(fixtures.ProgramLeader)
	schedule, err = classSvc.Schedule(leader, fixtures.Lecturer.ID)
	require.NoError(t, err)
	assert.Len(t, schedule, 1)

	_, err = classSvc.Schedule(leader, otherLecturer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	assert.Equal(t, "lecturer is outside your faculty", apperr.MessageOf(err))

	_, err = classSvc.Schedule(claimsFor(fixtures.PrincipalLect), otherLecturer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// A leader without a faculty of their own reaches nobody
	floating := testutil.CreateUser(t, containers.DB, "pl2", "Leader Two", models.RoleProgramLeader, nil)
	_, err = classSvc.Schedule(claimsFor(floating), fixtures.Lecturer.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Targets that are not lecturers do not resolve
	_, err = classSvc.Schedule(leader, fixtures.Student.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
