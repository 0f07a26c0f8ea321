package models

import "testing"

func TestRoleValid(t *testing.T) {
	for _, role := range AllRoles {
		if !role.Valid() {
			t.Errorf("Role %q should be valid", role)
		}
	}

	for _, role := range []Role{"", "Dean", "student", "PROGRAM LEADER"} {
		if role.Valid() {
			t.Errorf("Role %q should not be valid", role)
		}
	}
}

func TestRoleIsReviewer(t *testing.T) {
	if RoleStudent.IsReviewer() || RoleLecturer.IsReviewer() {
		t.Error("Students and lecturers are not reviewers")
	}
	if !RolePrincipalLecturer.IsReviewer() || !RoleProgramLeader.IsReviewer() {
		t.Error("Principal lecturers and program leaders are reviewers")
	}
}

func TestGradeTypeValid(t *testing.T) {
	for _, gt := range []GradeType{GradeAssignment, GradeExam, GradeQuiz, GradeProject, GradeParticipation, GradeHomework} {
		if !gt.Valid() {
			t.Errorf("GradeType %q should be valid", gt)
		}
	}

	if GradeType("vibes").Valid() {
		t.Error(`GradeType "vibes" should not be valid`)
	}
}
