package service

import (
	"errors"
	"testing"

	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/util"
)

func TestRegisterIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.student.Register("STU-42", "Student 42")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if first.Existing {
		t.Fatal("first registration must not be marked existing")
	}

	second, err := env.student.Register("STU-42", "renamed")
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if !second.Existing || second.ID != first.ID {
		t.Fatalf("expected the same id back, got %+v", second)
	}

	var students, entries int64
	env.db.Model(&model.Student{}).Count(&students)
	env.db.Model(&model.ScoreboardEntry{}).Count(&entries)
	if students != 1 || entries != 1 {
		t.Fatalf("expected one student and one scoreboard row, got %d/%d", students, entries)
	}
}

func TestRegisterRollsBackWhenScoreboardWriteFails(t *testing.T) {
	env := newTestEnv(t)

	// Make the scoreboard insert fail after the student insert succeeds.
	if err := env.db.Migrator().DropTable(&model.ScoreboardEntry{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	if _, err := env.student.Register("STU-half", "half"); err == nil {
		t.Fatal("expected registration to fail")
	}

	// The student insert must have rolled back with it; a student without a
	// scoreboard row would stay invisible on the scoreboard.
	var students int64
	env.db.Model(&model.Student{}).Count(&students)
	if students != 0 {
		t.Fatalf("expected the student insert rolled back, found %d rows", students)
	}
}

func TestRegisterRequiresCode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.student.Register("", "anonymous")
	if !errors.Is(err, util.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestStatsByCodeMergesScoreboard(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	exercise := env.createExercise(t, theme.ID, true)
	question := env.createQuestion(t, exercise.ID, "a", 40)
	studentID := env.registerStudent(t, "STU-7")

	if _, err := env.grading.SubmitExercise(studentID, exercise.ID, map[string]interface{}{question.ID: "a"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	stats, err := env.student.StatsByCode("STU-7")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalPoints != 40 || stats.ExercisesCompleted != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Rank != 1 {
		t.Fatalf("expected rank 1, got %d", stats.Rank)
	}

	if _, err := env.student.StatsByCode("missing"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown code, got %v", err)
	}
}
