package service

import (
	"errors"
	"testing"

	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/util"
)

func TestScoreboardRanksShareTies(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	big := env.createExercise(t, theme.ID, true)
	small := env.createExercise(t, theme.ID, true)
	bigQ := env.createQuestion(t, big.ID, "a", 30)
	smallQ := env.createQuestion(t, small.ID, "b", 10)

	alice := env.registerStudent(t, "alice")
	bob := env.registerStudent(t, "bob")
	carol := env.registerStudent(t, "carol")

	for _, studentID := range []string{alice, bob} {
		if _, err := env.grading.SubmitExercise(studentID, big.ID, map[string]interface{}{bigQ.ID: "a"}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	if _, err := env.grading.SubmitExercise(carol, small.ID, map[string]interface{}{smallQ.ID: "b"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	entries, err := env.scoreboard.List("", 0)
	if err != nil {
		t.Fatalf("list scoreboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Two students tied at 30 share rank 1; the next distinct score ranks
	// below both of them.
	if entries[0].Rank != 1 || entries[1].Rank != 1 {
		t.Fatalf("expected shared rank 1, got %d and %d", entries[0].Rank, entries[1].Rank)
	}
	if entries[2].Rank != 3 {
		t.Fatalf("expected rank 3 after a two-way tie, got %d", entries[2].Rank)
	}
	if entries[2].TotalPoints != 10 {
		t.Fatalf("unexpected ordering: %+v", entries)
	}
}

func TestScoreboardTeamViewOrdersByTeamPoints(t *testing.T) {
	env := newTestEnv(t)
	red := env.createTheme(t, "Offense", model.TeamRed)
	blue := env.createTheme(t, "Defense", model.TeamBlue)
	redExercise := env.createExercise(t, red.ID, true)
	blueExercise := env.createExercise(t, blue.ID, true)
	rq := env.createQuestion(t, redExercise.ID, "a", 10)
	bq := env.createQuestion(t, blueExercise.ID, "b", 50)

	redSpecialist := env.registerStudent(t, "red-ops")
	blueSpecialist := env.registerStudent(t, "blue-ops")

	if _, err := env.grading.SubmitExercise(redSpecialist, redExercise.ID, map[string]interface{}{rq.ID: "a"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := env.grading.SubmitExercise(blueSpecialist, blueExercise.ID, map[string]interface{}{bq.ID: "b"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	entries, err := env.scoreboard.List(string(model.TeamRed), 0)
	if err != nil {
		t.Fatalf("list scoreboard: %v", err)
	}
	if entries[0].StudentID != redSpecialist {
		t.Fatalf("expected the red specialist first in the red view, got %+v", entries[0])
	}

	entries, err = env.scoreboard.List(string(model.TeamBlue), 0)
	if err != nil {
		t.Fatalf("list scoreboard: %v", err)
	}
	if entries[0].StudentID != blueSpecialist {
		t.Fatalf("expected the blue specialist first in the blue view, got %+v", entries[0])
	}
}

func TestScoreboardRejectsUnknownTeam(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.scoreboard.List("purple", 0); !errors.Is(err, util.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for an unknown team, got %v", err)
	}
}

func TestScoreboardLimit(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	exercise := env.createExercise(t, theme.ID, true)
	question := env.createQuestion(t, exercise.ID, "a", 10)

	for _, code := range []string{"s1", "s2", "s3"} {
		id := env.registerStudent(t, code)
		if _, err := env.grading.SubmitExercise(id, exercise.ID, map[string]interface{}{question.ID: "a"}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	entries, err := env.scoreboard.List("", 2)
	if err != nil {
		t.Fatalf("list scoreboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}
