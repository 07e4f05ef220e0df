package service

import (
	"errors"
	"testing"

	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/util"
)

func TestThemeListFiltersByTeam(t *testing.T) {
	env := newTestEnv(t)
	red := env.createTheme(t, "Offense", model.TeamRed)
	env.createTheme(t, "Defense", model.TeamBlue)
	env.createExercise(t, red.ID, true)
	env.createExercise(t, red.ID, false) // unpublished, not counted

	rows, err := env.theme.List(string(model.TeamRed))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Offense" {
		t.Fatalf("expected only the red theme, got %+v", rows)
	}
	if rows[0].ExerciseCount != 1 {
		t.Fatalf("expected 1 published exercise counted, got %d", rows[0].ExerciseCount)
	}

	if _, err := env.theme.List("purple"); !errors.Is(err, util.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for an unknown team, got %v", err)
	}
}

func TestThemeDetailShowsOnlyPublishedExercises(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	published := env.createExercise(t, theme.ID, true)
	env.createExercise(t, theme.ID, false)

	detail, err := env.theme.Get(theme.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(detail.Exercises) != 1 || detail.Exercises[0].ID != published.ID {
		t.Fatalf("expected only the published exercise, got %+v", detail.Exercises)
	}

	if _, err := env.theme.Get("missing"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestThemeCreateValidatesTeam(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", model.SuperAdmin)

	theme, err := env.theme.Create(admin.ID, ThemeReq{Name: "Crypto", TeamType: "red"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if theme.Icon == "" {
		t.Fatal("expected a default icon")
	}

	_, err = env.theme.Create(admin.ID, ThemeReq{Name: "Bad", TeamType: "green"})
	if !errors.Is(err, util.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
