package service

import (
	"errors"
	"testing"
	"time"

	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/util"
	"cyberhub_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func (e *testEnv) attachLabTemplate(t *testing.T, exerciseID string) *model.ContainerTemplate {
	t.Helper()
	template := &model.ContainerTemplate{Name: "kali", ImageTag: "kali:latest"}
	if err := e.labs.CreateTemplate(template); err != nil {
		t.Fatalf("create template: %v", err)
	}
	err := e.db.Model(&model.Exercise{}).
		Where("id = ?", exerciseID).
		Update("container_template_id", template.ID).Error
	if err != nil {
		t.Fatalf("attach template: %v", err)
	}
	return template
}

func TestLabStartWithoutTemplate(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	exercise := env.createExercise(t, theme.ID, true)
	studentID := env.registerStudent(t, "STU-1")

	_, err := env.lab.Start(studentID, exercise.ID)
	if !errors.Is(err, util.ErrNoLab) {
		t.Fatalf("expected ErrNoLab, got %v", err)
	}
}

func TestLabLifecycle(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	exercise := env.createExercise(t, theme.ID, true)
	env.attachLabTemplate(t, exercise.ID)
	studentID := env.registerStudent(t, "STU-1")

	session, err := env.lab.Start(studentID, exercise.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if session.Status != model.LabStatusStarting {
		t.Fatalf("expected starting, got %s", session.Status)
	}
	if !session.ExpiresAt.After(time.Now().Add(time.Hour)) {
		t.Fatalf("expected a TTL well in the future, got %v", session.ExpiresAt)
	}

	// Orchestrator reports the container up.
	updated, err := env.lab.UpdateStatus(session.ID, model.LabStatusRunning, "ssh://10.0.0.5:2222")
	if err != nil {
		t.Fatalf("status callback failed: %v", err)
	}
	if updated.Status != model.LabStatusRunning || updated.ConnectionInfo == "" {
		t.Fatalf("unexpected session after callback: %+v", updated)
	}

	if err := env.lab.Stop(session.ID); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	stopped, err := env.lab.Get(session.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stopped.Status != model.LabStatusStopped {
		t.Fatalf("expected stopped, got %s", stopped.Status)
	}
}

func TestLabStatusCallbackValidatesState(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	exercise := env.createExercise(t, theme.ID, true)
	env.attachLabTemplate(t, exercise.ID)
	studentID := env.registerStudent(t, "STU-1")

	session, err := env.lab.Start(studentID, exercise.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := env.lab.UpdateStatus(session.ID, "exploded", ""); !errors.Is(err, util.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for an unknown state, got %v", err)
	}

	if _, err := env.lab.UpdateStatus("missing-session", model.LabStatusRunning, ""); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSyncSessionGaugeCountsLiveSessions(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	exercise := env.createExercise(t, theme.ID, true)
	env.attachLabTemplate(t, exercise.ID)

	running := env.registerStudent(t, "STU-1")
	stopped := env.registerStudent(t, "STU-2")

	if _, err := env.lab.Start(running, exercise.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	session, err := env.lab.Start(stopped, exercise.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := env.lab.Stop(session.ID); err != nil {
		t.Fatalf("stop failed: %v", err)
	}

	// Simulate a process restart: the in-memory gauge loses its value while
	// the sessions persist.
	monitoring.LabSessionGauge.Set(0)
	env.lab.SyncSessionGauge()

	if got := testutil.ToFloat64(monitoring.LabSessionGauge); got != 1 {
		t.Fatalf("expected the gauge resynced to 1, got %v", got)
	}
}

func TestLabReaperStopsExpiredSessions(t *testing.T) {
	env := newTestEnv(t)
	theme := env.createTheme(t, "Web", model.TeamRed)
	exercise := env.createExercise(t, theme.ID, true)
	env.attachLabTemplate(t, exercise.ID)
	studentID := env.registerStudent(t, "STU-1")

	session, err := env.lab.Start(studentID, exercise.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Backdate the expiry and reap.
	env.db.Model(&model.LabSession{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Minute))

	env.lab.ReapExpired()

	reaped, err := env.lab.Get(session.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reaped.Status != model.LabStatusStopped {
		t.Fatalf("expected the expired session stopped, got %s", reaped.Status)
	}
}
