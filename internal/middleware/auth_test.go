package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type authFixture struct {
	cfg      *config.Config
	db       *gorm.DB
	users    *repository.UserRepository
	students *repository.StudentRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.UserSession{}, &model.Student{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Lab.OrchestratorKey = "orc-key"

	return &authFixture{
		cfg:      cfg,
		db:       db,
		users:    repository.NewUserRepository(db),
		students: repository.NewStudentRepository(db),
	}
}

func (f *authFixture) router() *gin.Engine {
	router := gin.New()
	router.Use(Identity(f.cfg, f.users, f.students))
	return router
}

func TestIdentityResolvesStudentCode(t *testing.T) {
	f := newAuthFixture(t)
	student := &model.Student{StudentCode: "STU-9", DisplayName: "nine"}
	if err := f.db.Create(student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}

	router := f.router()
	router.POST("/submit", RequireStudent(), func(c *gin.Context) {
		c.String(http.StatusOK, util.GetStudentIDFromContext(c))
	})

	// Unknown codes and missing headers both resolve to anonymous.
	for _, code := range []string{"", "nobody"} {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		if code != "" {
			req.Header.Set("X-Student-Code", code)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("code %q: expected 401, got %d", code, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("X-Student-Code", "STU-9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != student.ID {
		t.Fatalf("expected the student id back, got %d %q", w.Code, w.Body.String())
	}
}

func TestIdentityRejectsRevokedToken(t *testing.T) {
	f := newAuthFixture(t)
	user := &model.User{Username: "admin", PasswordHash: "x", Role: model.SuperAdmin, IsActive: true}
	if err := f.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := util.GenerateJWT(user, f.cfg.JWT.Secret, f.cfg.JWT.ExpireTime)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	router := f.router()
	router.GET("/admin", RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Valid signature but no session row: denied.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session row, got %d", w.Code)
	}

	session := &model.UserSession{UserID: user.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}
	if err := f.users.CreateSession(session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with a live session, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/super",
		func(c *gin.Context) {
			c.Set("user", &util.Claims{UserID: "u1", Role: model.Editor})
		},
		RequireRole(model.SuperAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/super", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an editor, got %d", w.Code)
	}
}

func TestRequireOrchestratorKey(t *testing.T) {
	f := newAuthFixture(t)
	router := gin.New()
	router.POST("/callback", RequireOrchestratorKey(f.cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/callback", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without the key, got %d", w.Code)
	}

	req.Header.Set("X-Orchestrator-Key", "orc-key")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with the key, got %d", w.Code)
	}
}
