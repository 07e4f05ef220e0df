package repository

import (
	"cyberhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(id string) error {
	now := time.Now()
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", now).Error
}

func (r *UserRepository) CreateSession(session *model.UserSession) error {
	return r.DB.Create(session).Error
}

// FindLiveSession returns the session for a token only while it has not expired.
func (r *UserRepository) FindLiveSession(token string) (*model.UserSession, error) {
	var session model.UserSession
	err := r.DB.Where("token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *UserRepository) DeleteSession(token string) error {
	return r.DB.Where("token = ?", token).Delete(&model.UserSession{}).Error
}

func (r *UserRepository) DeleteExpiredSessions() error {
	return r.DB.Where("expires_at <= ?", time.Now()).Delete(&model.UserSession{}).Error
}

type EditorStatsRow struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	CreatedAt      time.Time  `json:"created_at"`
	ExercisesCount int        `json:"exercises_count"`
	PublishedCount int        `json:"published_count"`
	QuestionsCount int        `json:"questions_count"`
}

func (r *UserRepository) ListEditorsWithStats() ([]EditorStatsRow, error) {
	var rows []EditorStatsRow
	err := r.DB.Table("users u").
		Select("u.id, u.username, u.display_name, u.last_login_at, u.created_at, "+
			"(SELECT COUNT(*) FROM exercises e WHERE e.created_by = u.id AND e.is_active = ?) as exercises_count, "+
			"(SELECT COUNT(*) FROM exercises e WHERE e.created_by = u.id AND e.is_active = ? AND e.is_published = ?) as published_count, "+
			"(SELECT COUNT(*) FROM questions q JOIN exercises e ON q.exercise_id = e.id WHERE e.created_by = u.id) as questions_count",
			true, true, true).
		Where("u.role = ? AND u.is_active = ?", model.Editor, true).
		Order("u.display_name").
		Scan(&rows).Error
	return rows, err
}
