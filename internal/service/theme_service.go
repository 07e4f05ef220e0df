package service

import (
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ThemeService struct {
	Themes    *repository.ThemeRepository
	Exercises *repository.ExerciseRepository
	Activity  *ActivityService
}

func NewThemeService(themes *repository.ThemeRepository, exercises *repository.ExerciseRepository, activity *ActivityService) *ThemeService {
	return &ThemeService{Themes: themes, Exercises: exercises, Activity: activity}
}

func (s *ThemeService) List(team string) ([]repository.ThemeListRow, error) {
	if team != "" && team != string(model.TeamRed) && team != string(model.TeamBlue) {
		return nil, fmt.Errorf("%w: unknown team %q", util.ErrInvalidRequest, team)
	}
	return s.Themes.ListActive(team)
}

type ThemeDetail struct {
	*model.Theme
	Exercises []repository.PublicExerciseRow `json:"exercises"`
}

// Get returns an active theme with its published exercises. Soft-deleted and
// unpublished exercises never appear here.
func (s *ThemeService) Get(themeID string) (*ThemeDetail, error) {
	theme, err := s.Themes.FindActiveByID(themeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	exercises, err := s.Exercises.ListPublishedByTheme(themeID)
	if err != nil {
		return nil, err
	}

	return &ThemeDetail{Theme: theme, Exercises: exercises}, nil
}

type ThemeReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TeamType    string  `json:"team_type"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	ParentID    *string `json:"parent_id"`
	OrderIndex  int     `json:"order_index"`
}

func (s *ThemeService) Create(creatorID string, req ThemeReq) (*model.Theme, error) {
	if req.Name == "" || req.TeamType == "" {
		return nil, fmt.Errorf("%w: name and team_type are required", util.ErrInvalidRequest)
	}
	if req.TeamType != string(model.TeamRed) && req.TeamType != string(model.TeamBlue) {
		return nil, fmt.Errorf("%w: team_type must be red or blue", util.ErrInvalidRequest)
	}

	icon := req.Icon
	if icon == "" {
		icon = "📁"
	}

	theme := &model.Theme{
		Name:        req.Name,
		Description: req.Description,
		TeamType:    model.TeamType(req.TeamType),
		Icon:        icon,
		Color:       req.Color,
		ParentID:    req.ParentID,
		OrderIndex:  req.OrderIndex,
		IsActive:    true,
	}

	if err := s.Themes.Create(theme); err != nil {
		return nil, err
	}

	s.Activity.Log(creatorID, "create", "theme", theme.ID, theme.Name)
	return theme, nil
}
