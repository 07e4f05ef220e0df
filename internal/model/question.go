package model

import "encoding/json"

const (
	QuestionSingleChoice = "qcm"
	QuestionMultiChoice  = "qcm_multiple"
	QuestionText         = "text"
	QuestionFlag         = "flag"
	QuestionCode         = "code"
	QuestionNumber       = "number"
)

// swagger:model Question
type Question struct {
	UUIDBase
	ExerciseID   string          `gorm:"index;size:36;not null" json:"exercise_id"`
	QuestionText string          `gorm:"type:text;not null" json:"question_text"`
	QuestionType string          `gorm:"size:50;not null" json:"question_type"`
	Options      json.RawMessage `gorm:"type:json" json:"options,omitempty"` // choice types only
	// CorrectAnswer holds a plain string, or a JSON-encoded list for
	// qcm_multiple. Grading compares the raw string either way.
	CorrectAnswer string `gorm:"type:text" json:"correct_answer,omitempty"`
	Points        int    `gorm:"default:10" json:"points"`
	Hint          string `gorm:"type:text" json:"hint,omitempty"`
	OrderIndex    int    `gorm:"default:0" json:"order_index"`
}

func (Question) TableName() string {
	return "questions"
}
