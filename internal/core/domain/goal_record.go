package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalIndexOutOfRange = errors.New("goal index out of range")
	ErrNoGoalsGenerated    = errors.New("goal record needs at least one non-empty goal")
	ErrInvalidGoalRecord   = errors.New("goal record requires user id and category")
)

type GoalRecord struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	Category      string    `json:"category" db:"category"`
	Goals         []string  `json:"goals" db:"goals"`
	DateGenerated time.Time `json:"date_generated" db:"date_generated"`
	IsCompleted   bool      `json:"is_completed" db:"is_completed"`
	Version       int       `json:"version" db:"version"`
}

type GoalProgress struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// NewGoalRecord builds a fresh record from generated goal texts. Blank texts
// are dropped; every goal starts incomplete.
func NewGoalRecord(userID, category string, texts []string, generatedAt time.Time) (*GoalRecord, error) {
	userID = strings.TrimSpace(userID)
	category = strings.TrimSpace(category)
	if userID == "" || category == "" {
		return nil, ErrInvalidGoalRecord
	}

	goals := make([]Goal, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		goals = append(goals, NewGoal(t))
	}
	if len(goals) == 0 {
		return nil, ErrNoGoalsGenerated
	}

	return &GoalRecord{
		ID:            uuid.New().String(),
		UserID:        userID,
		Category:      category,
		Goals:         EncodeGoals(goals),
		DateGenerated: generatedAt.UTC(),
		IsCompleted:   false,
		Version:       1,
	}, nil
}

func (r *GoalRecord) DecodedGoals() []Goal {
	return DecodeGoals(r.Goals)
}

func (r *GoalRecord) Progress() GoalProgress {
	if r == nil {
		return GoalProgress{}
	}

	p := GoalProgress{Total: len(r.Goals)}
	for _, g := range r.DecodedGoals() {
		if g.IsCompleted {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}

// CompletedCount is the number of completed goals, decoded from the goal strings.
func (r *GoalRecord) CompletedCount() int {
	return r.Progress().Completed
}

// AllCompleted derives completion from the goals themselves, ignoring the
// cached IsCompleted column.
func (r *GoalRecord) AllCompleted() bool {
	if len(r.Goals) == 0 {
		return false
	}
	for _, g := range r.DecodedGoals() {
		if !g.IsCompleted {
			return false
		}
	}
	return true
}

// CompleteGoal marks the goal at index completed and refreshes IsCompleted.
// It reports false without touching the record when the goal was already done.
func (r *GoalRecord) CompleteGoal(index int, at time.Time) (bool, error) {
	if index < 0 || index >= len(r.Goals) {
		return false, ErrGoalIndexOutOfRange
	}

	g := DecodeGoal(r.Goals[index])
	if !g.Complete(at) {
		return false, nil
	}

	r.Goals[index] = EncodeGoal(g)
	r.IsCompleted = r.AllCompleted()
	return true, nil
}

func (r *GoalRecord) Clone() *GoalRecord {
	c := *r
	c.Goals = append([]string(nil), r.Goals...)
	return &c
}
