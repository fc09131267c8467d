package services

import (
	"errors"
	"time"

	"idea-incubator-api/models"

	"gorm.io/gorm"
)

// GoalProgress is the derived state of a goal after summing its contributions.
type GoalProgress struct {
	Progress    int
	Status      string
	CompletedAt *time.Time
}

// RecomputeProgress derives a goal's progress from the full contribution set.
// Progress is always the fresh sum, so a correction that lowers the total can move
// a COMPLETED goal back to ACTIVE. A goal already marked MISSED stays MISSED.
func RecomputeProgress(goal models.QuarterlyGoal, contributions []models.GoalContribution, now time.Time) GoalProgress {
	total := 0
	for _, c := range contributions {
		total += c.Amount
	}

	out := GoalProgress{Progress: total}
	if goal.Status == models.GoalStatusMissed {
		out.Status = models.GoalStatusMissed
		out.CompletedAt = goal.CompletedAt
		return out
	}

	if total >= goal.TargetValue {
		out.Status = models.GoalStatusCompleted
		if goal.CompletedAt != nil {
			out.CompletedAt = goal.CompletedAt
		} else {
			out.CompletedAt = &now
		}
	} else {
		out.Status = models.GoalStatusActive
	}
	return out
}

// GoalService owns quarterly goals and their contribution ledger.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// AddContribution appends a contribution and rewrites the goal's denormalized
// progress from the full sum, in one transaction.
func (s *GoalService) AddContribution(goalID string, amount int, notes string, principal models.User) (*models.GoalContribution, error) {
	contribution := &models.GoalContribution{
		GoalID:          goalID,
		ContributorID:   principal.ID,
		ContributorName: principal.Name,
		ContributorRole: principal.Role,
		Amount:          amount,
		Notes:           notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.QuarterlyGoal
		if err := tx.Where("id = ?", goalID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Create(contribution).Error; err != nil {
			return err
		}

		var contributions []models.GoalContribution
		if err := tx.Where("goal_id = ?", goalID).Find(&contributions).Error; err != nil {
			return err
		}

		derived := RecomputeProgress(goal, contributions, time.Now())
		return tx.Model(&goal).Updates(map[string]interface{}{
			"current_progress": derived.Progress,
			"status":           derived.Status,
			"completed_at":     derived.CompletedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return contribution, nil
}

// MarkMissed is an explicit admin action; deadlines are informational and never
// flip a goal automatically.
func (s *GoalService) MarkMissed(goalID string, principal models.User) (*models.QuarterlyGoal, error) {
	if principal.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	var goal models.QuarterlyGoal
	if err := s.db.Where("id = ?", goalID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	goal.Status = models.GoalStatusMissed
	if err := s.db.Model(&goal).Update("status", models.GoalStatusMissed).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}
