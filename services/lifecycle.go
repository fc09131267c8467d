package services

import (
	"errors"
	"fmt"
	"time"

	"idea-incubator-api/models"

	"gorm.io/gorm"
)

// RoleSystem marks transitions driven by inbound integration events rather than
// an authenticated user (the ticket-completion webhook).
const RoleSystem = "SYSTEM"

// SystemPrincipal is the actor recorded for event-driven transitions.
var SystemPrincipal = models.User{ID: "SYSTEM", Name: "System", Role: RoleSystem}

type transitionRule struct {
	to    models.IdeaStatus
	roles []string
}

// transitionTable is the single authoritative list of legal lifecycle edges.
// Every handler goes through Transition; a write not present here is rejected.
var transitionTable = map[models.IdeaStatus][]transitionRule{
	models.StatusPendingModeration: {
		{to: models.StatusModerated, roles: []string{models.RoleModerator, models.RoleAdmin}},
	},
	models.StatusModerated: {
		{to: models.StatusExecutiveReview, roles: []string{models.RoleModerator, models.RoleAdmin}},
	},
	models.StatusExecutiveReview: {
		{to: models.StatusInDev, roles: []string{models.RoleExecutive, models.RoleAdmin}},
		{to: models.StatusDraft, roles: []string{models.RoleExecutive, models.RoleAdmin}},
	},
	models.StatusInDev: {
		{to: models.StatusG2MReady, roles: []string{RoleSystem}},
	},
	models.StatusG2MReady: {
		{to: models.StatusLaunched, roles: []string{models.RoleExecutive, models.RoleAdmin}},
	},
}

// CanTransition checks the edge from -> to against the table for the given role.
// It distinguishes an illegal edge from a legal edge attempted by the wrong role.
func CanTransition(from, to models.IdeaStatus, role string) error {
	rules, ok := transitionTable[from.Normalize()]
	if !ok {
		return fmt.Errorf("%w: no transitions from %s", ErrInvalidTransition, from)
	}
	for _, rule := range rules {
		if rule.to != to.Normalize() {
			continue
		}
		for _, r := range rule.roles {
			if r == role {
				return nil
			}
		}
		return fmt.Errorf("%w: role %s may not move an idea from %s to %s", ErrForbidden, role, from, to)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// LifecycleService applies status transitions for ideas. All role checks take the
// principal explicitly so the service is testable without HTTP plumbing.
type LifecycleService struct {
	db *gorm.DB
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{db: db}
}

func (s *LifecycleService) findIdea(tx *gorm.DB, ideaID string) (*models.Idea, error) {
	var idea models.Idea
	if err := tx.Where("id = ?", ideaID).First(&idea).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &idea, nil
}

// transition validates the edge and writes the new status. Last writer wins: no
// compare-and-swap guard on the status column.
func (s *LifecycleService) transition(tx *gorm.DB, idea *models.Idea, to models.IdeaStatus, principal models.User) error {
	if err := CanTransition(idea.Status, to, principal.Role); err != nil {
		return err
	}
	idea.Status = to.Normalize()
	idea.UpdatedAt = time.Now()
	return tx.Model(idea).Updates(map[string]interface{}{
		"status":     idea.Status,
		"updated_at": idea.UpdatedAt,
	}).Error
}

// Moderate moves an idea awaiting moderation to MODERATED.
func (s *LifecycleService) Moderate(ideaID string, principal models.User) (*models.Idea, error) {
	idea, err := s.findIdea(s.db, ideaID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(s.db, idea, models.StatusModerated, principal); err != nil {
		return nil, err
	}
	return idea, nil
}

// Escalate pushes a moderated idea into executive review.
func (s *LifecycleService) Escalate(ideaID string, principal models.User) (*models.Idea, error) {
	idea, err := s.findIdea(s.db, ideaID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(s.db, idea, models.StatusExecutiveReview, principal); err != nil {
		return nil, err
	}
	return idea, nil
}

// Reject hard-deletes an idea during moderation. Not allowed once the idea has
// reached development.
func (s *LifecycleService) Reject(ideaID string, principal models.User) error {
	if principal.Role != models.RoleModerator && principal.Role != models.RoleAdmin {
		return ErrForbidden
	}
	idea, err := s.findIdea(s.db, ideaID)
	if err != nil {
		return err
	}
	switch idea.Status.Normalize() {
	case models.StatusInDev, models.StatusG2MReady, models.StatusLaunched:
		return fmt.Errorf("%w: idea already in development", ErrInvalidTransition)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", idea.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(idea).Error
	})
}

// ExecutiveApprove records the APPROVE review, moves the idea to IN_DEV and
// enqueues a ticket outbox entry, all in one transaction. The returned outbox row
// is dispatched by the caller after commit; sync failure never reverts IN_DEV.
func (s *LifecycleService) ExecutiveApprove(ideaID, sizing, notes string, principal models.User) (*models.Idea, *models.TicketOutbox, error) {
	var idea *models.Idea
	outbox := &models.TicketOutbox{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		idea, err = s.findIdea(tx, ideaID)
		if err != nil {
			return err
		}

		review := models.Review{
			IdeaID:     idea.ID,
			ReviewerID: principal.ID,
			Role:       principal.Role,
			Decision:   models.DecisionApprove,
			Comments:   fmt.Sprintf("Effort: %s. Notes: %s", sizing, notes),
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		if err := s.transition(tx, idea, models.StatusInDev, principal); err != nil {
			return err
		}

		outbox.IdeaID = idea.ID
		return tx.Create(outbox).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return idea, outbox, nil
}

// ExecutiveReject records the REJECT review and sends the idea back to DRAFT.
func (s *LifecycleService) ExecutiveReject(ideaID, reason string, principal models.User) (*models.Idea, error) {
	var idea *models.Idea
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		idea, err = s.findIdea(tx, ideaID)
		if err != nil {
			return err
		}

		review := models.Review{
			IdeaID:     idea.ID,
			ReviewerID: principal.ID,
			Role:       principal.Role,
			Decision:   models.DecisionReject,
			Comments:   reason,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		return s.transition(tx, idea, models.StatusDraft, principal)
	})
	if err != nil {
		return nil, err
	}
	return idea, nil
}

// Launch marks a go-to-market-ready idea as LAUNCHED, the terminal state.
func (s *LifecycleService) Launch(ideaID string, principal models.User) (*models.Idea, error) {
	idea, err := s.findIdea(s.db, ideaID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(s.db, idea, models.StatusLaunched, principal); err != nil {
		return nil, err
	}
	return idea, nil
}

// CompleteFromTicket reacts to a completed external epic. The idea is located by
// its stored ticket key; no match is a no-op, not an error.
func (s *LifecycleService) CompleteFromTicket(ticketKey string) (*models.Idea, bool, error) {
	var idea models.Idea
	if err := s.db.Where("ticket_id = ?", ticketKey).First(&idea).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if err := s.transition(s.db, &idea, models.StatusG2MReady, SystemPrincipal); err != nil {
		return nil, false, err
	}

	done := "Done"
	idea.TicketStatus = &done
	if err := s.db.Model(&idea).Update("ticket_status", done).Error; err != nil {
		return nil, false, err
	}
	return &idea, true, nil
}
