package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"idea-incubator-api/models"

	"gorm.io/gorm"
)

// SyncFailedStatus is the human-readable ticket status written when the single
// sync attempt fails.
const SyncFailedStatus = "Failed to sync - check JIRA config"

// OutboxDispatcher drains pending ticket outbox rows. Policy: one attempt per
// row, demo-mode reference when the tracker is unconfigured, sentinel ticket id on
// failure. The idea's status is never touched here; the transition that enqueued
// the row is the source of truth.
type OutboxDispatcher struct {
	db   *gorm.DB
	sync *TicketSyncService
}

func NewOutboxDispatcher(db *gorm.DB, sync *TicketSyncService) *OutboxDispatcher {
	return &OutboxDispatcher{db: db, sync: sync}
}

// Dispatch processes one outbox row and writes the resulting ticket reference
// (real, demo or sentinel) back onto the idea. Only infrastructure errors are
// returned; a failed sync attempt is converted into durable FAILED state.
func (d *OutboxDispatcher) Dispatch(outboxID string) error {
	var entry models.TicketOutbox
	if err := d.db.Where("id = ?", outboxID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if entry.Status != models.OutboxPending {
		return nil
	}

	var idea models.Idea
	if err := d.db.Preload("Submitter").Where("id = ?", entry.IdeaID).First(&idea).Error; err != nil {
		return err
	}

	entry.Attempts++

	cfg, err := d.sync.LoadConfig()
	if err == nil && !cfg.Complete() {
		ref := DemoTicketRef()
		log.Printf("Ticket config incomplete, using demo reference %s for idea %s", ref.Key, idea.ID)
		return d.finish(&entry, &idea, ref, models.OutboxSent, nil)
	}

	if err == nil {
		submitterName := "Unknown"
		if idea.Submitter != nil {
			submitterName = idea.Submitter.Name
		}
		var ref TicketRef
		ref, err = d.sync.CreateTicket(&idea, submitterName, cfg)
		if err == nil {
			log.Printf("Created ticket %s for idea %s", ref.Key, idea.ID)
			return d.finish(&entry, &idea, ref, models.OutboxSent, nil)
		}
	}

	// Single attempt, no retry: record the failure as visible state.
	log.Printf("Ticket sync failed for idea %s: %v", idea.ID, err)
	sentinel := TicketRef{
		Key:    fmt.Sprintf("SYNC-FAILED-%d", rand.Intn(1000)),
		Status: SyncFailedStatus,
	}
	return d.finish(&entry, &idea, sentinel, models.OutboxFailed, err)
}

func (d *OutboxDispatcher) finish(entry *models.TicketOutbox, idea *models.Idea, ref TicketRef, outboxStatus string, cause error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":        outboxStatus,
			"attempts":      entry.Attempts,
			"ticket_key":    ref.Key,
			"ticket_status": ref.Status,
		}
		if cause != nil {
			updates["last_error"] = cause.Error()
		}
		if err := tx.Model(entry).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Model(idea).Updates(map[string]interface{}{
			"ticket_id":     ref.Key,
			"ticket_status": ref.Status,
		}).Error
	})
}
