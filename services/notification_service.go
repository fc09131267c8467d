package services

import (
	"fmt"
	"log"

	"idea-incubator-api/config"
	"idea-incubator-api/models"
)

// NotifyDecision emails the submitter about an executive decision. Best effort:
// SMTP problems are logged, never surfaced to the approval flow.
func NotifyDecision(submitter models.User, idea *models.Idea, decision, comments string) {
	if submitter.Email == "" {
		return
	}

	outcome := "rejected"
	if decision == models.DecisionApprove {
		outcome = "approved"
	}

	subject := fmt.Sprintf("Your idea %q was %s", idea.Title, outcome)
	var body string
	if decision == models.DecisionApprove {
		body = fmt.Sprintf(
			"<p>Good news — your idea <b>%s</b> has been approved by the executive board and is now in development.</p><p>%s</p>",
			idea.Title, comments)
	} else {
		body = fmt.Sprintf(
			"<p>Your idea <b>%s</b> was sent back to draft for rework.</p><p>Reviewer notes: %s</p>",
			idea.Title, comments)
	}

	if err := config.SendMail([]string{submitter.Email}, subject, body); err != nil {
		log.Printf("Failed to send decision notification for idea %s: %v", idea.ID, err)
	}
}
