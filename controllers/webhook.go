package controllers

import (
	"encoding/json"
	"net/http"

	"idea-incubator-api/config"
	"idea-incubator-api/services"

	"github.com/gin-gonic/gin"
)

// ticketWebhookPayload mirrors the tracker's issue-updated event shape. The
// description can be a plain string or an ADF document depending on the API
// version, so it is kept raw.
type ticketWebhookPayload struct {
	WebhookEvent string `json:"webhookEvent"`
	Issue        *struct {
		Key    string `json:"key"`
		Fields *struct {
			Summary     string          `json:"summary"`
			Description json.RawMessage `json:"description"`
			Status      struct {
				Name string `json:"name"`
			} `json:"status"`
			IssueType struct {
				Name string `json:"name"`
			} `json:"issuetype"`
		} `json:"fields"`
	} `json:"issue"`
}

func descriptionText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return string(raw)
}

// TicketWebhook handles inbound completion events from the external tracker.
// Only a Done Epic advances an idea; everything else is acknowledged and ignored.
// A matched completion also gets a generated launch kit, recorded in the audit
// trail.
func TicketWebhook(c *gin.Context) {
	var payload ticketWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	if payload.Issue == nil || payload.Issue.Fields == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	fields := payload.Issue.Fields
	if fields.Status.Name != "Done" || fields.IssueType.Name != "Epic" {
		c.JSON(http.StatusOK, gin.H{"message": "Ignored: not a completed Epic"})
		return
	}

	lifecycle := services.NewLifecycleService(config.DB)
	idea, matched, err := lifecycle.CompleteFromTicket(payload.Issue.Key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !matched {
		// Unknown ticket keys are acknowledged, not treated as failures.
		c.JSON(http.StatusOK, gin.H{"message": "Idea not matched"})
		return
	}

	audit := services.NewAuditService(config.DB)
	audit.Log(services.AuditEntry{
		EntityType: "IDEA",
		EntityID:   idea.ID,
		ActionType: "TICKET_DONE",
		Actor:      services.SystemPrincipal,
		Changes:    gin.H{"ticket_key": payload.Issue.Key, "status": idea.Status},
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	// Best effort: a failed generation leaves the completed idea without a kit.
	kit := services.NewAIService().GenerateLaunchKit(c.Request.Context(),
		fields.Summary, descriptionText(fields.Description))
	if kit != nil {
		audit.Log(services.AuditEntry{
			EntityType: "IDEA",
			EntityID:   idea.ID,
			ActionType: "GENERATE_G2M",
			Actor:      services.AIPrincipal,
			Changes:    gin.H{"ticket_key": payload.Issue.Key, "marketing_kit": kit},
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "idea_id": idea.ID, "kit": kit})
}
