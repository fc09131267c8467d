package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdeaStatus is the closed set of lifecycle states an idea moves through.
type IdeaStatus string

const (
	StatusDraft             IdeaStatus = "DRAFT"
	StatusPendingModeration IdeaStatus = "PENDING_MODERATION"
	// StatusSubmitted is a legacy synonym of PENDING_MODERATION still present in
	// older rows; it is accepted on read and normalized on write.
	StatusSubmitted       IdeaStatus = "SUBMITTED"
	StatusModerated       IdeaStatus = "MODERATED"
	StatusExecutiveReview IdeaStatus = "EXECUTIVE_REVIEW"
	StatusInDev           IdeaStatus = "IN_DEV"
	StatusG2MReady        IdeaStatus = "G2M_READY"
	StatusLaunched        IdeaStatus = "LAUNCHED"
)

// AllStatuses lists every recognized lifecycle value, synonyms included.
var AllStatuses = []IdeaStatus{
	StatusDraft,
	StatusPendingModeration,
	StatusSubmitted,
	StatusModerated,
	StatusExecutiveReview,
	StatusInDev,
	StatusG2MReady,
	StatusLaunched,
}

// Valid reports whether s is one of the recognized lifecycle values.
func (s IdeaStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Normalize maps the legacy SUBMITTED synonym to PENDING_MODERATION.
func (s IdeaStatus) Normalize() IdeaStatus {
	if s == StatusSubmitted {
		return StatusPendingModeration
	}
	return s
}

// T-shirt sizes accepted on ideas.tshirt_size.
var TShirtSizes = []string{"XS", "S", "M", "L", "XL"}

type Idea struct {
	ID                 string     `gorm:"primaryKey;column:id" json:"id"`
	Title              string     `gorm:"column:title" json:"title"`
	Description        string     `gorm:"column:description" json:"description"`
	Category           string     `gorm:"column:category" json:"category"`
	TShirtSize         string     `gorm:"column:tshirt_size" json:"tshirt_size"`
	RiskMitigation     *string    `gorm:"column:risk_mitigation" json:"risk_mitigation,omitempty"`
	ExecutiveSponsor   *string    `gorm:"column:executive_sponsor" json:"executive_sponsor,omitempty"`
	BusinessValueScore int        `gorm:"column:business_value_score" json:"business_value_score"`
	Status             IdeaStatus `gorm:"column:status" json:"status"`
	QuarterlyGoalID    *string    `gorm:"column:quarterly_goal_id" json:"quarterly_goal_id,omitempty"`
	TicketID           *string    `gorm:"column:ticket_id" json:"ticket_id,omitempty"`
	TicketStatus       *string    `gorm:"column:ticket_status" json:"ticket_status,omitempty"`
	SubmitterID        string     `gorm:"column:submitter_id" json:"submitter_id"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Submitter *User  `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	Votes     []Vote `gorm:"foreignKey:IdeaID" json:"votes,omitempty"`
}

func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (Idea) TableName() string {
	return "ideas"
}
