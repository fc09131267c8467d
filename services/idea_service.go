package services

import (
	"errors"
	"fmt"
	"strings"

	"idea-incubator-api/models"
	"idea-incubator-api/utils"

	"gorm.io/gorm"
)

// DuplicateMatch is a stored idea whose title or description contains the
// candidate text.
type DuplicateMatch struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// IdeaInput carries the editable content fields of an idea.
type IdeaInput struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	TShirtSize       string  `json:"tshirt_size"`
	RiskMitigation   *string `json:"risk_mitigation"`
	ExecutiveSponsor *string `json:"executive_sponsor"`
	QuarterlyGoalID  *string `json:"quarterly_goal_id"`
}

// IdeaService owns idea creation and content edits.
type IdeaService struct {
	db    *gorm.DB
	score ScoreFunc
}

func NewIdeaService(db *gorm.DB, score ScoreFunc) *IdeaService {
	if score == nil {
		score = DefaultScorer
	}
	return &IdeaService{db: db, score: score}
}

// FindDuplicates scans stored ideas for a case-sensitive substring match between
// text and their titles or descriptions, returning up to three matches. This is a
// literal containment heuristic standing in for semantic search; texts shorter
// than three characters never match.
func (s *IdeaService) FindDuplicates(text string) ([]DuplicateMatch, error) {
	text = strings.TrimSpace(text)
	if len(text) < 3 {
		return nil, nil
	}

	// Escape LIKE metacharacters so the candidate text is matched literally.
	// '!' is the escape character because backslash literals differ between
	// MySQL and sqlite.
	escaped := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(text)

	var matches []DuplicateMatch
	pattern := "%" + escaped + "%"
	err := s.db.Model(&models.Idea{}).
		Select("id, title").
		Where("title LIKE ? ESCAPE '!' OR description LIKE ? ESCAPE '!'", pattern, pattern).
		Limit(3).
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func validateIdeaInput(in *IdeaInput) error {
	in.Title = utils.SanitizeInput(in.Title)
	in.Description = utils.SanitizeInput(in.Description)
	if in.Title == "" || in.Description == "" {
		return fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	if in.Category == "" {
		in.Category = "General"
	}
	if in.TShirtSize == "" {
		in.TShirtSize = "M"
	}
	if !utils.ValidTShirtSize(in.TShirtSize) {
		return fmt.Errorf("%w: unknown t-shirt size %q", ErrValidation, in.TShirtSize)
	}
	if in.TShirtSize == "XL" {
		if in.RiskMitigation == nil || strings.TrimSpace(*in.RiskMitigation) == "" ||
			in.ExecutiveSponsor == nil || strings.TrimSpace(*in.ExecutiveSponsor) == "" {
			return fmt.Errorf("%w: XL ideas require risk mitigation and an executive sponsor", ErrValidation)
		}
	}
	return nil
}

// Submit validates the input, rejects near-duplicates and persists a new idea in
// PENDING_MODERATION with a placeholder business-value score.
func (s *IdeaService) Submit(in IdeaInput, principal models.User) (*models.Idea, error) {
	if err := validateIdeaInput(&in); err != nil {
		return nil, err
	}

	matches, err := s.FindDuplicates(in.Title)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return nil, fmt.Errorf("%w: similar idea found", ErrDuplicateIdea)
	}

	idea := models.Idea{
		Title:            in.Title,
		Description:      in.Description,
		Category:         in.Category,
		TShirtSize:       in.TShirtSize,
		RiskMitigation:   in.RiskMitigation,
		ExecutiveSponsor: in.ExecutiveSponsor,
		QuarterlyGoalID:  in.QuarterlyGoalID,
		Status:           models.StatusPendingModeration,
		SubmitterID:      principal.ID,
	}
	idea.BusinessValueScore = s.score(&idea)

	if err := s.db.Create(&idea).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// Update edits content fields only; status never changes here. Owners may edit
// their own ideas, moderators and admins anyone's.
func (s *IdeaService) Update(ideaID string, in IdeaInput, principal models.User) (*models.Idea, error) {
	var idea models.Idea
	if err := s.db.Where("id = ?", ideaID).First(&idea).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if idea.SubmitterID != principal.ID &&
		principal.Role != models.RoleModerator && principal.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	if err := validateIdeaInput(&in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":             in.Title,
		"description":       in.Description,
		"category":          in.Category,
		"tshirt_size":       in.TShirtSize,
		"risk_mitigation":   in.RiskMitigation,
		"executive_sponsor": in.ExecutiveSponsor,
		"quarterly_goal_id": in.QuarterlyGoalID,
	}
	if err := s.db.Model(&idea).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &idea, nil
}

// Trending returns ideas ordered by descending vote count. Ties break
// newest-created-first so the ordering is deterministic.
func (s *IdeaService) Trending(limit int) ([]models.Idea, error) {
	if limit <= 0 {
		limit = 10
	}

	var ideas []models.Idea
	err := s.db.Model(&models.Idea{}).
		Select("ideas.*, COUNT(votes.id) AS vote_count").
		Joins("LEFT JOIN votes ON votes.idea_id = ideas.id").
		Group("ideas.id").
		Order("vote_count DESC, ideas.created_at DESC").
		Limit(limit).
		Preload("Submitter").
		Preload("Votes").
		Find(&ideas).Error
	if err != nil {
		return nil, err
	}
	return ideas, nil
}

// ToggleVote flips the (idea, user) vote: delete it when present, create it
// otherwise. Returns true when the vote exists after the call.
func (s *IdeaService) ToggleVote(ideaID string, principal models.User) (bool, error) {
	if err := s.db.Where("id = ?", ideaID).First(&models.Idea{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	var vote models.Vote
	err := s.db.Where("idea_id = ? AND user_id = ?", ideaID, principal.ID).First(&vote).Error
	switch {
	case err == nil:
		return false, s.db.Delete(&vote).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote = models.Vote{IdeaID: ideaID, UserID: principal.ID}
		return true, s.db.Create(&vote).Error
	default:
		return false, err
	}
}
