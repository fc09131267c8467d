package services

import (
	"math"
	"sort"
	"time"

	"idea-incubator-api/models"

	"gorm.io/gorm"
)

// Contributor is a leaderboard entry on the dashboard.
type Contributor struct {
	Initial   string  `json:"initial"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Count     int     `json:"count"`
}

// FunnelCounts are cumulative: each later stage counts everything at or past it,
// so the sequence is non-increasing by construction.
type FunnelCounts struct {
	Submitted int `json:"submitted"`
	Moderated int `json:"moderated"`
	Approved  int `json:"approved"`
	Launched  int `json:"launched"`
}

// DailyCount is one day of the submission trend.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardMetrics is the full read-only aggregate served to the dashboard.
type DashboardMetrics struct {
	TotalIdeas    int   `json:"total_ideas"`
	IdeasByStatus []int `json:"ideas_by_status"` // [DRAFT/SUBMITTED, MODERATED, EXEC_REVIEW, IN_DEV, G2M]

	// PipelineVelocity is the mean age in days of ideas currently in IN_DEV or
	// G2M_READY. It measures age of in-flight work, not true time-in-stage.
	PipelineVelocity int `json:"pipeline_velocity"`

	ApprovalRate           int           `json:"approval_rate"` // integer percent, 0 with no decisions
	TopContributors        []Contributor `json:"top_contributors"`
	HighValueOpportunities int           `json:"high_value_opportunities"` // score > 80

	TotalVotes    int `json:"total_votes"`
	ActiveUsers7D int `json:"active_users_7d"` // |voters or submitters|, a proxy
	TotalReviews  int `json:"total_reviews"`

	Funnel           FunnelCounts `json:"funnel"`
	DailySubmissions []DailyCount `json:"daily_submissions"`
}

var statusBucket = map[models.IdeaStatus]int{
	models.StatusDraft:             0,
	models.StatusPendingModeration: 0,
	models.StatusSubmitted:         0,
	models.StatusModerated:         1,
	models.StatusExecutiveReview:   2,
	models.StatusInDev:             3,
	models.StatusG2MReady:          4,
	models.StatusLaunched:          4,
}

func statusIn(status models.IdeaStatus, set ...models.IdeaStatus) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

// ComputeDashboardMetrics is a pure full-scan aggregation over the loaded
// collections. No pagination, no incremental state: callers rescan everything.
func ComputeDashboardMetrics(ideas []models.Idea, reviews []models.Review, votes []models.Vote, users []models.User, now time.Time) DashboardMetrics {
	m := DashboardMetrics{
		TotalIdeas:    len(ideas),
		IdeasByStatus: make([]int, 5),
		TotalVotes:    len(votes),
		TotalReviews:  len(reviews),
	}

	usersByID := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	// Zero-fill the last 7 UTC days so quiet days still chart.
	trend := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		trend[now.UTC().AddDate(0, 0, -i).Format("2006-01-02")] = 0
	}

	velocityDays := 0.0
	velocityCount := 0
	contributorCounts := make(map[string]int)

	for _, idea := range ideas {
		if bucket, ok := statusBucket[idea.Status]; ok {
			m.IdeasByStatus[bucket]++
		} else {
			m.IdeasByStatus[0]++
		}

		if idea.BusinessValueScore > 80 {
			m.HighValueOpportunities++
		}

		contributorCounts[idea.SubmitterID]++

		if statusIn(idea.Status, models.StatusInDev, models.StatusG2MReady) {
			velocityDays += now.Sub(idea.CreatedAt).Hours() / 24
			velocityCount++
		}

		status := idea.Status
		if statusIn(status, models.StatusSubmitted, models.StatusPendingModeration, models.StatusModerated,
			models.StatusExecutiveReview, models.StatusInDev, models.StatusG2MReady, models.StatusLaunched) {
			m.Funnel.Submitted++
		}
		if statusIn(status, models.StatusModerated, models.StatusExecutiveReview,
			models.StatusInDev, models.StatusG2MReady, models.StatusLaunched) {
			m.Funnel.Moderated++
		}
		if statusIn(status, models.StatusInDev, models.StatusG2MReady, models.StatusLaunched) {
			m.Funnel.Approved++
		}
		if status == models.StatusLaunched {
			m.Funnel.Launched++
		}

		day := idea.CreatedAt.UTC().Format("2006-01-02")
		if _, ok := trend[day]; ok {
			trend[day]++
		}
	}

	if velocityCount > 0 {
		m.PipelineVelocity = int(math.Round(velocityDays / float64(velocityCount)))
	}

	approvals, rejections := 0, 0
	for _, r := range reviews {
		switch r.Decision {
		case models.DecisionApprove:
			approvals++
		case models.DecisionReject:
			rejections++
		}
	}
	if approvals+rejections > 0 {
		m.ApprovalRate = int(math.Round(float64(approvals) / float64(approvals+rejections) * 100))
	}

	type ranked struct {
		id    string
		count int
	}
	rankings := make([]ranked, 0, len(contributorCounts))
	for id, count := range contributorCounts {
		rankings = append(rankings, ranked{id: id, count: count})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].count != rankings[j].count {
			return rankings[i].count > rankings[j].count
		}
		return rankings[i].id < rankings[j].id
	})
	if len(rankings) > 5 {
		rankings = rankings[:5]
	}
	m.TopContributors = make([]Contributor, 0, len(rankings))
	for _, r := range rankings {
		entry := Contributor{Initial: "?", Name: "Unknown", Count: r.count}
		if u, ok := usersByID[r.id]; ok {
			entry.Initial = u.Initial()
			entry.Name = u.Name
			entry.AvatarURL = u.AvatarURL
		}
		m.TopContributors = append(m.TopContributors, entry)
	}

	active := make(map[string]struct{})
	for _, v := range votes {
		active[v.UserID] = struct{}{}
	}
	for _, idea := range ideas {
		active[idea.SubmitterID] = struct{}{}
	}
	m.ActiveUsers7D = len(active)

	m.DailySubmissions = make([]DailyCount, 0, len(trend))
	for date, count := range trend {
		m.DailySubmissions = append(m.DailySubmissions, DailyCount{Date: date, Count: count})
	}
	sort.Slice(m.DailySubmissions, func(i, j int) bool {
		return m.DailySubmissions[i].Date < m.DailySubmissions[j].Date
	})

	return m
}

// MetricsService loads the collections and runs the pure aggregation.
type MetricsService struct {
	db *gorm.DB
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

func (s *MetricsService) DashboardMetrics(now time.Time) (DashboardMetrics, error) {
	var (
		ideas   []models.Idea
		reviews []models.Review
		votes   []models.Vote
		users   []models.User
	)
	if err := s.db.Find(&ideas).Error; err != nil {
		return DashboardMetrics{}, err
	}
	if err := s.db.Find(&reviews).Error; err != nil {
		return DashboardMetrics{}, err
	}
	if err := s.db.Find(&votes).Error; err != nil {
		return DashboardMetrics{}, err
	}
	if err := s.db.Find(&users).Error; err != nil {
		return DashboardMetrics{}, err
	}
	return ComputeDashboardMetrics(ideas, reviews, votes, users, now), nil
}
