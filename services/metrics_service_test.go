package services

import (
	"testing"
	"time"

	"idea-incubator-api/models"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func ideaWith(status models.IdeaStatus, submitterID string, createdAt time.Time, score int) models.Idea {
	return models.Idea{
		Status:             status,
		SubmitterID:        submitterID,
		CreatedAt:          createdAt,
		BusinessValueScore: score,
	}
}

func TestComputeDashboardMetricsEmpty(t *testing.T) {
	m := ComputeDashboardMetrics(nil, nil, nil, nil, fixedNow())

	if m.TotalIdeas != 0 || m.TotalVotes != 0 {
		t.Fatalf("unexpected totals: %+v", m)
	}
	if m.ApprovalRate != 0 {
		t.Fatalf("approval rate = %d, want 0 with no reviews", m.ApprovalRate)
	}
	if m.PipelineVelocity != 0 {
		t.Fatalf("velocity = %d, want 0 with no in-flight ideas", m.PipelineVelocity)
	}
	if len(m.DailySubmissions) != 7 {
		t.Fatalf("trend days = %d, want 7 zero-filled", len(m.DailySubmissions))
	}
	for _, day := range m.DailySubmissions {
		if day.Count != 0 {
			t.Fatalf("day %s = %d, want 0", day.Date, day.Count)
		}
	}
}

func TestComputeDashboardMetricsHistogramAndFunnel(t *testing.T) {
	now := fixedNow()
	ideas := []models.Idea{
		ideaWith(models.StatusDraft, "u1", now, 10),
		ideaWith(models.StatusPendingModeration, "u1", now, 20),
		ideaWith(models.StatusSubmitted, "u2", now, 30),
		ideaWith(models.StatusModerated, "u2", now, 90),
		ideaWith(models.StatusExecutiveReview, "u3", now, 85),
		ideaWith(models.StatusInDev, "u3", now.AddDate(0, 0, -10), 50),
		ideaWith(models.StatusG2MReady, "u3", now.AddDate(0, 0, -20), 60),
		ideaWith(models.StatusLaunched, "u1", now, 70),
	}

	m := ComputeDashboardMetrics(ideas, nil, nil, nil, now)

	wantHistogram := []int{3, 1, 1, 1, 2}
	for i, want := range wantHistogram {
		if m.IdeasByStatus[i] != want {
			t.Fatalf("histogram[%d] = %d, want %d (full: %v)", i, m.IdeasByStatus[i], want, m.IdeasByStatus)
		}
	}

	// DRAFT is excluded from the funnel entirely.
	if m.Funnel.Submitted != 7 {
		t.Fatalf("funnel.submitted = %d, want 7", m.Funnel.Submitted)
	}
	if m.Funnel.Moderated != 5 {
		t.Fatalf("funnel.moderated = %d, want 5", m.Funnel.Moderated)
	}
	if m.Funnel.Approved != 3 {
		t.Fatalf("funnel.approved = %d, want 3", m.Funnel.Approved)
	}
	if m.Funnel.Launched != 1 {
		t.Fatalf("funnel.launched = %d, want 1", m.Funnel.Launched)
	}

	// Non-increasing across stages by construction.
	if m.Funnel.Submitted < m.Funnel.Moderated ||
		m.Funnel.Moderated < m.Funnel.Approved ||
		m.Funnel.Approved < m.Funnel.Launched {
		t.Fatalf("funnel not monotonic: %+v", m.Funnel)
	}

	// Mean age of the IN_DEV (10d) and G2M_READY (20d) ideas.
	if m.PipelineVelocity != 15 {
		t.Fatalf("velocity = %d, want 15", m.PipelineVelocity)
	}

	if m.HighValueOpportunities != 2 {
		t.Fatalf("high value = %d, want 2 (scores above 80)", m.HighValueOpportunities)
	}
}

func TestComputeDashboardMetricsApprovalRate(t *testing.T) {
	reviews := []models.Review{
		{Decision: models.DecisionApprove},
		{Decision: models.DecisionApprove},
		{Decision: models.DecisionReject},
	}

	m := ComputeDashboardMetrics(nil, reviews, nil, nil, fixedNow())
	if m.ApprovalRate != 67 {
		t.Fatalf("approval rate = %d, want 67", m.ApprovalRate)
	}
	if m.ApprovalRate < 0 || m.ApprovalRate > 100 {
		t.Fatalf("approval rate out of bounds: %d", m.ApprovalRate)
	}
	if m.TotalReviews != 3 {
		t.Fatalf("total reviews = %d, want 3", m.TotalReviews)
	}
}

func TestComputeDashboardMetricsTopContributors(t *testing.T) {
	now := fixedNow()
	users := []models.User{
		{ID: "u1", Name: "emma"},
		{ID: "u2", Name: "John"},
	}
	ideas := []models.Idea{
		ideaWith(models.StatusDraft, "u1", now, 0),
		ideaWith(models.StatusDraft, "u1", now, 0),
		ideaWith(models.StatusDraft, "u2", now, 0),
		ideaWith(models.StatusDraft, "ghost", now, 0),
	}

	m := ComputeDashboardMetrics(ideas, nil, nil, users, now)

	if len(m.TopContributors) != 3 {
		t.Fatalf("contributors = %d, want 3", len(m.TopContributors))
	}
	if m.TopContributors[0].Name != "emma" || m.TopContributors[0].Count != 2 {
		t.Fatalf("top contributor = %+v", m.TopContributors[0])
	}
	if m.TopContributors[0].Initial != "E" {
		t.Fatalf("initial = %s, want E", m.TopContributors[0].Initial)
	}

	// Unknown submitters still rank, with placeholder identity.
	found := false
	for _, contributor := range m.TopContributors {
		if contributor.Name == "Unknown" && contributor.Initial == "?" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing placeholder for unknown submitter: %+v", m.TopContributors)
	}
}

func TestComputeDashboardMetricsDailyTrend(t *testing.T) {
	now := fixedNow()
	ideas := []models.Idea{
		ideaWith(models.StatusDraft, "u1", now, 0),
		ideaWith(models.StatusDraft, "u1", now.AddDate(0, 0, -1), 0),
		ideaWith(models.StatusDraft, "u1", now.AddDate(0, 0, -1), 0),
		// Older than the window: ignored.
		ideaWith(models.StatusDraft, "u1", now.AddDate(0, 0, -10), 0),
	}

	m := ComputeDashboardMetrics(ideas, nil, nil, nil, now)

	if len(m.DailySubmissions) != 7 {
		t.Fatalf("trend days = %d, want 7", len(m.DailySubmissions))
	}
	last := m.DailySubmissions[6]
	if last.Date != "2026-08-29" || last.Count != 1 {
		t.Fatalf("today = %+v, want 2026-08-29 count 1", last)
	}
	yesterday := m.DailySubmissions[5]
	if yesterday.Date != "2026-08-28" || yesterday.Count != 2 {
		t.Fatalf("yesterday = %+v, want 2026-08-28 count 2", yesterday)
	}
}

func TestComputeDashboardMetricsActiveUsersUnion(t *testing.T) {
	now := fixedNow()
	ideas := []models.Idea{
		ideaWith(models.StatusDraft, "u1", now, 0),
		ideaWith(models.StatusDraft, "u2", now, 0),
	}
	votes := []models.Vote{
		{UserID: "u2"},
		{UserID: "u3"},
	}

	m := ComputeDashboardMetrics(ideas, nil, votes, nil, now)
	if m.ActiveUsers7D != 3 {
		t.Fatalf("active users = %d, want |{u1,u2,u3}| = 3", m.ActiveUsers7D)
	}
	if m.TotalVotes != 2 {
		t.Fatalf("total votes = %d, want 2", m.TotalVotes)
	}
}

func TestDashboardMetricsLoadsFromStore(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	seedIdea(t, db, "Mobile App X", models.StatusInDev, submitter.ID)

	svc := NewMetricsService(db)
	m, err := svc.DashboardMetrics(time.Now())
	if err != nil {
		t.Fatalf("DashboardMetrics() error = %v", err)
	}
	if m.TotalIdeas != 1 {
		t.Fatalf("total ideas = %d, want 1", m.TotalIdeas)
	}
	if m.Funnel.Approved != 1 {
		t.Fatalf("funnel.approved = %d, want 1", m.Funnel.Approved)
	}
}
