package services

import (
	"errors"
	"testing"

	"idea-incubator-api/models"
)

func TestSubmitAssignsScoreAndPendingStatus(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)

	svc := NewIdeaService(db, func(*models.Idea) int { return 42 })
	idea, err := svc.Submit(IdeaInput{
		Title:       "Mobile App X",
		Description: "Track portfolios on the go",
	}, submitter)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if idea.Status != models.StatusPendingModeration {
		t.Fatalf("status = %s, want PENDING_MODERATION", idea.Status)
	}
	if idea.BusinessValueScore != 42 {
		t.Fatalf("score = %d, want 42", idea.BusinessValueScore)
	}
	if idea.Category != "General" || idea.TShirtSize != "M" {
		t.Fatalf("defaults not applied: category=%s size=%s", idea.Category, idea.TShirtSize)
	}
	if idea.SubmitterID != submitter.ID {
		t.Fatalf("submitter = %s, want %s", idea.SubmitterID, submitter.ID)
	}
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	svc := NewIdeaService(db, nil)

	cases := []struct {
		name  string
		input IdeaInput
	}{
		{"empty title", IdeaInput{Description: "something"}},
		{"empty description", IdeaInput{Title: "something"}},
		{"unknown size", IdeaInput{Title: "a title", Description: "a description", TShirtSize: "XXL"}},
		{"xl without risk mitigation", IdeaInput{Title: "a title", Description: "a description", TShirtSize: "XL"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(tc.input, submitter); !errors.Is(err, ErrValidation) {
				t.Fatalf("Submit() error = %v, want ErrValidation", err)
			}
		})
	}

	var count int64
	db.Model(&models.Idea{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid submissions were persisted: %d rows", count)
	}
}

func TestSubmitXLRequiresSponsorAndRisk(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	svc := NewIdeaService(db, nil)

	risk := "Phased rollout"
	sponsor := "Sarah CIO"
	idea, err := svc.Submit(IdeaInput{
		Title:            "VR Retirement Workshops",
		Description:      "Immersive planning sessions",
		TShirtSize:       "XL",
		RiskMitigation:   &risk,
		ExecutiveSponsor: &sponsor,
	}, submitter)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if idea.RiskMitigation == nil || *idea.RiskMitigation != risk {
		t.Fatalf("risk mitigation not stored")
	}
}

func TestSubmitRejectsExactTitleDuplicate(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	seedIdea(t, db, "Mobile App X", models.StatusPendingModeration, submitter.ID)

	svc := NewIdeaService(db, nil)
	_, err := svc.Submit(IdeaInput{
		Title:       "Mobile App X",
		Description: "a different description entirely",
	}, submitter)
	if !errors.Is(err, ErrDuplicateIdea) {
		t.Fatalf("Submit() error = %v, want ErrDuplicateIdea", err)
	}

	var count int64
	db.Model(&models.Idea{}).Count(&count)
	if count != 1 {
		t.Fatalf("duplicate was persisted: %d rows", count)
	}
}

func TestFindDuplicatesSubstringContainment(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	seedIdea(t, db, "Gamification of Financial Literacy", models.StatusPendingModeration, submitter.ID)

	svc := NewIdeaService(db, nil)

	matches, err := svc.FindDuplicates("Financial Literacy")
	if err != nil {
		t.Fatalf("FindDuplicates() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}

	// Shorter than three characters never matches.
	matches, err = svc.FindDuplicates("Ga")
	if err != nil {
		t.Fatalf("FindDuplicates() error = %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("short text matched %d ideas", len(matches))
	}
}

func TestFindDuplicatesTreatsWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	seedIdea(t, db, "Gamification of Financial Literacy", models.StatusPendingModeration, submitter.ID)
	seedIdea(t, db, "Boost adoption by 50%", models.StatusPendingModeration, submitter.ID)

	svc := NewIdeaService(db, nil)

	// "%" and "_" in the candidate are literal characters, not LIKE wildcards.
	for _, text := range []string{"G%y", "F_n"} {
		matches, err := svc.FindDuplicates(text)
		if err != nil {
			t.Fatalf("FindDuplicates(%q) error = %v", text, err)
		}
		if len(matches) != 0 {
			t.Fatalf("FindDuplicates(%q) matched %d ideas via wildcard", text, len(matches))
		}
	}

	// A literal percent sign in stored titles still matches.
	matches, err := svc.FindDuplicates("by 50%")
	if err != nil {
		t.Fatalf("FindDuplicates() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1 literal match", len(matches))
	}
}

func TestToggleVoteTwiceRestoresLedger(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	voter := seedUser(t, db, "emp-2", "John", models.RoleInnovator)
	idea := seedIdea(t, db, "Mobile App X", models.StatusPendingModeration, submitter.ID)

	svc := NewIdeaService(db, nil)

	voted, err := svc.ToggleVote(idea.ID, voter)
	if err != nil {
		t.Fatalf("ToggleVote() error = %v", err)
	}
	if !voted {
		t.Fatalf("first toggle should create the vote")
	}

	var count int64
	db.Model(&models.Vote{}).Count(&count)
	if count != 1 {
		t.Fatalf("votes = %d, want 1", count)
	}

	voted, err = svc.ToggleVote(idea.ID, voter)
	if err != nil {
		t.Fatalf("ToggleVote() error = %v", err)
	}
	if voted {
		t.Fatalf("second toggle should remove the vote")
	}

	db.Model(&models.Vote{}).Count(&count)
	if count != 0 {
		t.Fatalf("votes = %d, want 0 after paired toggles", count)
	}
}

func TestToggleVoteUnknownIdea(t *testing.T) {
	db := newTestDB(t)
	voter := seedUser(t, db, "emp-2", "John", models.RoleInnovator)

	svc := NewIdeaService(db, nil)
	if _, err := svc.ToggleVote("missing", voter); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ToggleVote() error = %v, want ErrNotFound", err)
	}
}

func TestTrendingOrdersByVotesThenRecency(t *testing.T) {
	db := newTestDB(t)
	submitter := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	v1 := seedUser(t, db, "emp-2", "John", models.RoleInnovator)
	v2 := seedUser(t, db, "emp-3", "Lisa", models.RoleInnovator)

	quiet := seedIdea(t, db, "Quiet Idea", models.StatusPendingModeration, submitter.ID)
	popular := seedIdea(t, db, "Popular Idea", models.StatusModerated, submitter.ID)

	svc := NewIdeaService(db, nil)
	for _, voter := range []models.User{v1, v2} {
		if _, err := svc.ToggleVote(popular.ID, voter); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	if _, err := svc.ToggleVote(quiet.ID, v1); err != nil {
		t.Fatalf("vote: %v", err)
	}

	ideas, err := svc.Trending(10)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("len = %d, want 2", len(ideas))
	}
	if ideas[0].ID != popular.ID {
		t.Fatalf("first = %s, want the idea with more votes", ideas[0].Title)
	}
}

func TestUpdateForbiddenForOtherInnovator(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "emp-1", "Emma", models.RoleInnovator)
	other := seedUser(t, db, "emp-2", "John", models.RoleInnovator)
	idea := seedIdea(t, db, "Mobile App X", models.StatusPendingModeration, owner.ID)

	svc := NewIdeaService(db, nil)
	_, err := svc.Update(idea.ID, IdeaInput{Title: "Hijacked", Description: "nope"}, other)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Update() error = %v, want ErrForbidden", err)
	}
}
