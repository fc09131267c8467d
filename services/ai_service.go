package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"idea-incubator-api/models"
)

// AIPrincipal is the actor recorded for generated-content audit entries.
var AIPrincipal = models.User{ID: "SYSTEM_AI", Name: "System AI", Role: RoleSystem}

// LaunchKit is the go-to-market asset bundle generated when an idea's epic
// completes.
type LaunchKit struct {
	Tagline      string   `json:"tagline"`
	ValueProp    string   `json:"value_prop"`
	SocialPost   string   `json:"social_post"`
	ReleaseNotes []string `json:"release_notes"`
}

// SWOTAnalysis is the boardroom's quick strategic read on an idea.
type SWOTAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// AIService generates marketing content from technical summaries. Without an
// OPENAI_API_KEY it returns canned content so every flow stays exercisable
// offline.
type AIService struct {
	apiKey string
}

func NewAIService() *AIService {
	return &AIService{apiKey: os.Getenv("OPENAI_API_KEY")}
}

func mockLaunchKit() *LaunchKit {
	return &LaunchKit{
		Tagline:    "Innovation delivered.",
		ValueProp:  "This feature adds significant value to your workflow by optimizing core processes.",
		SocialPost: "We just accepted a new feature! 🚀 Check it out now. #Innovation",
		ReleaseNotes: []string{
			"Feature imported from JIRA",
			"Optimized performance",
			"Bug fixes",
		},
	}
}

// GenerateLaunchKit turns an epic's title and description into launch copy.
// Returns nil (not an error) when generation fails; callers treat the kit as
// optional enrichment.
func (s *AIService) GenerateLaunchKit(ctx context.Context, summary, description string) *LaunchKit {
	if s.apiKey == "" {
		log.Println("OPENAI_API_KEY not set, returning mock launch kit")
		return mockLaunchKit()
	}

	prompt := fmt.Sprintf(`You are a Senior Product Marketing Manager at an Enterprise SaaS company.

SOURCE MATERIAL (Technical Specs):
Title: %s
Details: %s

TASK:
Create a Go-to-Market launch kit. Return strictly valid JSON with the following keys:
1. "tagline": A punchy, 1-sentence hook (max 10 words).
2. "value_prop": A clear paragraph explaining "Why this matters" to a non-technical CEO.
3. "social_post": A LinkedIn post (professional but engaging) with emojis.
4. "release_notes": A bulleted list of features cleaned of developer jargon.`, summary, description)

	client := openai.NewClient(s.apiKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4TurboPreview,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a marketing expert assistant."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("Launch kit generation failed: %v", err)
		return nil
	}
	if len(resp.Choices) == 0 {
		return nil
	}

	var kit LaunchKit
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &kit); err != nil {
		log.Printf("Launch kit response was not valid JSON: %v", err)
		return nil
	}
	return &kit
}

// GenerateSWOT returns a canned strategic analysis for the boardroom view.
func (s *AIService) GenerateSWOT(description string) SWOTAnalysis {
	return SWOTAnalysis{
		Strengths:     []string{"Innovative approach", "Internal synergy", "High potential ROI"},
		Weaknesses:    []string{"Requires significant dev resources", "Unproven market fit"},
		Opportunities: []string{"First to market advantage", "Can leverage existing client base"},
		Threats:       []string{"Competitor X is building similar", "Tech debt accumulation"},
	}
}
