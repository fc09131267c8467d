package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"idea-incubator-api/models"

	"gorm.io/gorm"
)

// JiraConfigKey is the integration_configs key holding the ticketing credentials.
const JiraConfigKey = "JIRA_CONFIG"

// JiraConfig is the stored ticketing configuration.
type JiraConfig struct {
	URL        string `json:"url"`
	ProjectKey string `json:"projectKey"`
	Email      string `json:"email"`
	APIToken   string `json:"apiToken"`
}

// Complete reports whether every field needed for a real API call is present.
func (c JiraConfig) Complete() bool {
	return c.URL != "" && c.ProjectKey != "" && c.Email != "" && c.APIToken != ""
}

// TicketRef is the tracker's handle for a created issue.
type TicketRef struct {
	Key    string `json:"key"`
	Status string `json:"status"`
}

// TicketSyncService creates external tickets for approved ideas. With incomplete
// configuration it falls back to demo-mode references so the lifecycle stays fully
// exercisable without live credentials.
type TicketSyncService struct {
	db     *gorm.DB
	client *http.Client
}

func NewTicketSyncService(db *gorm.DB) *TicketSyncService {
	return &TicketSyncService{
		db:     db,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// LoadConfig reads the stored ticketing configuration. A missing row is returned
// as an empty (incomplete) config, not an error.
func (s *TicketSyncService) LoadConfig() (JiraConfig, error) {
	var record models.IntegrationConfig
	err := s.db.Where("`key` = ?", JiraConfigKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JiraConfig{}, nil
	}
	if err != nil {
		return JiraConfig{}, err
	}

	var cfg JiraConfig
	if err := json.Unmarshal([]byte(record.Value), &cfg); err != nil {
		return JiraConfig{}, fmt.Errorf("parse %s: %w", JiraConfigKey, err)
	}
	return cfg, nil
}

// SaveConfig upserts the ticketing configuration blob.
func (s *TicketSyncService) SaveConfig(cfg JiraConfig) error {
	value, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	record := models.IntegrationConfig{Key: JiraConfigKey, Value: string(value)}
	return s.db.Save(&record).Error
}

// DemoTicketRef generates the local mock reference used when the tracker is not
// configured. The DEMO- prefix keeps mock keys distinguishable from real ones.
func DemoTicketRef() TicketRef {
	return TicketRef{
		Key:    fmt.Sprintf("DEMO-%d", rand.Intn(1000)+1000),
		Status: "To Do (Demo Mode)",
	}
}

type adfParagraph struct {
	Type    string `json:"type"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func paragraph(text string) adfParagraph {
	p := adfParagraph{Type: "paragraph"}
	p.Content = append(p.Content, struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: "text", Text: text})
	return p
}

// CreateTicket creates a real issue in the configured tracker. Callers are
// expected to have checked cfg.Complete() first.
func (s *TicketSyncService) CreateTicket(idea *models.Idea, submitterName string, cfg JiraConfig) (TicketRef, error) {
	description := idea.Description
	if description == "" {
		description = "No description provided"
	}

	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			"project": map[string]string{"key": cfg.ProjectKey},
			"summary": idea.Title,
			"description": map[string]interface{}{
				"type":    "doc",
				"version": 1,
				"content": []adfParagraph{
					paragraph(description),
					paragraph(fmt.Sprintf("Submitted by: %s", submitterName)),
					paragraph(fmt.Sprintf("Category: %s", idea.Category)),
					paragraph(fmt.Sprintf("Business Value Score: %d", idea.BusinessValueScore)),
					paragraph(fmt.Sprintf("T-Shirt Size: %s", idea.TShirtSize)),
				},
			},
			"issuetype": map[string]string{"name": "Story"},
			"labels":    []string{"innovation", "idea-incubator", strings.ToLower(idea.Category)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return TicketRef{}, err
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(cfg.URL, "/")+"/rest/api/3/issue", bytes.NewReader(body))
	if err != nil {
		return TicketRef{}, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIToken))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return TicketRef{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return TicketRef{}, fmt.Errorf("ticket API error %d: %s", resp.StatusCode, string(detail))
	}

	var created struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return TicketRef{}, err
	}
	return TicketRef{Key: created.Key, Status: "To Do"}, nil
}
