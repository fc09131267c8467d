package models

// IntegrationConfig stores one opaque serialized settings blob per key, e.g. the
// ticketing credentials under JIRA_CONFIG.
type IntegrationConfig struct {
	Key   string `gorm:"primaryKey;column:key" json:"key"`
	Value string `gorm:"column:value" json:"value"`
}

func (IntegrationConfig) TableName() string {
	return "integration_configs"
}
