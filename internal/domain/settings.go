package domain

import "context"

// Well-known configuration keys.
const (
	ConfigKeyEventName    = "eventName"
	ConfigKeyCommunity    = "community"
	ConfigKeyDate         = "date"
	ConfigKeyDecisionDate = "decisionDate"
	ConfigKeyReleaseDate  = "releaseDate"
	ConfigKeyOpen         = "open"
)

// CfpConfig is a single named configuration setting. The value is stored
// as text; boolean settings use "true"/"false".
type CfpConfig struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ApplicationSettings is the aggregate read model assembled from the
// individual configuration entries.
// swagger:model ApplicationSettings
type ApplicationSettings struct {
	EventName    string `json:"eventName"`
	Community    string `json:"community"`
	Date         string `json:"date"`
	DecisionDate string `json:"decisionDate"`
	ReleaseDate  string `json:"releaseDate"`
	Open         bool   `json:"open"`
	Configured   bool   `json:"configured"`
}

// ConfigRepository defines the interface for configuration storage.
type ConfigRepository interface {
	FindValueByKey(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ConfigService defines the business logic for application settings.
type ConfigService interface {
	AppConfig(ctx context.Context) (*ApplicationSettings, error)
	IsCfpOpen(ctx context.Context) (bool, error)
	OpenCfp(ctx context.Context) error
	CloseCfp(ctx context.Context) error
}
