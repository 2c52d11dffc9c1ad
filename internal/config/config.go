package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// EngineConfig maps a display name shown in the search UI to the backend
// engine it queries. DatastoreID is only needed for document listing.
type EngineConfig struct {
	Name        string `mapstructure:"name"`
	EngineID    string `mapstructure:"engine_id"`
	DatastoreID string `mapstructure:"datastore_id"`
}

// WidgetConfig identifies a pre-built search widget rendered on the homepage.
type WidgetConfig struct {
	Name     string `mapstructure:"name"`
	ConfigID string `mapstructure:"config_id"`
}

type Config struct {
	Server struct {
		Port      string
		RateLimit int
	}
	Google struct {
		ProjectID string
		Location  string
	}
	Discovery struct {
		Endpoint string
		APIKey   string
	}
	Engines       []EngineConfig
	SummaryModels []string
	Languages     []string
	Widgets       []WidgetConfig
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	var config Config

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.ratelimit", 60)
	viper.SetDefault("google.location", "global")
	viper.SetDefault("discovery.endpoint", "https://discoveryengine.googleapis.com")
	viper.SetDefault("summary_models", []string{"stable", "preview"})
	viper.SetDefault("languages", []string{"en"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config.Server.Port = viper.GetString("server.port")
	config.Server.RateLimit = viper.GetInt("server.ratelimit")
	config.Google.ProjectID = viper.GetString("google.project_id")
	config.Google.Location = viper.GetString("google.location")
	config.Discovery.Endpoint = viper.GetString("discovery.endpoint")
	config.Discovery.APIKey = os.Getenv("DISCOVERY_API_KEY")
	config.SummaryModels = viper.GetStringSlice("summary_models")
	config.Languages = viper.GetStringSlice("languages")

	if err := viper.UnmarshalKey("engines", &config.Engines); err != nil {
		return nil, fmt.Errorf("invalid engines config: %w", err)
	}
	if err := viper.UnmarshalKey("widgets", &config.Widgets); err != nil {
		return nil, fmt.Errorf("invalid widgets config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Google.ProjectID == "" {
		return fmt.Errorf("google.project_id is required")
	}
	if c.Google.Location == "" {
		return fmt.Errorf("google.location is required")
	}
	if c.Discovery.Endpoint == "" {
		return fmt.Errorf("discovery.endpoint is required")
	}
	if len(c.Engines) == 0 {
		return fmt.Errorf("at least one engine must be configured")
	}
	return nil
}
