package config

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds AI service configuration with per-operation overrides.
// AI is optional: when no API key is configured the service falls back to
// deterministic, skill-driven output.
type AIConfig struct {
	// Global defaults applied to every operation unless overridden
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	APIKey           string        `mapstructure:"apiKey"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	Temperature      float32       `mapstructure:"temperature"`
	UseSystemPrompts bool          `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig  `mapstructure:"customPrompts"`

	// Operation-specific configurations
	Roadmap   OperationAIConfig `mapstructure:"roadmap"`
	Insights  OperationAIConfig `mapstructure:"insights"`
	Interview OperationAIConfig `mapstructure:"interview"`
}

// CircuitBreakerConfig holds circuit breaker settings for an AI operation
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// OperationAIConfig holds AI configuration for a specific operation.
// Pointer fields distinguish "not set" from zero values so global defaults
// can be applied selectively.
type OperationAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// PromptConfig holds custom prompt configuration
type PromptConfig struct {
	SystemPrompts SystemPrompts `mapstructure:"systemPrompts"`
	UserPrompts   UserPrompts   `mapstructure:"userPrompts"`
}

// SystemPrompts contains system-level instructions for each AI operation
type SystemPrompts struct {
	Roadmap       string `mapstructure:"roadmap"`
	RoadmapFile   string `mapstructure:"roadmapFile"`
	Insights      string `mapstructure:"insights"`
	InsightsFile  string `mapstructure:"insightsFile"`
	Interview     string `mapstructure:"interview"`
	InterviewFile string `mapstructure:"interviewFile"`
}

// UserPrompts contains user-level prompt templates for each AI operation
type UserPrompts struct {
	Roadmap       string `mapstructure:"roadmap"`
	RoadmapFile   string `mapstructure:"roadmapFile"`
	Insights      string `mapstructure:"insights"`
	InsightsFile  string `mapstructure:"insightsFile"`
	Interview     string `mapstructure:"interview"`
	InterviewFile string `mapstructure:"interviewFile"`
}

// ServerConfig holds the HTTP listener settings along with TLS,
// authentication and rate limiting
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	TLS       TLSConfig       `mapstructure:"tls"`
	APIKeys   []string        `mapstructure:"apiKeys"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// TLSConfig describes the server's TLS posture. Certificates come either
// from PEM files or from inline PEM content (e.g. fetched from Vault);
// content takes precedence when both are set.
type TLSConfig struct {
	// Mode is one of "disabled", "server" or "mutual"
	Mode     string `mapstructure:"mode"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
	CAFile   string `mapstructure:"caFile"` // required for mutual mode

	CertContent string `mapstructure:"certContent"`
	KeyContent  string `mapstructure:"keyContent"`
	CAContent   string `mapstructure:"caContent"`

	MinVersion   string   `mapstructure:"minVersion"` // "1.2" or "1.3"
	CipherSuites []string `mapstructure:"cipherSuites"`
	// ClientAuthPolicy applies in mutual mode: "require", "request" or "verify"
	ClientAuthPolicy string `mapstructure:"clientAuthPolicy"`

	InsecureSkipVerify bool   `mapstructure:"insecureSkipVerify"`
	ServerName         string `mapstructure:"serverName"`

	AutoReload AutoReloadConfig `mapstructure:"autoReload"`
}

// AutoReloadConfig governs automatic certificate reloads: periodic expiry
// checks plus optional file and Vault watchers
type AutoReloadConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	CheckInterval time.Duration `mapstructure:"checkInterval"`
	// PreemptiveRenewal triggers a reload this long before expiry
	PreemptiveRenewal time.Duration `mapstructure:"preemptiveRenewal"`
	MaxRetries        int           `mapstructure:"maxRetries"`
	RetryDelay        time.Duration `mapstructure:"retryDelay"`

	FileWatcher  FileWatcherConfig  `mapstructure:"fileWatcher"`
	VaultWatcher VaultWatcherConfig `mapstructure:"vaultWatcher"`
}

// FileWatcherConfig controls fsnotify-based certificate file watching
type FileWatcherConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DebounceDelay time.Duration `mapstructure:"debounceDelay"`
}

// VaultWatcherConfig controls polling Vault for updated TLS certificates
type VaultWatcherConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	PollInterval   time.Duration `mapstructure:"pollInterval"`
	AutoRenew      bool          `mapstructure:"autoRenew"`      // renew leases automatically
	RenewThreshold time.Duration `mapstructure:"renewThreshold"` // renew this long before lease expiry
	SecretPath     string        `mapstructure:"secretPath"`
}

// RateLimitConfig configures the token-bucket request limiter
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	RequestsPerMin int           `mapstructure:"requestsPerMin"`
	BurstCapacity  int           `mapstructure:"burstCapacity"`
	ByIP           bool          `mapstructure:"byIP"`
	ByAPIKey       bool          `mapstructure:"byAPIKey"`
	Window         time.Duration `mapstructure:"window"`
}

// AppConfig holds application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// StorageConfig holds analysis history persistence configuration
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"` // Enable SQLite-backed history
	Path    string `mapstructure:"path"`    // Database file path (defaults to $HOME/.careerpath/history.db)
}

// ObservabilityConfig groups tracing, metrics and exporter settings
type ObservabilityConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Resource identity attached to every span and metric
	ServiceName     string `mapstructure:"serviceName"`
	ServiceVersion  string `mapstructure:"serviceVersion"`
	ServiceInstance string `mapstructure:"serviceInstance"`

	ConsoleOutput bool    `mapstructure:"consoleOutput"`
	SampleRate    float64 `mapstructure:"sampleRate"`

	Tracing       TracingConfig       `mapstructure:"tracing"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics CustomMetricsConfig `mapstructure:"customMetrics"`
	Console       ConsoleConfig       `mapstructure:"console"`
	Prometheus    PrometheusConfig    `mapstructure:"prometheus"`
	OTLP          OTLPConfig          `mapstructure:"otlp"`
	HealthCheck   HealthCheckConfig   `mapstructure:"healthCheck"`
}

// TracingConfig controls span export
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig controls metric collection cadence
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig controls stdout telemetry output
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig toggles the custom instrument groups individually
type CustomMetricsConfig struct {
	AIOperations    AIOperationsMetricsConfig   `mapstructure:"aiOperations"`
	BusinessMetrics BusinessMetricsConfig       `mapstructure:"businessMetrics"`
	Infrastructure  InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

// AIOperationsMetricsConfig selects which AI call measurements are recorded
type AIOperationsMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackDuration   bool `mapstructure:"trackDuration"`
	TrackTokenUsage bool `mapstructure:"trackTokenUsage"`
	TrackModelInfo  bool `mapstructure:"trackModelInfo"`
}

// BusinessMetricsConfig selects which scoring counters are recorded
type BusinessMetricsConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	TrackSuccessRates bool `mapstructure:"trackSuccessRates"`
	TrackContentSizes bool `mapstructure:"trackContentSizes"`
}

// InfrastructureMetricsConfig selects rate-limit and certificate gauges
type InfrastructureMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackRateLimits bool `mapstructure:"trackRateLimits"`
	TrackCertExpiry bool `mapstructure:"trackCertExpiry"`
}

// PrometheusConfig controls the scrape endpoint
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig controls the OTLP HTTP exporters
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig bounds the /health probe work
type HealthCheckConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	AIModelCheckTimeout time.Duration `mapstructure:"aiModelCheckTimeout"`
}

// LoadConfig builds the effective configuration. Precedence, lowest to
// highest: built-in defaults, yaml config file, CAREERPATH_* environment
// variables, then Vault-loaded secrets applied later by the vault layer.
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	v.SetEnvPrefix("CAREERPATH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'CAREERPATH'")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/careerpath/")
	v.AddConfigPath("$HOME/.careerpath")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/careerpath/, $HOME/.careerpath, .")

	// A missing config file is fine; any other read failure is not
	configFileUsed := ""
	switch err := v.ReadInConfig(); {
	case err == nil:
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	default:
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyFallbacks()
	config.logConfigurationSources(configFileUsed)

	if err := config.validatePromptFiles(); err != nil {
		return nil, fmt.Errorf("prompt file validation failed: %w", err)
	}
	if err := config.loadPromptsFromFiles(); err != nil {
		return nil, fmt.Errorf("failed to load custom prompts from files: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid.
// An empty AI API key is valid: analysis falls back to deterministic output.
func (c *Config) Validate() error {
	switch {
	case c.AI.Timeout <= 0:
		return fmt.Errorf("AI timeout must be positive")
	case c.Server.Port == "":
		return fmt.Errorf("server port is required")
	case !slices.Contains(c.App.SupportedFormats, c.App.DefaultFormat):
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	case c.Storage.Enabled && c.Storage.Path == "":
		return fmt.Errorf("storage path is required when storage is enabled")
	}

	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}
	return nil
}

// HasAPIKey reports whether any AI operation can reach a provider
func (c *Config) HasAPIKey() bool {
	return c.AI.APIKey != "" ||
		c.AI.Roadmap.APIKey != "" ||
		c.AI.Insights.APIKey != "" ||
		c.AI.Interview.APIKey != ""
}

// GlobalConfig holds the loaded application configuration
var GlobalConfig *Config

// InitConfig initializes the global configuration
func InitConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	GlobalConfig = config
	return nil
}
