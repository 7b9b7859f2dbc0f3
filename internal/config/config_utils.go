package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// applyFallbacks fills in derived defaults after viper unmarshalling
func (c *Config) applyFallbacks() {
	c.applyServerAPIKeyFallbacks()
	c.applyTLSDefaults()
	c.applyStorageDefaults()

	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = serviceInstanceID(c.Observability.ServiceName)
	}
}

// applyServerAPIKeyFallbacks reads API keys from the environment when
// the config file sets none. Viper cannot split comma-separated env
// values into a slice on its own.
func (c *Config) applyServerAPIKeyFallbacks() {
	if len(c.Server.APIKeys) > 0 {
		return
	}
	apiKeysEnv := os.Getenv("CAREERPATH_SERVER_APIKEYS")
	if apiKeysEnv == "" {
		return
	}
	c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
	for i, key := range c.Server.APIKeys {
		c.Server.APIKeys[i] = strings.TrimSpace(key)
	}
}

func (c *Config) applyTLSDefaults() {
	// Mutual TLS without an explicit policy requires client certificates
	if c.Server.TLS.Mode == "mutual" && c.Server.TLS.ClientAuthPolicy == "" {
		c.Server.TLS.ClientAuthPolicy = "require"
	}

	if c.Server.TLS.MinVersion == "" && c.Server.TLS.Mode != "disabled" {
		c.Server.TLS.MinVersion = "1.2"
	}
}

// applyStorageDefaults places the history database under the user's home
// directory unless a path is configured
func (c *Config) applyStorageDefaults() {
	if !c.Storage.Enabled || c.Storage.Path != "" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		c.Storage.Path = "history.db"
		return
	}
	c.Storage.Path = filepath.Join(home, ".careerpath", "history.db")
}

func serviceInstanceID(serviceName string) string {
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// logConfigurationSources prints where the effective configuration came
// from. Values that look like secrets are masked.
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	envVars := []string{
		"CAREERPATH_AI_APIKEY",
		"CAREERPATH_AI_PROVIDER",
		"CAREERPATH_AI_MODEL",
		"CAREERPATH_SERVER_PORT",
		"CAREERPATH_SERVER_HOST",
		"CAREERPATH_APP_LOGLEVEL",
		"CAREERPATH_STORAGE_PATH",
		"CAREERPATH_VAULT_ENABLED",
		"GEMINI_API_KEY", // legacy
	}

	log.Println("[CONFIG] Environment variables:")
	anySet := false
	for _, envVar := range envVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		anySet = true
		if strings.Contains(strings.ToLower(envVar), "key") {
			log.Printf("[CONFIG]   %s=***MASKED***", envVar)
		} else {
			log.Printf("[CONFIG]   %s=%s", envVar, value)
		}
	}
	if !anySet {
		log.Println("[CONFIG]   None set")
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] AI Provider: %s", c.AI.Provider)
	log.Printf("[CONFIG] AI Model: %s", c.AI.Model)
	if c.AI.APIKey != "" {
		log.Println("[CONFIG] AI API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] AI API Key: ***NOT SET*** (deterministic fallback mode)")
	}
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] TLS Mode: %s", c.Server.TLS.Mode)
	log.Printf("[CONFIG] History Storage: enabled=%t path=%s", c.Storage.Enabled, c.Storage.Path)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)

	log.Println("[CONFIG] === Operation-Specific AI Configurations ===")
	log.Printf("[CONFIG] Roadmap - Provider: %s, Model: %s", c.AI.Roadmap.Provider, c.AI.Roadmap.Model)
	log.Printf("[CONFIG] Insights - Provider: %s, Model: %s", c.AI.Insights.Provider, c.AI.Insights.Model)
	log.Printf("[CONFIG] Interview - Provider: %s, Model: %s", c.AI.Interview.Provider, c.AI.Interview.Model)

	log.Println("[CONFIG] =====================================")
}
