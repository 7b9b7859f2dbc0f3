package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// promptFallback fills empty operation prompt slots from the global prompt config
func promptFallback(opValue, opFile, globalValue, globalFile string) (string, string) {
	if opValue == "" {
		opValue = globalValue
	}
	if opFile == "" {
		opFile = globalFile
	}
	return opValue, opFile
}

// GetRoadmapConfig returns the AI configuration for roadmap operations with fallback to global config
func (c *Config) GetRoadmapConfig() OperationAIConfig {
	config := c.AI.Roadmap
	c.applyOperationDefaults(&config)

	sys := &config.CustomPrompts.SystemPrompts
	usr := &config.CustomPrompts.UserPrompts
	gSys := c.AI.CustomPrompts.SystemPrompts
	gUsr := c.AI.CustomPrompts.UserPrompts
	sys.Roadmap, sys.RoadmapFile = promptFallback(sys.Roadmap, sys.RoadmapFile, gSys.Roadmap, gSys.RoadmapFile)
	usr.Roadmap, usr.RoadmapFile = promptFallback(usr.Roadmap, usr.RoadmapFile, gUsr.Roadmap, gUsr.RoadmapFile)

	return config
}

// GetInsightsConfig returns the AI configuration for resume insight operations with fallback to global config
func (c *Config) GetInsightsConfig() OperationAIConfig {
	config := c.AI.Insights
	c.applyOperationDefaults(&config)

	sys := &config.CustomPrompts.SystemPrompts
	usr := &config.CustomPrompts.UserPrompts
	gSys := c.AI.CustomPrompts.SystemPrompts
	gUsr := c.AI.CustomPrompts.UserPrompts
	sys.Insights, sys.InsightsFile = promptFallback(sys.Insights, sys.InsightsFile, gSys.Insights, gSys.InsightsFile)
	usr.Insights, usr.InsightsFile = promptFallback(usr.Insights, usr.InsightsFile, gUsr.Insights, gUsr.InsightsFile)

	return config
}

// GetInterviewConfig returns the AI configuration for interview preparation operations with fallback to global config
func (c *Config) GetInterviewConfig() OperationAIConfig {
	config := c.AI.Interview
	c.applyOperationDefaults(&config)

	sys := &config.CustomPrompts.SystemPrompts
	usr := &config.CustomPrompts.UserPrompts
	gSys := c.AI.CustomPrompts.SystemPrompts
	gUsr := c.AI.CustomPrompts.UserPrompts
	sys.Interview, sys.InterviewFile = promptFallback(sys.Interview, sys.InterviewFile, gSys.Interview, gSys.InterviewFile)
	usr.Interview, usr.InterviewFile = promptFallback(usr.Interview, usr.InterviewFile, gUsr.Interview, gUsr.InterviewFile)

	return config
}

// GetLoadedRoadmapPrompts returns a copy of the loaded prompts for the roadmap operation
func (c *Config) GetLoadedRoadmapPrompts() OperationLoadedPrompts {
	return loadedPrompts.Roadmap
}

// GetLoadedInsightsPrompts returns a copy of the loaded prompts for the insights operation
func (c *Config) GetLoadedInsightsPrompts() OperationLoadedPrompts {
	return loadedPrompts.Insights
}

// GetLoadedInterviewPrompts returns a copy of the loaded prompts for the interview operation
func (c *Config) GetLoadedInterviewPrompts() OperationLoadedPrompts {
	return loadedPrompts.Interview
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
