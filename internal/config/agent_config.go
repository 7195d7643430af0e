package config

type AgentConfig struct {
	Address        string `json:"address" yaml:"address"`
	ReportInterval int    `json:"report_interval" yaml:"report_interval"`
	PollInterval   int    `json:"poll_interval" yaml:"poll_interval"`
	Key            string `json:"key" yaml:"key"`
	RateLimit      int    `json:"rate_limit" yaml:"rate_limit"`
	DiskPath       string `json:"disk_path" yaml:"disk_path"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
}

func LoadAgentConfig(filePath string) (*AgentConfig, error) {
	config := &AgentConfig{
		Address:        "localhost:8080",
		ReportInterval: 10,
		PollInterval:   2,
		RateLimit:      2,
		DiskPath:       "/",
		LogLevel:       "info",
	}

	if filePath != "" {
		if err := decodeFile(filePath, config); err != nil {
			return nil, err
		}
	}

	return config, nil
}
