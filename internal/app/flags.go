package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/25x8/dashboard-widgets/internal/config"
)

// ParseServerConfig собирает конфигурацию сервера.
// Приоритет: переменные окружения > флаги > файл конфигурации > значения по умолчанию.
func ParseServerConfig(args []string) (*config.ServerConfig, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	defaults := config.DefaultServerConfig()
	addrFlag := fs.String("a", defaults.Address, "HTTP server address")
	storeIntervalFlag := fs.Int("i", defaults.StoreInterval, "Store interval in seconds (0 for synchronous saving)")
	fileStoragePathFlag := fs.String("f", defaults.StoreFile, "File storage path")
	restoreFlag := fs.Bool("r", defaults.Restore, "Restore dashboard data from file at startup")
	databaseDSNFlag := fs.String("d", "", "Database connection string")
	keyFlag := fs.String("k", "", "Secret key for hashing")
	trustedSubnetFlag := fs.String("t", "", "Trusted subnet (CIDR) for write requests")
	logLevelFlag := fs.String("log-level", defaults.LogLevel, "Log level")
	systemFlag := fs.Bool("system", false, "Show host usage cards on the dashboard")
	configPath := fs.String("c", "", "Path to JSON or YAML config file")
	fs.StringVar(configPath, "config", "", "Path to JSON or YAML config file (alternative)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	path := *configPath
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		path = envConfig
	}

	cfg, err := config.LoadServerConfig(path)
	if err != nil {
		return nil, err
	}

	// флаги перекрывают файл, только если заданы явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.Address = *addrFlag
		case "i":
			cfg.StoreInterval = *storeIntervalFlag
		case "f":
			cfg.StoreFile = *fileStoragePathFlag
		case "r":
			cfg.Restore = *restoreFlag
		case "d":
			cfg.DatabaseDSN = *databaseDSNFlag
		case "k":
			cfg.Key = *keyFlag
		case "t":
			cfg.TrustedSubnet = *trustedSubnetFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "system":
			cfg.SystemMetrics = *systemFlag
		}
	})

	lookupString("ADDRESS", &cfg.Address)
	lookupString("FILE_STORAGE_PATH", &cfg.StoreFile)
	lookupString("DATABASE_DSN", &cfg.DatabaseDSN)
	lookupString("KEY", &cfg.Key)
	lookupString("TRUSTED_SUBNET", &cfg.TrustedSubnet)
	lookupString("LOG_LEVEL", &cfg.LogLevel)
	if err := lookupInt("STORE_INTERVAL", &cfg.StoreInterval); err != nil {
		return nil, err
	}
	if err := lookupBool("RESTORE", &cfg.Restore); err != nil {
		return nil, err
	}
	if err := lookupBool("SYSTEM_METRICS", &cfg.SystemMetrics); err != nil {
		return nil, err
	}

	if cfg.StoreInterval < 0 {
		return nil, fmt.Errorf("store interval must not be negative: %d", cfg.StoreInterval)
	}

	return cfg, nil
}

// ParseAgentConfig собирает конфигурацию агента с тем же приоритетом источников
func ParseAgentConfig(args []string) (*config.AgentConfig, error) {
	fs := flag.NewFlagSet("agent", flag.ContinueOnError)

	addr := fs.String("a", "localhost:8080", "HTTP server address")
	reportInterval := fs.Int("r", 10, "Report interval in seconds")
	pollInterval := fs.Int("p", 2, "Poll interval in seconds")
	keyFlag := fs.String("k", "", "Secret key for hashing")
	rateLimit := fs.Int("l", 2, "Number of outgoing requests")
	diskPath := fs.String("disk", "/", "Mount point for the disk usage card")
	logLevel := fs.String("log-level", "info", "Log level")
	configPath := fs.String("c", "", "Path to JSON or YAML config file")
	fs.StringVar(configPath, "config", "", "Path to JSON or YAML config file (alternative)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	path := *configPath
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		path = envConfig
	}

	cfg, err := config.LoadAgentConfig(path)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.Address = *addr
		case "r":
			cfg.ReportInterval = *reportInterval
		case "p":
			cfg.PollInterval = *pollInterval
		case "k":
			cfg.Key = *keyFlag
		case "l":
			cfg.RateLimit = *rateLimit
		case "disk":
			cfg.DiskPath = *diskPath
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	lookupString("ADDRESS", &cfg.Address)
	lookupString("KEY", &cfg.Key)
	lookupString("DISK_PATH", &cfg.DiskPath)
	lookupString("LOG_LEVEL", &cfg.LogLevel)
	for env, dst := range map[string]*int{
		"REPORT_INTERVAL": &cfg.ReportInterval,
		"POLL_INTERVAL":   &cfg.PollInterval,
		"RATE_LIMIT":      &cfg.RateLimit,
	} {
		if err := lookupInt(env, dst); err != nil {
			return nil, err
		}
	}

	if cfg.PollInterval <= 0 || cfg.ReportInterval <= 0 {
		return nil, fmt.Errorf("poll and report intervals must be positive: %d, %d", cfg.PollInterval, cfg.ReportInterval)
	}

	return cfg, nil
}

func lookupString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func lookupInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = n
	return nil
}

func lookupBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := config.GetBoolFromString(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = b
	return nil
}
