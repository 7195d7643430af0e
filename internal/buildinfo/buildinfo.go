package buildinfo

import (
	"go.uber.org/zap"

	"github.com/25x8/dashboard-widgets/internal/logger"
)

// Заполняются через -ldflags "-X github.com/25x8/dashboard-widgets/internal/buildinfo.BuildVersion=..."
var (
	BuildVersion = "N/A"
	BuildDate    = "N/A"
	BuildCommit  = "N/A"
)

func Fields(binary string) []zap.Field {
	return []zap.Field{
		zap.String("binary", binary),
		zap.String("version", BuildVersion),
		zap.String("date", BuildDate),
		zap.String("commit", BuildCommit),
	}
}

// Log пишет информацию о сборке при старте бинарника
func Log(binary string) {
	logger.Log.Info("Build info", Fields(binary)...)
}
