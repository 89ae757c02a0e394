package nakama

import (
	"context"
	"database/sql"

	"heenenweer/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule loads config and wires RPCs for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if path := env[EnvMatchConfigPath]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			logger.Error("Failed to load match config from %s: %v", path, err)
			return err
		}
		logger.Info("Loaded match config from %s", path)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	logger.Info("Heen en weer Go module loaded.")
	return nil
}
