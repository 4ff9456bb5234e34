package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"shithead/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule reads configuration from the runtime env and wires the RPCs.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := config.ParseRuntime(env)
	if err != nil {
		return fmt.Errorf("shithead config: %w", err)
	}
	deck, err := config.LoadRulesConfig(cfg.RulesPath)
	if err != nil {
		logger.Warn("InitModule: Could not load rules config, using the standard deck: %v", err)
		deck, _ = config.LoadRulesConfig("")
	}
	if !cfg.TicketsEnabled() {
		logger.Warn("InitModule: SHITHEAD_TICKET_SECRET not set, %s is disabled.", RpcTicket)
	}

	if err := RegisterRPCs(initializer, NewModule(cfg, deck, nil)); err != nil {
		return err
	}

	logger.Info("Shithead Go module loaded (collection %s, %d-card deck).", cfg.StorageCollection, deck.Size())
	return nil
}
