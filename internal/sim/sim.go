// Package sim runs bot-only Shithead rounds through the dispatcher and a
// SQLite or in-memory snapshot store.
package sim

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"shithead/internal/app"
	"shithead/internal/bot"
	"shithead/internal/config"
	"shithead/internal/domain"
	"shithead/internal/ports"
	"shithead/internal/storage/memory"
	"shithead/internal/storage/sqlite"

	"github.com/caarlos0/env/v11"
)

// MemoryDB as the database path keeps rounds in process memory.
const MemoryDB = ":memory:"

// Config holds simulator configuration.
type Config struct {
	DBPath     string `env:"SHITHEAD_SIM_DB"          envDefault:"shithead-sim.db"`
	Games      int    `env:"SHITHEAD_SIM_GAMES"       envDefault:"10"`
	Players    int    `env:"SHITHEAD_SIM_PLAYERS"     envDefault:"3"`
	Seed       int64  `env:"SHITHEAD_SIM_SEED"        envDefault:"1"`
	MaxActions int    `env:"SHITHEAD_SIM_MAX_ACTIONS" envDefault:"5000"`
	RosterPath string `env:"SHITHEAD_SIM_ROSTER"`

	Runtime config.RuntimeConfig
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	runtimeCfg, err := config.LoadRuntime()
	if err != nil {
		return Config{}, err
	}
	cfg.Runtime = runtimeCfg

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file, or "+MemoryDB+" to keep rounds in memory")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "Number of rounds to simulate")
	fs.IntVar(&cfg.Players, "players", cfg.Players, "Bots per round (2-5)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Shuffle seed")
	fs.IntVar(&cfg.MaxActions, "max-actions", cfg.MaxActions, "Abandon a round after this many actions")
	fs.StringVar(&cfg.RosterPath, "roster", cfg.RosterPath, "Bot roster JSON file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Games <= 0 || cfg.MaxActions <= 0 {
		return Config{}, errors.New("games and max-actions must be positive")
	}
	return cfg, nil
}

// Result summarizes one simulated round.
type Result struct {
	GameID   string
	Players  int
	Actions  int
	Finished bool
	Loser    string
	Duration time.Duration
}

// Run plays cfg.Games rounds and returns one result per round.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) ([]Result, error) {
	deck, err := config.LoadRulesConfig(cfg.Runtime.RulesPath)
	if err != nil {
		return nil, err
	}
	roster := bot.NewRoster(nil)
	if cfg.RosterPath != "" {
		if roster, err = bot.LoadRoster(cfg.RosterPath); err != nil {
			return nil, err
		}
	}

	store, closeStore, err := openStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	svc := app.NewService(rand.New(rand.NewSource(cfg.Seed)), deck)
	d := app.NewDispatcher(svc, store, &logNotifier{logger: logger})

	results := make([]Result, 0, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		agents := make([]*bot.Agent, cfg.Players)
		seated := make(map[string]bool, cfg.Players)
		for j := range agents {
			if agents[j], err = roster.NewAgent(j); err != nil {
				return results, err
			}
			if seated[agents[j].ID] {
				return results, fmt.Errorf("roster has fewer than %d bots", cfg.Players)
			}
			seated[agents[j].ID] = true
		}
		res, err := playRound(ctx, d, agents, cfg)
		if err != nil {
			return results, fmt.Errorf("round %d: %w", i+1, err)
		}
		if res.Loser != "" {
			if name := roster.DisplayName(res.Loser); name != "" {
				res.Loser = name
			}
		}
		logger.Info("round finished", "game", res.GameID, "actions", res.Actions, "loser", res.Loser, "finished", res.Finished)
		results = append(results, res)
	}

	ended, err := store.Count(ctx, domain.PhaseEnd)
	if err != nil {
		return results, err
	}
	logger.Info("store summary", "db", cfg.DBPath, "ended", ended)
	return results, nil
}

type roundStore interface {
	ports.SnapshotStore
	Count(ctx context.Context, phase domain.Phase) (int, error)
}

func openStore(path string) (roundStore, func() error, error) {
	if path == MemoryDB {
		return memory.NewStore(), func() error { return nil }, nil
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func playRound(ctx context.Context, d *app.Dispatcher, agents []*bot.Agent, cfg Config) (Result, error) {
	start := time.Now()
	gameID, out, err := d.Create(ctx, agents[0].ID, len(agents))
	if err != nil {
		return Result{}, err
	}
	res := Result{GameID: gameID, Players: len(agents)}
	broadcast(agents, out.Events)

	for _, a := range agents[1:] {
		if out, err = d.Handle(ctx, gameID, app.Join(a.ID)); err != nil {
			return res, err
		}
		broadcast(agents, out.Events)
	}

	state := out.State
	for state.Phase != domain.PhaseEnd && res.Actions < cfg.MaxActions {
		action, err := nextAction(agents, state)
		if err != nil {
			return res, err
		}
		if out, err = d.Handle(ctx, gameID, action); err != nil {
			return res, fmt.Errorf("%s by %s: %w", action.Kind, action.PlayerID, err)
		}
		res.Actions++
		state = out.State
		broadcast(agents, out.Events)

		if cfg.Runtime.BotDelay > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(cfg.Runtime.BotDelay):
			}
		}
	}

	res.Finished = state.Phase == domain.PhaseEnd
	for _, p := range state.Players {
		if p.IsShithead {
			res.Loser = p.ID
		}
	}
	res.Duration = time.Since(start)
	return res, nil
}

func nextAction(agents []*bot.Agent, state *domain.GameState) (app.Action, error) {
	for _, a := range agents {
		action, ok, err := a.Next(state)
		if err != nil {
			return app.Action{}, err
		}
		if ok {
			return action, nil
		}
	}
	return app.Action{}, fmt.Errorf("no bot can act in phase %s", state.Phase)
}

func broadcast(agents []*bot.Agent, events []app.Event) {
	for _, a := range agents {
		for _, ev := range events {
			a.OnGameEvent(ev)
		}
	}
}

// logNotifier writes notifications to the debug log in place of a socket.
type logNotifier struct {
	logger *slog.Logger
}

func (n *logNotifier) Notify(ctx context.Context, gameID string, notes []ports.Notification) error {
	for _, note := range notes {
		n.logger.Debug("notify", "game", gameID, "user", note.UserID, "subject", note.Subject)
	}
	return nil
}
