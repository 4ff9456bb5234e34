package main

import (
	"context"
	"database/sql"

	"shithead/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is never called; the package is loaded as a Nakama plugin
// (-buildmode=plugin) but needs it to build with `go build ./...`.
func main() {}
