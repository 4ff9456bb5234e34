// Command shd-sim plays bot-only Shithead rounds against a local SQLite store.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"shithead/internal/sim"

	"github.com/pterm/pterm"
)

func main() {
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	cfg, err := sim.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		logger.Error("parse flags", "error", err)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := sim.Run(ctx, cfg, logger)
	if len(results) > 0 {
		render(results)
	}
	if err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func render(results []sim.Result) {
	data := pterm.TableData{{"Game", "Players", "Actions", "Loser", "Time"}}
	finished := 0
	for _, r := range results {
		loser := pterm.Gray("unfinished")
		if r.Finished {
			finished++
			loser = pterm.LightRed(r.Loser)
		}
		data = append(data, []string{
			r.GameID,
			strconv.Itoa(r.Players),
			strconv.Itoa(r.Actions),
			loser,
			r.Duration.Round(time.Millisecond).String(),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
	pterm.Info.Printfln("%d of %d rounds finished", finished, len(results))
}
