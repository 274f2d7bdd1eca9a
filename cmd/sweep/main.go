// sweep plays the experiment grid of a plan file and prints how each search
// configuration did against its opponents.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/atout-engine/atout/automatic"
)

var (
	planPath  = pflag.String("plan", "", "yaml plan file; the default grid is used if empty")
	threads   = pflag.Int("threads", 1, "deals played at once")
	games     = pflag.Int("games", 0, "deals per matchup, overrides the plan")
	outPath   = pflag.String("out", "", "write a yaml summary here")
	histogram = pflag.Bool("histogram", true, "print a histogram of margins per matchup")
	seedsOut  = pflag.String("save-seeds", "", "generate deal seeds for the plan, write them here and exit")
	debug     = pflag.Bool("debug", false, "debug logging")
)

func main() {
	pflag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	plan := automatic.DefaultPlan()
	if *planPath != "" {
		var err error
		plan, err = automatic.LoadPlan(*planPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading plan")
		}
	}
	if *games > 0 {
		plan.Games = *games
	}

	if *seedsOut != "" {
		if err := automatic.SaveSeeds(automatic.GenerateSeeds(plan.Games), *seedsOut); err != nil {
			log.Fatal().Err(err).Msg("saving seeds")
		}
		log.Info().Int("seeds", plan.Games).Str("path", *seedsOut).Msg("seeds-written")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := automatic.NewRunner(plan, *threads)
	if err != nil {
		log.Fatal().Err(err).Msg("bad plan")
	}
	r.Progress = automatic.LogProgress
	start := time.Now()
	tallies, err := r.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("sweep stopped")
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("matchups", len(tallies)).Msg("sweep-finished")

	if err := automatic.WriteReport(os.Stdout, tallies, *histogram); err != nil {
		log.Fatal().Err(err).Msg("report")
	}
	if *outPath != "" {
		if err := automatic.SaveResults(*outPath, tallies); err != nil {
			log.Fatal().Err(err).Msg("saving results")
		}
	}
}
