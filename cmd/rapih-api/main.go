// @title         rapih API
// @version       0.1.0
// @description   Text cleaning endpoints for Indonesian user reviews

// Command rapih-api serves the cleaning pipeline over HTTP
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rapih/internal/core/clean"
	"rapih/internal/core/lexicon"
	"rapih/internal/core/version"
	"rapih/internal/modkit/repokit"
	"rapih/internal/platform/config"
	"rapih/internal/platform/logger"
	phttp "rapih/internal/platform/net/http"
	"rapih/internal/platform/store"

	"rapih/internal/services/api"
)

const service = "rapih-api"

func main() {
	showVersion := flag.Bool("version", false, "print build info and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Info(service).String())
		return
	}

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = service
	}
	logger.Init(opt)
	l := logger.Get()

	root := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lex, err := lexicon.Open(root.MayString("CORE_CLEAN_LEXICON", ""))
	if err != nil {
		l.Fatal().Err(err).Msg("load lexicon")
	}
	p, err := clean.New(lex)
	if err != nil {
		l.Fatal().Err(err).Msg("build pipeline")
	}
	l.Info().Interface("lexicon", lex.Stats()).Msg("lexicon loaded")

	// storage is optional for the API; meta/ready reports what is wired
	st, err := store.Open(ctx, store.FromEnv(root, service), store.WithLogger(l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if root.MayBool("API_REQUIRE_STORE", false) {
		repokit.MustGuard(ctx, st)
	}

	srv := phttp.NewServer(root)
	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Pipeline:       p,
		EnableSwagger:  root.MayBool("API_SWAGGER", true),
		EnableProfiler: root.MayBool("API_PROFILER", false),
	})

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
