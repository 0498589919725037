// Command rapih-corpus cleans the reviews table into reviews_clean
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rapih/internal/core/clean"
	"rapih/internal/core/lexicon"
	"rapih/internal/core/version"
	"rapih/internal/modkit"
	"rapih/internal/modkit/module"
	"rapih/internal/modkit/repokit"
	"rapih/internal/platform/config"
	"rapih/internal/platform/logger"
	"rapih/internal/platform/store"

	cleansvc "rapih/internal/services/clean/service"
	"rapih/internal/services/corpus/domain"
	"rapih/internal/services/corpus/migrations"
	corpusmod "rapih/internal/services/corpus/module"
)

const service = "rapih-corpus"

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	var (
		fFrom     = flag.Int64("from", 0, "first review id, inclusive; 0 is open")
		fTo       = flag.Int64("to", 0, "last review id, inclusive; 0 is open")
		fMax      = flag.Int("max", 0, "stop after this many reviews; 0 is unlimited")
		fProfile  = flag.String("profile", "", "tokenizer | analysis | model (default CORE_CORPUS_PROFILE)")
		fPage     = flag.Int("page-size", 0, "rows per page (default CORE_CORPUS_PAGE_SIZE)")
		fWorkers  = flag.Int("workers", 0, "clean workers per page (default CORE_CLEAN_WORKERS)")
		fDryRun   = flag.Bool("dry-run", false, "clean and count without writing")
		fMigrate  = flag.Bool("migrate", false, "apply schema migrations before the run")
		fOnlyMig  = flag.Bool("migrate-only", false, "apply migrations and exit")
		fNoSink   = flag.Bool("no-sink", false, "skip the ClickHouse sink even when configured")
		fVersion  = flag.Bool("version", false, "print build info and exit")
		fLexicon  = flag.String("lexicon", "", "lexicon file (default CORE_CLEAN_LEXICON or embedded)")
		fJSONStat = flag.Bool("json", false, "print run stats as JSON on stdout")
	)
	flag.Parse()
	if *fVersion {
		fmt.Println(version.Info(service).String())
		return
	}

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = service
	}
	logger.Init(opt)
	l := logger.Get()

	if *fProfile != "" {
		if _, err := clean.ParseProfile(*fProfile); err != nil {
			l.Fatal().Err(err).Msg("bad -profile")
		}
	}
	if *fTo > 0 && *fFrom > *fTo {
		l.Fatal().Int64("from", *fFrom).Int64("to", *fTo).Msg("-from after -to")
	}

	// surface flags to modules that read FromConfig
	if *fPage > 0 {
		mustSetEnv("CORE_CORPUS_PAGE_SIZE", fmt.Sprint(*fPage))
	}
	if *fWorkers > 0 {
		mustSetEnv("CORE_CLEAN_WORKERS", fmt.Sprint(*fWorkers))
	}
	if *fNoSink {
		mustSetEnv("CORE_CORPUS_SINK", "false")
	}
	// the job always needs Postgres
	mustSetEnv("STORE_PG_ENABLED", "true")

	root := config.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scfg := store.FromEnv(root, service)
	if *fMigrate || *fOnlyMig {
		if err := migrations.Up(scfg.PG.URL); err != nil {
			l.Fatal().Err(err).Msg("migrate failed")
		}
		if *fOnlyMig {
			return
		}
	}

	st, err := store.Open(ctx, scfg, store.WithLogger(l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	path := *fLexicon
	if path == "" {
		path = root.MayString("CORE_CLEAN_LEXICON", "")
	}
	lex, err := lexicon.Open(path)
	if err != nil {
		l.Fatal().Err(err).Msg("load lexicon")
	}
	p, err := clean.New(lex)
	if err != nil {
		l.Fatal().Err(err).Msg("build pipeline")
	}

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Log: l}
	cleaner := cleansvc.New(p, cleansvc.FromConfig(root))
	cm := corpusmod.New(deps, cleaner)
	module.Register(cm.Name(), cm.Ports())
	ports := module.MustPortsOf[corpusmod.Ports](cm)

	if ports.Sink != nil && *fMigrate && !*fDryRun {
		if err := ports.Sink.Ensure(ctx); err != nil {
			l.Fatal().Err(err).Msg("ensure clickhouse table")
		}
	}

	stats, err := ports.Runner.Run(ctx, domain.RunInput{
		Range:   domain.Range{From: *fFrom, To: *fTo},
		Profile: *fProfile,
		DryRun:  *fDryRun,
		MaxRows: *fMax,
	})
	if *fJSONStat {
		_ = json.NewEncoder(os.Stdout).Encode(stats)
	}
	if err != nil {
		l.Error().Err(err).Int64("last_id", stats.LastID).Msg("corpus run failed")
		_ = st.Close()
		stop()
		os.Exit(1)
	}
}
