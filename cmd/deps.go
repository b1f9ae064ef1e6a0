package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/feedback"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/llm"
	"github.com/abhisek/parley/internal/logger"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/store"
)

// deps is everything a front-end needs to run practice sessions.
type deps struct {
	log      *logger.LogMiddleware
	store    *store.Store
	catalog  *catalog.Catalog
	feedback *feedback.Client
	language i18n.Language
}

// newDeps opens the audit store, builds the LLM provider and the feedback
// client. logPath "" logs to stderr; "-" discards.
func newDeps(cmd *cobra.Command, logPath string) (*deps, error) {
	ctx := cmd.Context()

	log := logger.Nop()
	if logPath != "-" {
		l, err := logger.Connect(logger.LoggerConnectProps{
			Production: os.Getenv("PARLEY_PRODUCTION") != "",
			OutputPath: logPath,
		})
		if err != nil {
			return nil, fmt.Errorf("connect logger: %w", err)
		}
		log = l
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), log)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	return &deps{
		log:      log,
		store:    st,
		catalog:  catalog.Default(),
		feedback: feedback.NewClient(provider, feedback.ConfigFromEnv(), log),
		language: resolveLanguage(cmd),
	}, nil
}

func (d *deps) Close() {
	_ = d.log.Sync()
	_ = d.store.Close()
}

// newController builds one learner's controller.
func (d *deps) newController(opts ...session.Option) *session.Controller {
	base := []session.Option{session.WithLanguage(d.language), session.WithLogger(d.log)}
	return session.NewController(d.catalog, d.feedback, append(base, opts...)...)
}

func (d *deps) registry() *session.Registry {
	return session.NewRegistry(d.newController)
}

// resolveLanguage reads --lang, then PARLEY_LANG, as a language tag.
func resolveLanguage(cmd *cobra.Command) i18n.Language {
	pref, _ := cmd.Flags().GetString("lang")
	if pref == "" {
		pref = os.Getenv("PARLEY_LANG")
	}
	return i18n.Match(pref)
}
