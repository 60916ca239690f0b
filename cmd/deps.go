package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/venusquiz/internal/config"
	"github.com/abhisek/venusquiz/internal/content"
	"github.com/abhisek/venusquiz/internal/llm"
	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/session"
	"github.com/abhisek/venusquiz/internal/store"
)

// deps are the long-lived dependencies shared by play and serve.
type deps struct {
	profile config.Profile
	store   *store.Store
	content content.Provider
}

// loadDeps reads the profile, opens the store unless --no-record is set and
// builds the content provider from the environment.
func loadDeps(cmd *cobra.Command) (*deps, error) {
	path, _ := cmd.Flags().GetString("config")
	profile, err := config.Load(config.ResolvePath(path))
	if err != nil {
		return nil, err
	}

	d := &deps{profile: profile}
	if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
		if d.store, err = openStore(cmd); err != nil {
			return nil, err
		}
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), d.repo(), applyProfile(profile.LLM))
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	d.content = content.NewLLMProvider(provider, profile)
	return d, nil
}

// applyProfile overrides the request timeout and retry policy with the
// non-zero values of the profile.
func applyProfile(p config.LLM) func(*llm.Config) {
	return func(c *llm.Config) {
		if p.Timeout > 0 {
			c.Timeout = p.Timeout
		}
		if p.Retry.MaxAttempts > 0 {
			c.Retry.MaxAttempts = p.Retry.MaxAttempts
		}
		if p.Retry.InitialWait > 0 {
			c.Retry.InitialWait = p.Retry.InitialWait
		}
		if p.Retry.MaxWait > 0 {
			c.Retry.MaxWait = p.Retry.MaxWait
		}
	}
}

// repo returns the event repository, or nil when recording is off.
func (d *deps) repo() store.EventRepo {
	if d.store == nil {
		return nil
	}
	return d.store.EventRepo()
}

// newSession creates a controller that records finished attempts.
func (d *deps) newSession(opts ...session.Option) *session.Controller {
	if repo := d.repo(); repo != nil {
		opts = append(opts, session.OnAttemptFinished(session.RecordTo(repo)))
	}
	return session.New(quiz.NewMachine(d.profile.Fallbacks), d.content, opts...)
}

func (d *deps) Close() {
	if d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: close database:", err)
	}
}
