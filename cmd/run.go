package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/quizflip/internal/app"
	"github.com/abhisek/quizflip/internal/explain"
	"github.com/abhisek/quizflip/internal/llm"
	"github.com/abhisek/quizflip/internal/playground"
	"github.com/abhisek/quizflip/internal/screens/review"
	"github.com/spf13/cobra"
)

// runApp opens the runtime, builds the optional services, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	events := rt.store.EventRepo()
	deps := review.Deps{
		Engine:  rt.engine,
		Sets:    rt.sets(),
		Dir:     rt.cfg.QuestionsDir,
		Runner:  playground.NewRunner(rt.cfg.PlaygroundTimeout),
		History: events,
		Log:     rt.log,
	}

	provider, err := llm.NewProviderFromEnv(ctx, events, rt.log)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		rt.log.Info("llm.not_configured", nil)
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Explanations will be unavailable.")
	default:
		deps.Explainer = explain.NewService(provider, explain.DefaultConfig())
	}

	return app.Run(ctx, app.Options{Review: deps, Events: events})
}
