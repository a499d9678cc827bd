package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/scenra/scenra/internal/config"
	"github.com/scenra/scenra/internal/mediaserver"
	"github.com/scenra/scenra/internal/tui/styles"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const maxSetupAttempts = 3

func newSetupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Store a verified TMDB API key in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runSetupFlow(cmd.Context(), cmd.OutOrStdout(), cfg, ctx)
		},
	}
}

// runSetupFlow prompts for a key until one verifies, then saves it
func runSetupFlow(ctx context.Context, out io.Writer, cfg *config.Config, c *commandContext) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to Scenra!")

	flow := mediaserver.NewAuthFlow(cfg.TMDB.BaseURL, cfg.TMDB.Language, c.logger)

	var key string
	for attempt := 1; key == ""; attempt++ {
		if attempt > maxSetupAttempts {
			return fmt.Errorf("no valid api key after %d attempts", maxSetupAttempts)
		}

		k, err := flow.Prompt()
		if errors.Is(err, mediaserver.ErrEmptyAPIKey) {
			fmt.Fprintln(out, "API key cannot be empty. Please try again.")
			continue
		}
		if err != nil {
			return err
		}

		err = withSpinner(out, "Verifying API key...", func() error {
			return flow.Verify(ctx, k)
		})
		if err != nil {
			fmt.Fprintf(out, "✗ %v\n", err)
			fmt.Fprintln(out, "Please check the key and try again.")
			continue
		}
		fmt.Fprintln(out, "✓ API key verified")
		key = k
	}

	cfg.TMDB.APIKey = key
	path := c.configPath
	if path == "" {
		path = config.DefaultConfigFile()
	}
	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "✓ Configuration saved to %s\n", path)
	fmt.Fprintln(out, "Run scenra again to start browsing.")
	return nil
}

// withSpinner runs fn while animating a spinner line on out
func withSpinner(out io.Writer, label string, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	frame := 0
	fmt.Fprintf(out, "\r%s %s", styles.SpinnerFrames[frame], label)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			fmt.Fprint(out, clearSpinnerLine)
			return err
		case <-ticker.C:
			frame++
			fmt.Fprintf(out, "\r%s %s", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], label)
		}
	}
}
