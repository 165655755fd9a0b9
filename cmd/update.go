package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizflip/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateTo string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install the latest quizflip release, or the one given with --to",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		in := &selfupdate.UpdateInput{CurrentVersion: version, TargetVersion: updateTo}
		err := checker.Update(ctx, in, func(p selfupdate.UpdateProgress) {
			fmt.Fprintf(out, "%-8s %s\n", p.Stage, p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "This is a development build; install a release build to use update.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintf(out, "quizflip %s is the latest release.\n", version)
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nthe binary is not writable; try: sudo quizflip update", err)
		default:
			return err
		}
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTo, "to", "", "release tag to install, such as v1.2.0")
}
