package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var narrativeCmd = &cobra.Command{
	Use:   "narrative",
	Short: "Inspect the LLM narrative backend",
}

var narrativeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the configured LLM backend can serve requests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initEnv("narrative", true)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		s := env.Generator.Status(ctx)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider: %s\n", s.Provider)
		if s.Model != "" {
			fmt.Fprintf(out, "Model:    %s\n", s.Model)
		}
		fmt.Fprintf(out, "Ready:    %v\n", s.Ready)
		if s.Detail != "" {
			fmt.Fprintf(out, "Detail:   %s\n", s.Detail)
		}
		fmt.Fprintf(out, "Breaker:  %s\n", s.Breaker)

		if !s.Ready {
			return fmt.Errorf("narrative provider %s is not ready", s.Provider)
		}
		return nil
	},
}

func init() {
	narrativeCmd.AddCommand(narrativeStatusCmd)
	rootCmd.AddCommand(narrativeCmd)
}
