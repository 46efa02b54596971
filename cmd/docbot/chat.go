package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docbot/internal/decompose"
	"docbot/internal/domain"
	"docbot/internal/service"
	"docbot/internal/tui"
	"docbot/internal/vectorstore"
)

func chatCmd() *cobra.Command {
	var question string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask a question, or start the interactive chat when no --question is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger()
			client, err := buildClient(cfg)
			if err != nil {
				return err
			}
			store, err := buildStore(cfg)
			if err != nil {
				return err
			}
			if l, ok := store.(vectorstore.Loader); ok {
				if err := l.Load(); err != nil {
					if errors.Is(err, vectorstore.ErrNotPopulated) {
						return fmt.Errorf("no vector store found at %s: run `docbot ingest` first", cfg.VectorStore.PersistDir)
					}
					return err
				}
			}

			orch := service.NewOrchestrator(decompose.New(client, log), client, client, store, cfg.Retrieval.TopK, log)

			if question != "" {
				_, err := orch.Answer(cmd.Context(), question, func(n int, ex domain.Exchange) {
					fmt.Printf("\n🔹 Q%d: %s\n", n, ex.SubQuestion)
					fmt.Println("→", ex.Answer)
				})
				return err
			}

			m := tui.New(orch, readSummary(cfg.VectorStore.PersistDir))
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "Prompt to send")
	return cmd
}
