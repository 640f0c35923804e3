package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/indiverse/heritagebot/internal/breadcrumb"
	"github.com/indiverse/heritagebot/internal/knowledge"
	"github.com/indiverse/heritagebot/internal/repository"
	"github.com/indiverse/heritagebot/internal/responder"
	"github.com/indiverse/heritagebot/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAskCmd() *cobra.Command {
	var knowledgePath string
	cmd := &cobra.Command{
		Use:   "ask <utterance>...",
		Short: "Print the bot's reply to an utterance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveKnowledgePath(knowledgePath)
			if err != nil {
				return err
			}
			kb, err := knowledge.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), responder.New(kb).Respond(strings.Join(args, " ")))
			return nil
		},
	}
	cmd.Flags().StringVar(&knowledgePath, "knowledge", "", "Knowledge document (overrides config)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var knowledgePath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the knowledge document loads",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveKnowledgePath(knowledgePath)
			if err != nil {
				return err
			}
			kb, err := knowledge.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d regions, %d intents, %d blocked words\n",
				path, len(kb.Regions()), len(kb.Intents), len(kb.Moderation.BlockedWords))
			return nil
		},
	}
	cmd.Flags().StringVar(&knowledgePath, "knowledge", "", "Knowledge document (overrides config)")
	return cmd
}

func newCrumbsCmd() *cobra.Command {
	var catalogDir string
	cmd := &cobra.Command{
		Use:   "crumbs <path>",
		Short: "Print the breadcrumb labels for an app path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogDir == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				catalogDir = cfg.Knowledge.CatalogDir
			}
			return runCrumbs(cmd, catalogDir, args[0])
		},
	}
	cmd.Flags().StringVar(&catalogDir, "catalog", "", "Catalog dataset directory (overrides config)")
	return cmd
}

func runCrumbs(cmd *cobra.Command, catalogDir, path string) error {
	ctx := context.Background()

	db, err := repository.NewDB(repository.MemoryPath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewCatalogRepository(db)
	if _, err := service.NewSeedService(repo, zap.NewNop()).SeedDirectory(ctx, catalogDir); err != nil {
		return err
	}

	crumbs, err := breadcrumb.NewResolver(repo).Resolve(ctx, path)
	if err != nil {
		return err
	}

	labels := []string{"Home"}
	for _, c := range crumbs {
		labels = append(labels, c.Label)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(labels, " > "))
	return nil
}

func resolveKnowledgePath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Knowledge.Path, nil
}
