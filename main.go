package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/NRay7882/astrogoblin-wordle/internal/assets"
	"github.com/NRay7882/astrogoblin-wordle/internal/config"
	"github.com/NRay7882/astrogoblin-wordle/internal/httpserver"
	"github.com/NRay7882/astrogoblin-wordle/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "puzzle-server",
		Short:        "Daily five-letter puzzle backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file merged into the environment (missing is fine)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the puzzle API (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), envFile)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate the puzzle catalog and list rejected entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runCheck(cmd, envFile)
			},
		},
		newPackAssetsCmd(&envFile),
	)
	return root
}

func newPackAssetsCmd(envFile *string) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "pack-assets",
		Short: "Copy local answer images and sounds into the sqlite asset store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.AssetDB = dbPath
			}
			return runPackAssets(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "asset database path (overrides ASSET_DB)")
	return cmd
}

func runServe(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	catalog, rejected, err := loadCatalog(cfg, os.Environ())
	if err != nil {
		return err
	}
	logCatalog(cfg, catalog.Len(), rejected)

	clock, err := newClock(cfg)
	if err != nil {
		return err
	}
	vocab, err := loadVocabulary(cfg, catalog)
	if err != nil {
		return err
	}
	resolver, closeAssets, err := buildResolver(cfg)
	if err != nil {
		return err
	}
	defer closeAssets()

	svc := service.New(catalog, clock, resolver, vocab)
	srv := httpserver.New(svc, httpserver.Options{
		ClientOrigin: cfg.ClientOrigin,
		StaticDir:    staticDir(cfg.StaticDir),
		MediaDirs:    []string{cfg.AnswerImageDir, cfg.SoundDir},
	})

	addr := ":" + cfg.Port
	log.Info().Str("port", cfg.Port).Str("timezone", clock.Location().String()).Msg("starting puzzle server")
	if err := srv.Start(ctx, addr); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func runCheck(cmd *cobra.Command, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	catalog, rejected, err := loadCatalog(cfg, os.Environ())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range rejected {
		fmt.Fprintf(out, "rejected %s: %s\n", r.Key, r.Reason)
	}
	fmt.Fprintf(out, "%d accepted, %d rejected\n", catalog.Len(), len(rejected))
	if len(rejected) > 0 {
		return fmt.Errorf("%d catalog entries rejected", len(rejected))
	}
	return nil
}

func runPackAssets(cmd *cobra.Command, cfg config.Config) error {
	if cfg.AssetDB == "" {
		return fmt.Errorf("no asset database: set ASSET_DB or --db")
	}
	db, err := assets.OpenSQLite(cfg.AssetDB)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for _, d := range []struct {
		kind assets.Kind
		root string
	}{
		{assets.KindImage, cfg.AnswerImageDir},
		{assets.KindSound, cfg.SoundDir},
	} {
		n, err := db.PackDir(ctx, d.kind, d.root)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "packed %d %s files from %s\n", n, d.kind, d.root)
	}
	return nil
}
