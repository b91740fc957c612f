package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"

	"github.com/oxbow-build/oxbow/pkg/codegen"
	"github.com/oxbow-build/oxbow/pkg/dialect"
	"github.com/oxbow-build/oxbow/pkg/stores"
	"github.com/oxbow-build/oxbow/pkg/telemetry"
)

func newBuildCommand() *cobra.Command {
	var (
		outDir    string
		resources string
		dbPath    string
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "build [manifest]",
		Short: "Compile an embedding manifest into generated config source",
		Long: `Compile an embedding manifest into the generated Go configuration
source the host toolchain embeds into the standalone executable.

When the manifest names a packaging script, it is evaluated with the
oxbow Starlark dialect and its frozen build context (registered code
signers) is reported. Every emission is recorded as a receipt.`,
		Example: `  # Build from the default manifest
  oxbow build

  # Build a specific manifest into ./generated
  oxbow build app/oxbow.yaml --out ./generated

  # Rebuild whenever the manifest or script changes
  oxbow build --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := "oxbow.yaml"
			if len(args) > 0 {
				manifestPath = args[0]
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			blog := logger.NewComponentLogger("build")

			if !watch {
				return runBuild(cmd.Context(), blog, manifestPath, outDir, resources, dbPath)
			}
			return watchBuild(cmd.Context(), blog, manifestPath, outDir, resources, dbPath)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for the generated source file")
	cmd.Flags().StringVar(&resources, "resources", "packed-resources.bin", "packed resources path referenced by the generated source")
	cmd.Flags().StringVar(&dbPath, "db", defaultReceiptsDB, "receipts database path (empty disables receipts)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild when the manifest or script changes")

	return cmd
}

const (
	defaultReceiptsDB = ".oxbow/receipts.db"
	generatedFileName = "embedded_config.go"
)

func runBuild(ctx context.Context, logger *telemetry.Logger, manifestPath, outDir, resources, dbPath string) error {
	buildID := uuid.NewString()
	logger = logger.WithBuildID(buildID)

	manifest, err := codegen.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	model, err := manifest.Model()
	if err != nil {
		return fmt.Errorf("invalid embedding configuration in %s: %w", manifestPath, err)
	}

	outPath := filepath.Join(outDir, generatedFileName)
	literal := codegen.Render(model)
	if err := codegen.WriteDefaultConfigSource(outPath, resources, literal); err != nil {
		return err
	}

	zlog := logger.Zerolog()
	zlog.Info().
		Str("manifest", manifestPath).
		Str("output", outPath).
		Str("resources", resources).
		Msg("generated config source")

	signers := 0
	if manifest.Script != "" {
		scriptPath := manifest.Script
		if !filepath.IsAbs(scriptPath) {
			scriptPath = filepath.Join(filepath.Dir(manifestPath), scriptPath)
		}

		evaluator := dialect.NewEvaluator(logger.NewComponentLogger("dialect").Zerolog())
		buildCtx, err := evaluator.EvalFile(scriptPath)
		if err != nil {
			return err
		}
		signers = len(buildCtx.Signers())

		zlog.Info().
			Str("script", scriptPath).
			Int("signers", signers).
			Msg("evaluated packaging script")
	}

	if dbPath == "" {
		return nil
	}
	return saveReceipt(ctx, logger, dbPath, &stores.Receipt{
		ID:            uuid.NewString(),
		BuildID:       buildID,
		ManifestPath:  manifestPath,
		OutputPath:    outPath,
		ResourcesPath: resources,
		Digest:        fileDigest(outPath),
		Signers:       signers,
		CreatedAt:     time.Now().UTC(),
	})
}

func saveReceipt(ctx context.Context, logger *telemetry.Logger, dbPath string, receipt *stores.Receipt) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create receipts directory: %w", err)
	}

	store, err := stores.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if err := store.SaveReceipt(ctx, receipt); err != nil {
		return err
	}

	zlog := logger.Zerolog()
	zlog.Debug().
		Str("receipt", receipt.ID).
		Str("digest", receipt.Digest).
		Msg("recorded build receipt")
	return nil
}

// fileDigest returns the hex BLAKE3 digest of the emitted file, or an
// empty string if it cannot be read back.
func fileDigest(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// watchBuild re-runs the build whenever the manifest or its packaging
// script changes, until the command's context is cancelled.
func watchBuild(ctx context.Context, logger *telemetry.Logger, manifestPath, outDir, resources, dbPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the manifest's directory rather than the file: editors often
	// replace files on save, which drops file-level watches.
	if err := watcher.Add(filepath.Dir(manifestPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", manifestPath, err)
	}

	zlog := logger.Zerolog()
	run := func() {
		if err := runBuild(ctx, logger, manifestPath, outDir, resources, dbPath); err != nil {
			zlog.Error().Err(err).Msg("build failed")
		}
	}
	run()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(event.Name) == generatedFileName {
				continue
			}
			zlog.Info().Str("path", event.Name).Msg("change detected, rebuilding")
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			zlog.Error().Err(err).Msg("watch error")
		}
	}
}
