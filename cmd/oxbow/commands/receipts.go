package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxbow-build/oxbow/pkg/stores"
)

func newReceiptsCommand() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "List recorded build receipts",
		Long: `List receipts of generated config source emissions recorded by
previous builds, newest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := stores.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			if err := store.Init(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			receipts, err := store.ListReceipts(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(receipts)
			}

			if len(receipts) == 0 {
				fmt.Println("no receipts recorded")
				return nil
			}
			for _, r := range receipts {
				fmt.Printf("%s  build=%s  %s -> %s  digest=%.12s  signers=%d\n",
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.BuildID[:8],
					r.ManifestPath,
					r.OutputPath,
					r.Digest,
					r.Signers,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultReceiptsDB, "receipts database path")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum receipts to list (0 for all)")

	return cmd
}
