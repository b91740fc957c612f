package stores

import (
	"context"
	"time"
)

// Receipt records one generated config source emission: which build
// produced it, where it was written, and the digest of what was written.
type Receipt struct {
	ID            string    `json:"id"`
	BuildID       string    `json:"build_id"`
	ManifestPath  string    `json:"manifest_path"`
	OutputPath    string    `json:"output_path"`
	ResourcesPath string    `json:"resources_path"`
	Digest        string    `json:"digest"`
	Signers       int       `json:"signers"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store is the persistence interface for build receipts.
type Store interface {
	// Init opens the underlying database.
	Init(ctx context.Context) error

	// Migrate brings the schema up to date.
	Migrate(ctx context.Context) error

	// Close releases the database.
	Close() error

	// SaveReceipt persists one receipt.
	SaveReceipt(ctx context.Context, r *Receipt) error

	// ListReceipts returns receipts, newest first. A limit of zero means
	// no limit.
	ListReceipts(ctx context.Context, limit int) ([]*Receipt, error)
}
