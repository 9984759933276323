package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"itemgroups/questionnaire/internal/config"
	"itemgroups/questionnaire/internal/db"
	"itemgroups/questionnaire/internal/logging"
)

const dbFileName = ".questionnaire.db"

var (
	dbPath     string
	configPath string
	verbose    bool

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "questionnaire",
	Short:         "Rebuild questionnaire item groups from coded values",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to "+dbFileName+" database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "questionnaire.yaml", "Path to YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// DiscoverDB finds the database path using priority: env > flag > config > walk-up
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("QUESTIONNAIRE_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Config file
	if cfg.Database.Path != "" {
		if _, err := os.Stat(cfg.Database.Path); err == nil {
			return cfg.Database.Path, nil
		}
		return "", fmt.Errorf("database not found at database.path: %s", cfg.Database.Path)
	}

	// 4. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, dbFileName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return "", fmt.Errorf("no %s found (set QUESTIONNAIRE_DB, use --db, or run from a directory containing %s)", dbFileName, dbFileName)
}

// OpenDatabase discovers and opens an existing database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	return openWithSchema(path)
}

// OpenOrCreateDatabase opens the configured database, creating it in the
// working directory when nothing is configured or discoverable.
func OpenOrCreateDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		path = firstNonEmpty(os.Getenv("QUESTIONNAIRE_DB"), dbPath, cfg.Database.Path, dbFileName)
	}
	return openWithSchema(path)
}

func openWithSchema(path string) (*db.DB, error) {
	d, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := d.EnsureSchema(); err != nil {
		d.Close()
		return nil, err
	}
	logger.Debug("Opened database", zap.String("path", path))
	return d, nil
}

// ResolveDocument finds a document by full GUID, GUID prefix, or title search.
func ResolveDocument(d *db.DB, reference string) (*db.Document, error) {
	// 1. Exact GUID match
	doc, err := d.GetDocument(reference)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, db.ErrDocumentNotFound) {
		return nil, err
	}

	// 2. GUID prefix match (≥6 hex/dash chars)
	if len(reference) >= 6 && isHexDash(reference) {
		matches, err := d.SearchByGUIDPrefix(reference, 10)
		if err == nil {
			switch len(matches) {
			case 1:
				return &matches[0], nil
			case 0:
				// fall through to FTS
			default:
				return nil, ambiguous(reference, matches, "Use a full document GUID instead.")
			}
		}
	}

	// 3. Title search
	docs, err := d.SearchDocuments(reference)
	if err == nil {
		switch len(docs) {
		case 1:
			return &docs[0], nil
		case 0:
			// fall through to not found
		default:
			return nil, ambiguous(reference, docs, "Use a document GUID instead.")
		}
	}

	return nil, fmt.Errorf("%w: %s", db.ErrDocumentNotFound, reference)
}

func ambiguous(reference string, docs []db.Document, hint string) error {
	limit := 10
	if len(docs) < limit {
		limit = len(docs)
	}
	lines := make([]string, limit)
	for i := 0; i < limit; i++ {
		lines[i] = fmt.Sprintf("  %s %s", truncID(docs[i].GUID), docs[i].Title)
	}
	return fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\n%s",
		reference, len(docs), strings.Join(lines, "\n"), hint)
}

func isHexDash(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '-') {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
