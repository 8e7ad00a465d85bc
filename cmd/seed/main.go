package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed items")
	clearData := flag.Bool("clear-data", false, "Clear the demo owner's items (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("🌱 Seeding workspace (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		return
	}

	// Clear existing demo data before seeding (and exit early in clear-data mode)
	if err := clearOwnerData(ctx, pool, tables, cfg.DemoOwnerID); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	log.Println("✅ Demo owner data cleared")

	if *clearData {
		return
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	bookRepo := postgres.NewBookRepository(repoConfig)
	contentRepo := postgres.NewContentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Seed everything in one transaction so a half-seeded workspace never
	// survives a failure.
	err = txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return seedWorkspace(txCtx, bookRepo, contentRepo, cfg.DemoOwnerID)
	})
	if err != nil {
		log.Fatalf("Failed to seed workspace: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// seedWorkspace creates a small demo hierarchy: two books at root, a few
// contents inside them, and one loose content at root.
func seedWorkspace(ctx context.Context, bookRepo repositories.BookRepository, contentRepo repositories.ContentRepository, ownerID string) error {
	novel := &models.Book{
		OwnerID:   ownerID,
		Title:     "Novel Draft",
		Thumbnail: "/assets/placeholders/book-cover.png",
		Genre:     stringPtr("fantasy"),
		Tags:      []string{"draft", "fiction"},
		IsDraft:   true,
	}
	if err := bookRepo.Insert(ctx, novel); err != nil {
		return err
	}

	research := &models.Book{
		OwnerID:   ownerID,
		Title:     "Research",
		Thumbnail: "/assets/placeholders/book-cover.png",
		Tags:      []string{},
		IsDraft:   true,
	}
	if err := bookRepo.Insert(ctx, research); err != nil {
		return err
	}

	contents := []*models.Content{
		{
			OwnerID:   ownerID,
			ParentID:  &novel.ID,
			Title:     "Chapter 1 - The Beginning",
			Thumbnail: "/assets/placeholders/page.png",
			Data:      "# The Beginning\n\nThe morning sun cast long shadows across the cobblestone streets.",
			Tags:      []string{},
			IsDraft:   true,
		},
		{
			OwnerID:   ownerID,
			ParentID:  &novel.ID,
			Title:     "Chapter 2 - The Academy",
			Thumbnail: "/assets/placeholders/page.png",
			Data:      "# The Academy\n\nNothing could have prepared her for the gates.",
			Tags:      []string{},
			IsDraft:   true,
		},
		{
			OwnerID:     ownerID,
			ParentID:    &research.ID,
			Title:       "Sources",
			Thumbnail:   "/assets/placeholders/page.png",
			Data:        "- city planning in medieval Europe\n- apprenticeship systems",
			Institution: stringPtr("City Library"),
			Subject:     stringPtr("history"),
			Tags:        []string{"notes"},
			IsDraft:     true,
		},
		{
			OwnerID:   ownerID,
			Title:     "Scratchpad",
			Thumbnail: "/assets/placeholders/page.png",
			Data:      "",
			Tags:      []string{},
			IsDraft:   true,
		},
	}

	for _, content := range contents {
		if err := contentRepo.Insert(ctx, content); err != nil {
			return err
		}
		log.Printf("✅ Created content: %s (ID: %s)", content.Title, content.ID)
	}

	return nil
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create books table
	createBooks := `
		CREATE TABLE IF NOT EXISTS ` + tables.Books + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL,
			parent_id UUID REFERENCES ` + tables.Books + `(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			thumbnail TEXT NOT NULL DEFAULT '',
			description TEXT,
			genre TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			is_draft BOOLEAN NOT NULL DEFAULT TRUE,
			trashed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createBooks); err != nil {
		return err
	}

	// Create contents table
	createContents := `
		CREATE TABLE IF NOT EXISTS ` + tables.Contents + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL,
			parent_id UUID REFERENCES ` + tables.Books + `(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			thumbnail TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL DEFAULT '',
			institution TEXT,
			subject TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			is_draft BOOLEAN NOT NULL DEFAULT TRUE,
			trashed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createContents); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `books_owner_parent ON ` + tables.Books + `(owner_id, parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `books_owner_trashed ON ` + tables.Books + `(owner_id) WHERE trashed`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `contents_owner_parent ON ` + tables.Contents + `(owner_id, parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `contents_owner_trashed ON ` + tables.Contents + `(owner_id) WHERE trashed`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Contents,
		tables.Books,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearOwnerData removes every item belonging to the given owner
func clearOwnerData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, ownerID string) error {
	// Contents first so no row references a book being deleted
	_, err := pool.Exec(ctx, "DELETE FROM "+tables.Contents+" WHERE owner_id = $1", ownerID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "DELETE FROM "+tables.Books+" WHERE owner_id = $1", ownerID)
	if err != nil {
		return err
	}

	return nil
}

func stringPtr(s string) *string {
	return &s
}
