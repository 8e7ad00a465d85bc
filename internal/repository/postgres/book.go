package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

const bookColumns = "id, owner_id, parent_id, title, thumbnail, description, genre, tags, is_draft, trashed, created_at, updated_at"

// PostgresBookRepository implements the BookRepository interface
type PostgresBookRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(config *RepositoryConfig) repositories.BookRepository {
	return &PostgresBookRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func scanBook(row pgx.Row) (*models.Book, error) {
	var book models.Book
	err := row.Scan(
		&book.ID,
		&book.OwnerID,
		&book.ParentID,
		&book.Title,
		&book.Thumbnail,
		&book.Description,
		&book.Genre,
		&book.Tags,
		&book.IsDraft,
		&book.Trashed,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if book.Tags == nil {
		book.Tags = []string{}
	}
	return &book, nil
}

// Insert creates a new book and fills the server-assigned id and timestamps
func (r *PostgresBookRepository) Insert(ctx context.Context, book *models.Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, parent_id, title, thumbnail, description, genre, tags, is_draft, trashed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Books)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		book.OwnerID,
		book.ParentID,
		book.Title,
		book.Thumbnail,
		book.Description,
		book.Genre,
		book.Tags,
		book.IsDraft,
		book.Trashed,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("book parent: %w", domain.ErrParentNotFound)
		}
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by id regardless of trash state
func (r *PostgresBookRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, bookColumns, r.tables.Books)

	book, err := scanBook(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return book, nil
}

// GetLiveByID retrieves a non-trashed book by id
func (r *PostgresBookRepository) GetLiveByID(ctx context.Context, id, ownerID string) (*models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2 AND trashed = FALSE
	`, bookColumns, r.tables.Books)

	book, err := scanBook(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return book, nil
}

// ListByParent lists non-trashed child books of a parent (nil = root)
func (r *PostgresBookRepository) ListByParent(ctx context.Context, ownerID string, parentID *string) ([]models.Book, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND parent_id IS NULL AND trashed = FALSE
			ORDER BY lower(title) ASC
		`, bookColumns, r.tables.Books)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND parent_id = $2 AND trashed = FALSE
			ORDER BY lower(title) ASC
		`, bookColumns, r.tables.Books)
		args = append(args, ownerID, *parentID)
	}

	return r.queryBooks(ctx, query, args...)
}

// ListTrashed lists all trashed books for an owner
func (r *PostgresBookRepository) ListTrashed(ctx context.Context, ownerID string) ([]models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND trashed = TRUE
		ORDER BY lower(title) ASC
	`, bookColumns, r.tables.Books)

	return r.queryBooks(ctx, query, ownerID)
}

// UpdateFields applies a partial update to a single book row
func (r *PostgresBookRepository) UpdateFields(ctx context.Context, id, ownerID string, fields *repositories.Fieldset) (*models.Book, error) {
	if fields.Len() == 0 {
		return nil, domain.ErrNoValidFields
	}

	query, args := buildUpdateQuery(r.tables.Books, fields)
	query += " RETURNING " + bookColumns
	args = append(args, id, ownerID)

	book, err := scanBook(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	return book, nil
}

// SetTrashed flips the trash flag on a single book
func (r *PostgresBookRepository) SetTrashed(ctx context.Context, id, ownerID string, trashed, onlyIfLive bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET trashed = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`, r.tables.Books)
	if onlyIfLive {
		query += " AND trashed = FALSE"
	}

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, trashed, id, ownerID)
	if err != nil {
		return fmt.Errorf("set book trashed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// TrashChildren flags all direct child books of a parent as trashed
func (r *PostgresBookRepository) TrashChildren(ctx context.Context, parentID, ownerID string) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET trashed = TRUE, updated_at = NOW()
		WHERE parent_id = $1 AND owner_id = $2
	`, r.tables.Books)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, parentID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("trash child books: %w", err)
	}

	r.logger.Debug("flagged child books as trashed",
		"parent_id", parentID,
		"rows", result.RowsAffected(),
	)

	return result.RowsAffected(), nil
}

// Delete permanently removes a book row
func (r *PostgresBookRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Books)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresBookRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]models.Book, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}
