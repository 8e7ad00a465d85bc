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

const contentColumns = "id, owner_id, parent_id, title, thumbnail, data, institution, subject, tags, is_draft, trashed, created_at, updated_at"

// PostgresContentRepository implements the ContentRepository interface
type PostgresContentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(config *RepositoryConfig) repositories.ContentRepository {
	return &PostgresContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func scanContent(row pgx.Row) (*models.Content, error) {
	var content models.Content
	err := row.Scan(
		&content.ID,
		&content.OwnerID,
		&content.ParentID,
		&content.Title,
		&content.Thumbnail,
		&content.Data,
		&content.Institution,
		&content.Subject,
		&content.Tags,
		&content.IsDraft,
		&content.Trashed,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if content.Tags == nil {
		content.Tags = []string{}
	}
	return &content, nil
}

// Insert creates a new content item and fills the server-assigned id and timestamps
func (r *PostgresContentRepository) Insert(ctx context.Context, content *models.Content) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, parent_id, title, thumbnail, data, institution, subject, tags, is_draft, trashed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Contents)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		content.OwnerID,
		content.ParentID,
		content.Title,
		content.Thumbnail,
		content.Data,
		content.Institution,
		content.Subject,
		content.Tags,
		content.IsDraft,
		content.Trashed,
	).Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("content parent: %w", domain.ErrParentNotFound)
		}
		return fmt.Errorf("insert content: %w", err)
	}

	return nil
}

// GetByID retrieves a content item by id regardless of trash state
func (r *PostgresContentRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Content, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, contentColumns, r.tables.Contents)

	content, err := scanContent(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}

	return content, nil
}

// ListByParent lists non-trashed content inside a parent (nil = root)
func (r *PostgresContentRepository) ListByParent(ctx context.Context, ownerID string, parentID *string) ([]models.Content, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND parent_id IS NULL AND trashed = FALSE
			ORDER BY lower(title) ASC
		`, contentColumns, r.tables.Contents)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND parent_id = $2 AND trashed = FALSE
			ORDER BY lower(title) ASC
		`, contentColumns, r.tables.Contents)
		args = append(args, ownerID, *parentID)
	}

	return r.queryContents(ctx, query, args...)
}

// ListTrashed lists all trashed content for an owner
func (r *PostgresContentRepository) ListTrashed(ctx context.Context, ownerID string) ([]models.Content, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND trashed = TRUE
		ORDER BY lower(title) ASC
	`, contentColumns, r.tables.Contents)

	return r.queryContents(ctx, query, ownerID)
}

// UpdateFields applies a partial update to a single content row
func (r *PostgresContentRepository) UpdateFields(ctx context.Context, id, ownerID string, fields *repositories.Fieldset) (*models.Content, error) {
	if fields.Len() == 0 {
		return nil, domain.ErrNoValidFields
	}

	query, args := buildUpdateQuery(r.tables.Contents, fields)
	query += " RETURNING " + contentColumns
	args = append(args, id, ownerID)

	content, err := scanContent(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update content: %w", err)
	}

	return content, nil
}

// SetTrashed flips the trash flag on a single content row
func (r *PostgresContentRepository) SetTrashed(ctx context.Context, id, ownerID string, trashed, onlyIfLive bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET trashed = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`, r.tables.Contents)
	if onlyIfLive {
		query += " AND trashed = FALSE"
	}

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, trashed, id, ownerID)
	if err != nil {
		return fmt.Errorf("set content trashed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// TrashChildren flags all content directly inside a parent as trashed
func (r *PostgresContentRepository) TrashChildren(ctx context.Context, parentID, ownerID string) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET trashed = TRUE, updated_at = NOW()
		WHERE parent_id = $1 AND owner_id = $2
	`, r.tables.Contents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, parentID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("trash child contents: %w", err)
	}

	r.logger.Debug("flagged child contents as trashed",
		"parent_id", parentID,
		"rows", result.RowsAffected(),
	)

	return result.RowsAffected(), nil
}

// Delete permanently removes a content row
func (r *PostgresContentRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Contents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresContentRepository) queryContents(ctx context.Context, query string, args ...interface{}) ([]models.Content, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	var contents []models.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, *content)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contents: %w", err)
	}

	return contents, nil
}
