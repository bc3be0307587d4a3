package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/visibility-score/internal/entity"
)

// AnalysesRepository persists completed analyses and serves the recent listing.
type AnalysesRepository interface {
	Record(ctx context.Context, analysis *entity.Analysis) error
	Recent(ctx context.Context, limit int) ([]entity.Analysis, error)
}

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXAnalysesRepository implements AnalysesRepository using pgx.
type PGXAnalysesRepository struct {
	pool pgxPool
}

// NewPGXAnalysesRepository wires a pgx backed repository.
func NewPGXAnalysesRepository(pool *pgxpool.Pool) *PGXAnalysesRepository {
	return &PGXAnalysesRepository{pool: pool}
}

// newAnalysesRepositoryWithPool exists for tests that substitute the pool.
func newAnalysesRepositoryWithPool(pool pgxPool) *PGXAnalysesRepository {
	return &PGXAnalysesRepository{pool: pool}
}

// Record inserts a completed analysis. The caller assigns no ID; one is
// generated here so the row can be referenced in the recent listing.
func (r *PGXAnalysesRepository) Record(ctx context.Context, analysis *entity.Analysis) error {
	if analysis == nil {
		return fmt.Errorf("analysis payload is nil")
	}
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO analyses (
            id,
            business_name,
            place_id,
            service_area,
            website,
            path,
            gbp_score,
            site_score,
            final_score,
            created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`,
		analysis.ID,
		analysis.BusinessName,
		analysis.PlaceID,
		analysis.ServiceArea,
		analysis.Website,
		analysis.Path,
		analysis.GBPScore,
		analysis.SiteScore,
		analysis.FinalScore,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// Recent returns the newest analyses, capped at limit (default 20, max 100).
func (r *PGXAnalysesRepository) Recent(ctx context.Context, limit int) ([]entity.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, business_name, place_id, service_area, website, path,
               gbp_score, site_score, final_score, created_at
        FROM analyses
        ORDER BY created_at DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []entity.Analysis
	for rows.Next() {
		var (
			a           entity.Analysis
			placeID     sql.NullString
			serviceArea sql.NullString
			website     sql.NullString
			gbpScore    sql.NullInt64
			siteScore   sql.NullInt64
		)
		if err := rows.Scan(
			&a.ID,
			&a.BusinessName,
			&placeID,
			&serviceArea,
			&website,
			&a.Path,
			&gbpScore,
			&siteScore,
			&a.FinalScore,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		if placeID.Valid {
			a.PlaceID = &placeID.String
		}
		if serviceArea.Valid {
			a.ServiceArea = &serviceArea.String
		}
		if website.Valid {
			a.Website = &website.String
		}
		if gbpScore.Valid {
			v := int(gbpScore.Int64)
			a.GBPScore = &v
		}
		if siteScore.Valid {
			v := int(siteScore.Int64)
			a.SiteScore = &v
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}

var _ AnalysesRepository = (*PGXAnalysesRepository)(nil)
