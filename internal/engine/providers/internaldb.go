package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wadhifa/jobscout/internal/engine"
)

// InternalStore queries the platform's own job-postings table, read-only.
// Matches are flagged isInternal: they bypass the host allow-list and the
// staleness filters, and rank ahead of external hits.
type InternalStore struct {
	pool *pgxpool.Pool
}

// ConnectInternalStore opens a pgx pool against the platform database.
func ConnectInternalStore(ctx context.Context, databaseURL string) (*InternalStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("internal store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("internal store ping: %w", err)
	}
	return &InternalStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *InternalStore) Close() {
	s.pool.Close()
}

const internalSearchSQL = `
SELECT id, title, company_name, location, salary_range, employment_type, created_at
FROM job_postings
WHERE status = 'open'
  AND (title ILIKE '%' || $1 || '%'
       OR description ILIKE '%' || $1 || '%'
       OR department ILIKE '%' || $1 || '%')
ORDER BY created_at DESC
LIMIT 5`

// Search keyword-matches open postings, newest five first.
func (s *InternalStore) Search(ctx context.Context, query string) ([]engine.JobResult, error) {
	rows, err := s.pool.Query(ctx, internalSearchSQL, query)
	if err != nil {
		return nil, fmt.Errorf("internal search: %w", err)
	}
	defer rows.Close()

	var results []engine.JobResult
	for rows.Next() {
		var (
			id, title                       string
			company, location, salary, etyp *string
			createdAt                       time.Time
		)
		if err := rows.Scan(&id, &title, &company, &location, &salary, &etyp, &createdAt); err != nil {
			return nil, fmt.Errorf("internal scan: %w", err)
		}
		r := engine.JobResult{
			Title:      title,
			URL:        fmt.Sprintf("https://wadhifa.com/jobs/%s", id),
			Source:     "wadhifa.com",
			PostedAt:   createdAt.Format("2006-01-02"),
			IsInternal: true,
		}
		if company != nil {
			r.Company = *company
		}
		if location != nil {
			r.Location = *location
		}
		if salary != nil {
			r.Salary = *salary
		}
		if etyp != nil {
			r.EmploymentType = *etyp
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
