package postgres

import (
	"database/sql"

	"hospitaladmin/internal/domain"
)

// paginate appends LIMIT/OFFSET placeholders when params carries a page size.
func paginate(query string, params domain.PaginationParams) (string, []any) {
	limit := params.Limit()
	if limit == 0 {
		return query, nil
	}
	return query + ` LIMIT $1 OFFSET $2`, []any{limit, params.Offset()}
}

// requireAffected maps a zero-row update or delete to domain.ErrNotFound.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
