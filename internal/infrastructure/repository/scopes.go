package repository

import (
	"errors"
	"strings"

	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate returns a GORM scope applying the page window of params
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// Search returns a GORM scope matching term against any of columns,
// case-insensitively. LOWER/LIKE works on both Postgres and SQLite, unlike
// ILIKE.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using ESCAPE '\'
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// translateError maps driver-level unique violations to ErrDuplicate
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domainRepo.ErrDuplicate
	}
	return err
}

// isUniqueViolation recognises duplicate-key errors. gorm translates them
// when TranslateError is enabled; the message checks cover drivers that do
// not.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "sqlstate 23505")
}
