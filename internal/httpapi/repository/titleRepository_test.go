package repository

import (
	"context"
	"strings"
	"testing"

	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a gorm handle that builds SQL without touching a server,
// so the generated statements can be asserted directly.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=reviewhub dbname=reviewhub",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func selectsOnlyIDs(sql string) bool {
	return strings.Contains(sql, `DISTINCT "titles"."id" FROM`) ||
		strings.Contains(sql, "DISTINCT titles.id FROM")
}

func TestTitleRepository_List_DryRun(t *testing.T) {
	repo := &titleRepository{db: newDryRunDB(t)}

	_, _, err := repo.List(context.Background(), TitleFilter{}, 20, 0)
	assert.NoError(t, err)

	year := 1994
	_, _, err = repo.List(context.Background(), TitleFilter{
		Name:     "шоушенк",
		Year:     &year,
		Category: "movie",
		Genre:    "drama",
	}, 20, 40)
	assert.NoError(t, err)
}

func TestTitleRepository_List_CountAndRowQueriesStayIndependent(t *testing.T) {
	repo := &titleRepository{db: newDryRunDB(t)}
	ctx := context.Background()
	filter := TitleFilter{Category: "movie"}

	// count first, rows second, the order List runs them in
	var total int64
	countStmt := repo.countQuery(ctx, filter).Count(&total).Statement
	countSQL := countStmt.SQL.String()
	assert.Contains(t, strings.ToUpper(countSQL), "COUNT(DISTINCT(")
	assert.Contains(t, countSQL, "JOIN categories ON categories.id = titles.category_id")

	var titles []models.Title
	rowStmt := repo.rowQuery(ctx, filter, 20, 0).Find(&titles).Statement
	rowSQL := rowStmt.SQL.String()

	// the row query selects full title rows, not the count's id projection
	assert.False(t, selectsOnlyIDs(rowSQL), "row query collapsed to the count's select: %s", rowSQL)
	assert.Contains(t, strings.ToUpper(rowSQL), "DISTINCT")
	assert.NotContains(t, strings.ToUpper(rowSQL), "COUNT(")
	assert.Contains(t, rowSQL, "ORDER BY titles.name asc")
	assert.Contains(t, strings.ToUpper(rowSQL), "LIMIT")
}

func TestTitleRepository_ListSQL_Unfiltered(t *testing.T) {
	repo := &titleRepository{db: newDryRunDB(t)}

	var titles []models.Title
	stmt := repo.rowQuery(context.Background(), TitleFilter{}, 20, 0).Find(&titles).Statement
	sql := stmt.SQL.String()

	assert.NotContains(t, sql, "JOIN")
	assert.NotContains(t, strings.ToUpper(sql), "WHERE")
	assert.Contains(t, sql, "ORDER BY titles.name asc")
}

func TestTitleRepository_ListSQL_Filters(t *testing.T) {
	repo := &titleRepository{db: newDryRunDB(t)}
	year := 1994
	filter := TitleFilter{
		Name:     "шоушенк",
		Year:     &year,
		Category: "movie",
		Genre:    "drama",
	}

	var titles []models.Title
	stmt := repo.rowQuery(context.Background(), filter, 20, 40).Find(&titles).Statement
	sql := stmt.SQL.String()

	// AND-combined: every set filter contributes its condition
	assert.Contains(t, sql, "titles.name ILIKE")
	assert.Contains(t, sql, "titles.year =")
	assert.Contains(t, sql, "categories.slug =")
	assert.Contains(t, sql, "genres.slug =")
	assert.Contains(t, sql, "JOIN categories ON categories.id = titles.category_id")
	assert.Contains(t, sql, "JOIN title_genres tg ON tg.title_id = titles.id")
	assert.Contains(t, sql, "JOIN genres ON genres.id = tg.genre_id")

	assert.Contains(t, stmt.Vars, "%шоушенк%")
	assert.Contains(t, stmt.Vars, 1994)
	assert.Contains(t, stmt.Vars, "movie")
	assert.Contains(t, stmt.Vars, "drama")
}

func TestTitleRepository_CountSQL_Filtered(t *testing.T) {
	repo := &titleRepository{db: newDryRunDB(t)}
	filter := TitleFilter{Genre: "drama"}

	var total int64
	stmt := repo.countQuery(context.Background(), filter).Count(&total).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, strings.ToUpper(sql), "COUNT(DISTINCT(")
	assert.Contains(t, sql, "JOIN title_genres tg ON tg.title_id = titles.id")
	assert.Contains(t, sql, "genres.slug =")
	assert.NotContains(t, strings.ToUpper(sql), "ORDER BY")
}
