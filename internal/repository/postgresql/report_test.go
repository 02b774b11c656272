package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/wellness"
	"github.com/wellmind-hq/wellness-backend-go/internal/repository/postgresql"
)

var reportCols = []string{
	"id", "employee_id", "company_id", "created_at",
	"overall_wellness", "mood_rating", "stress_level", "energy_level",
	"work_satisfaction", "work_life_balance", "anxiety_level", "confidence_level",
	"sleep_quality", "risk_level", "ai_analysis", "session_type", "session_duration",
}

func reportRow(rows *pgxmock.Rows, id, employeeID string, createdAt time.Time, overall int, risk wellness.RiskLevel) *pgxmock.Rows {
	return rows.AddRow(
		id, employeeID, "acme", createdAt,
		overall, 5, 5, 5,
		5, 5, 5, 5,
		5, risk, (*string)(nil), (*string)(nil), (*int)(nil),
	)
}

func TestReportRepository_ListRecentByEmployees(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(reportCols)
	reportRow(rows, "r2", "e1", since.Add(48*time.Hour), 7, wellness.RiskLow)
	reportRow(rows, "r1", "e2", since.Add(24*time.Hour), 3, wellness.RiskHigh)

	mock.ExpectQuery("SELECT (.+) FROM mental_health_reports").
		WithArgs("acme", []string{"e1", "e2"}, since).
		WillReturnRows(rows)

	repo := postgresql.NewReportRepository(mock, 10)

	reports, err := repo.ListRecentByEmployees(context.Background(), "acme", []string{"e1", "e2"}, since)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID)
	assert.Equal(t, wellness.RiskHigh, reports[1].RiskLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_ListRecentByEmployees_EmptyIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := postgresql.NewReportRepository(mock, 10)

	// No query issued for an empty id set.
	reports, err := repo.ListRecentByEmployees(context.Background(), "acme", nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_ListRecentByEmployees_OverBatchLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := postgresql.NewReportRepository(mock, 2)

	_, err = repo.ListRecentByEmployees(context.Background(), "acme", []string{"a", "b", "c"}, time.Now())
	assert.ErrorIs(t, err, wellness.ErrBatchTooLarge)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_BatchLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Equal(t, 25, postgresql.NewReportRepository(mock, 25).BatchLimit())

	// Non-positive configuration falls back to the default.
	assert.Equal(t, 10, postgresql.NewReportRepository(mock, 0).BatchLimit())
}
