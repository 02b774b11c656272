package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/wellness"
	"github.com/wellmind-hq/wellness-backend-go/internal/pkg/database"
)

const reportColumns = `id, employee_id, company_id, created_at,
	overall_wellness, mood_rating, stress_level, energy_level,
	work_satisfaction, work_life_balance, anxiety_level, confidence_level,
	sleep_quality, risk_level, ai_analysis, session_type, session_duration`

type reportRepositoryImpl struct {
	db         database.Querier
	batchLimit int
}

// NewReportRepository wraps the report store. batchLimit caps the id-set
// size per query; callers chunk larger sets.
func NewReportRepository(db database.Querier, batchLimit int) wellness.ReportRepository {
	if batchLimit < 1 {
		batchLimit = 10
	}
	return &reportRepositoryImpl{db: db, batchLimit: batchLimit}
}

// BatchLimit implements wellness.ReportRepository.
func (r *reportRepositoryImpl) BatchLimit() int {
	return r.batchLimit
}

// ListRecentByEmployees implements wellness.ReportRepository.
func (r *reportRepositoryImpl) ListRecentByEmployees(ctx context.Context, companyID string, employeeIDs []string, since time.Time) ([]wellness.Report, error) {
	if len(employeeIDs) == 0 {
		return []wellness.Report{}, nil
	}
	if len(employeeIDs) > r.batchLimit {
		return nil, wellness.ErrBatchTooLarge
	}

	query := `
		SELECT ` + reportColumns + `
		FROM mental_health_reports
		WHERE company_id = $1 AND employee_id = ANY($2) AND created_at >= $3
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, companyID, employeeIDs, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReports(rows)
}

func scanReport(row pgx.Row) (wellness.Report, error) {
	var rep wellness.Report
	err := row.Scan(
		&rep.ID,
		&rep.EmployeeID,
		&rep.CompanyID,
		&rep.CreatedAt,
		&rep.OverallWellness,
		&rep.MoodRating,
		&rep.StressLevel,
		&rep.EnergyLevel,
		&rep.WorkSatisfaction,
		&rep.WorkLifeBalance,
		&rep.AnxietyLevel,
		&rep.ConfidenceLevel,
		&rep.SleepQuality,
		&rep.RiskLevel,
		&rep.AIAnalysis,
		&rep.SessionType,
		&rep.SessionDuration,
	)
	if err != nil {
		return wellness.Report{}, err
	}
	return rep, nil
}

func collectReports(rows pgx.Rows) ([]wellness.Report, error) {
	reports := make([]wellness.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
