package wellness

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Report is a wellness survey submission. Reports are created by the
// employee-facing survey flow and are read-only here: the hierarchy core
// only filters and aggregates them.
type Report struct {
	ID         string
	EmployeeID string
	CompanyID  string
	CreatedAt  time.Time

	// Survey metrics, 1-10.
	OverallWellness  int
	MoodRating       int
	StressLevel      int
	EnergyLevel      int
	WorkSatisfaction int
	WorkLifeBalance  int
	AnxietyLevel     int
	ConfidenceLevel  int
	SleepQuality     int

	// RiskLevel is classified upstream when the survey is scored.
	RiskLevel RiskLevel

	AIAnalysis      *string
	SessionType     *string
	SessionDuration *int
}
