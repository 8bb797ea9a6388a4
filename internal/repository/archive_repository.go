package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meteo-qc/internal/models"
	"meteo-qc/internal/qc"
	"meteo-qc/pkg/database"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

// ArchiveRepository provides data access for archived quality-control runs
type ArchiveRepository interface {
	// Run operations
	CreateRun(ctx context.Context, run *models.QCRun) error
	GetRun(ctx context.Context, id int64) (*models.QCRun, error)
	ListRuns(ctx context.Context, limit, offset int) ([]*models.QCRun, error)

	// Row operations
	InsertObservationsBatch(ctx context.Context, runID int64, observations []models.Observation) error
	InsertFindingsBatch(ctx context.Context, runID int64, findings []qc.Finding) error
	GetObservations(ctx context.Context, filter ObservationFilter) ([]*models.Observation, int, error)
	GetFindings(ctx context.Context, filter FindingFilter) ([]*qc.Finding, int, error)

	// Utility operations
	HealthCheck(ctx context.Context) error
}

// ObservationFilter defines filters for querying archived observations
type ObservationFilter struct {
	RunID     int64
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// FindingFilter defines filters for querying archived findings
type FindingFilter struct {
	RunID   int64
	Kind    *string
	Channel *string
	Limit   int
	Offset  int
}

// NotFoundError indicates a missing archive resource
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// archiveRepository implements ArchiveRepository
type archiveRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) ArchiveRepository {
	return &archiveRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// CreateRun stores a run record and fills in its generated ID
func (r *archiveRepository) CreateRun(ctx context.Context, run *models.QCRun) error {
	query := `
		INSERT INTO qc_runs (
			station_id, label, source_file, step_seconds,
			total_rows, missing_count, out_of_range_count, gradient_count,
			started_at, completed_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		run.StationID,
		run.Label,
		run.SourceFile,
		run.StepSeconds,
		run.TotalRows,
		run.MissingCount,
		run.OutOfRangeCount,
		run.GradientCount,
		run.StartedAt,
		run.CompletedAt,
		run.CreatedAt,
	).Scan(&run.ID)

	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_CREATE_RUN] Run created", logging.Fields{
		"run_id":     run.ID,
		"station_id": run.StationID,
		"label":      run.Label,
	})

	return nil
}

// GetRun retrieves a run by ID
func (r *archiveRepository) GetRun(ctx context.Context, id int64) (*models.QCRun, error) {
	query := `
		SELECT id, station_id, label, source_file, step_seconds,
		       total_rows, missing_count, out_of_range_count, gradient_count,
		       started_at, completed_at, created_at
		FROM qc_runs
		WHERE id = $1
	`

	var run models.QCRun
	err := r.db.GetContext(ctx, "get_run", &run, query, id)

	if err == sql.ErrNoRows {
		return nil, &NotFoundError{
			Resource: "qc_run",
			ID:       fmt.Sprintf("%d", id),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

// ListRuns retrieves runs with pagination, newest first
func (r *archiveRepository) ListRuns(ctx context.Context, limit, offset int) ([]*models.QCRun, error) {
	query := `
		SELECT id, station_id, label, source_file, step_seconds,
		       total_rows, missing_count, out_of_range_count, gradient_count,
		       started_at, completed_at, created_at
		FROM qc_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	var runs []*models.QCRun
	err := r.db.SelectContext(ctx, "list_runs", &runs, query, limit, offset)

	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

// InsertObservationsBatch stores the cleaned series rows of a run in a
// single transaction
func (r *archiveRepository) InsertObservationsBatch(ctx context.Context, runID int64, observations []models.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	timer := time.Now()
	defer func() {
		duration := time.Since(timer)
		r.metrics.ArchiveBatchSize.Observe(float64(len(observations)))
		r.logger.Debug(ctx, "[REPO_BATCH_INSERT] Observation batch insert completed", logging.Fields{
			"run_id":      runID,
			"count":       len(observations),
			"duration_ms": duration.Milliseconds(),
		})
	}()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO qc_observations (
			run_id, observed_at,
			temperature, humidity, wind_speed, wind_direction,
			wind_gust, precipitation, pressure, battery
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range observations {
		obs := &observations[i]
		_, err := stmt.ExecContext(ctx,
			runID,
			obs.Timestamp,
			obs.Temperature,
			obs.Humidity,
			obs.WindSpeed,
			obs.WindDirection,
			obs.WindGust,
			obs.Precipitation,
			obs.Pressure,
			obs.Battery,
		)
		if err != nil {
			return fmt.Errorf("failed to insert observation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertFindingsBatch stores the findings of a run in a single transaction
func (r *archiveRepository) InsertFindingsBatch(ctx context.Context, runID int64, findings []qc.Finding) error {
	if len(findings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO qc_findings (run_id, kind, channel, observed_at, value)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		_, err := stmt.ExecContext(ctx,
			runID,
			string(f.Kind),
			string(f.Channel),
			f.Timestamp,
			f.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetObservations retrieves archived observations with filtering and
// pagination
func (r *archiveRepository) GetObservations(ctx context.Context, filter ObservationFilter) ([]*models.Observation, int, error) {
	query := `
		SELECT observed_at,
		       temperature, humidity, wind_speed, wind_direction,
		       wind_gust, precipitation, pressure, battery
		FROM qc_observations
		WHERE run_id = $1
	`
	args := []interface{}{filter.RunID}
	argNum := 2

	if filter.StartTime != nil {
		query += fmt.Sprintf(" AND observed_at >= $%d", argNum)
		args = append(args, *filter.StartTime)
		argNum++
	}

	if filter.EndTime != nil {
		query += fmt.Sprintf(" AND observed_at <= $%d", argNum)
		args = append(args, *filter.EndTime)
		argNum++
	}

	countQuery := "SELECT COUNT(*) FROM (" + query + ") AS count_query"
	var totalCount int
	err := r.db.GetContext(ctx, "count_observations", &totalCount, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count observations: %w", err)
	}

	query += " ORDER BY observed_at"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	var observations []*models.Observation
	err = r.db.SelectContext(ctx, "get_observations", &observations, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get observations: %w", err)
	}

	return observations, totalCount, nil
}

// GetFindings retrieves archived findings with filtering and pagination
func (r *archiveRepository) GetFindings(ctx context.Context, filter FindingFilter) ([]*qc.Finding, int, error) {
	query := `
		SELECT kind, channel, observed_at, value
		FROM qc_findings
		WHERE run_id = $1
	`
	args := []interface{}{filter.RunID}
	argNum := 2

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argNum)
		args = append(args, *filter.Kind)
		argNum++
	}

	if filter.Channel != nil {
		query += fmt.Sprintf(" AND channel = $%d", argNum)
		args = append(args, *filter.Channel)
		argNum++
	}

	countQuery := "SELECT COUNT(*) FROM (" + query + ") AS count_query"
	var totalCount int
	err := r.db.GetContext(ctx, "count_findings", &totalCount, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count findings: %w", err)
	}

	query += " ORDER BY observed_at"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	var findings []*qc.Finding
	err = r.db.SelectContext(ctx, "get_findings", &findings, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get findings: %w", err)
	}

	return findings, totalCount, nil
}

// HealthCheck verifies database connectivity
func (r *archiveRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
