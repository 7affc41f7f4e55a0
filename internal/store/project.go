package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/bdutremble/projects/internal/repository"
	"github.com/shopspring/decimal"
)

// ProjectRepository implements project.Repository on top of DB.
type ProjectRepository struct {
	db     *DB
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db, logger: db.logger}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create inserts a new project and sets its ID
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO project (project_name, estimated_hours, actual_hours, difficulty, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.EstimatedHours,
		proj.ActualHours,
		proj.Difficulty,
		proj.Notes,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read project id: %w", err)
	}
	proj.ID = int(id)

	r.logger.Debug("inserted project", "project_id", proj.ID)
	return nil
}

// Get retrieves a project with its steps and materials
func (r *ProjectRepository) Get(ctx context.Context, id int) (*project.Project, error) {
	query := `
		SELECT project_id, project_name, estimated_hours, actual_hours, difficulty, notes, created_at, updated_at
		FROM project
		WHERE project_id = ?
	`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if proj.Steps, err = r.listSteps(ctx, r.db, id); err != nil {
		return nil, err
	}
	if proj.Materials, err = r.listMaterials(ctx, r.db, id); err != nil {
		return nil, err
	}

	return proj, nil
}

// List returns all projects ordered by name, without children
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `
		SELECT project_id, project_name, estimated_hours, actual_hours, difficulty, notes, created_at, updated_at
		FROM project
		ORDER BY project_name, project_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update replaces the detail columns of a project
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE project
		SET project_name = ?, estimated_hours = ?, actual_hours = ?, difficulty = ?, notes = ?, updated_at = ?
		WHERE project_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.EstimatedHours,
		proj.ActualHours,
		proj.Difficulty,
		proj.Notes,
		proj.UpdatedAt,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a project and its children in one transaction
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM material WHERE project_id = ?`,
		`DELETE FROM step WHERE project_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete project children: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM project WHERE project_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AddStep appends a step after the project's current last step and sets its ID and Order
func (r *ProjectRepository) AddStep(ctx context.Context, step *project.Step) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, step.ProjectID); err != nil {
		return err
	}

	var order int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(step_order), 0) + 1 FROM step WHERE project_id = ?`,
		step.ProjectID,
	).Scan(&order)
	if err != nil {
		return fmt.Errorf("failed to get next step order: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO step (project_id, step_text, step_order) VALUES (?, ?, ?)`,
		step.ProjectID, step.Text, order,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to insert step: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read step id: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	step.ID = int(id)
	step.Order = order
	return nil
}

// AddMaterial inserts a material for an existing project and sets its ID
func (r *ProjectRepository) AddMaterial(ctx context.Context, mat *project.Material) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := projectExists(ctx, tx, mat.ProjectID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO material (project_id, material_name, num_required, cost) VALUES (?, ?, ?, ?)`,
		mat.ProjectID, mat.Name, mat.NumRequired, mat.Cost,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to insert material: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read material id: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	mat.ID = int(id)
	return nil
}

func (r *ProjectRepository) listSteps(ctx context.Context, q querier, projectID int) ([]project.Step, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT step_id, project_id, step_text, step_order FROM step WHERE project_id = ? ORDER BY step_order, step_id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []project.Step
	for rows.Next() {
		var s project.Step
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Text, &s.Order); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

func (r *ProjectRepository) listMaterials(ctx context.Context, q querier, projectID int) ([]project.Material, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT material_id, project_id, material_name, num_required, cost FROM material WHERE project_id = ? ORDER BY material_id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	var materials []project.Material
	for rows.Next() {
		var m project.Material
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Name, &m.NumRequired, &m.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		m.Cost = roundCents(m.Cost)
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func projectExists(ctx context.Context, q querier, id int) error {
	var found int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM project WHERE project_id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&proj.EstimatedHours,
		&proj.ActualHours,
		&proj.Difficulty,
		&proj.Notes,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	proj.EstimatedHours = roundCents(proj.EstimatedHours)
	proj.ActualHours = roundCents(proj.ActualHours)
	return &proj, nil
}

// roundCents restores the two-digit scale that sqlite's numeric affinity drops.
func roundCents(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := d.Round(2)
	return &v
}
