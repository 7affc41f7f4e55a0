package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bdutremble/projects/internal/repository"
	"github.com/shopspring/decimal"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	// now is time.Now outside tests.
	now func() time.Time
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// CreateRequest defines project creation inputs. Nil fields are stored as absent.
type CreateRequest struct {
	Name           string
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
	Difficulty     *int
	Notes          *string
}

// UpdateRequest replaces every detail field of an existing project.
type UpdateRequest struct {
	ID             int
	Name           string
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
	Difficulty     *int
	Notes          *string
}

// AddMaterialRequest defines a material to attach to a project.
type AddMaterialRequest struct {
	ProjectID   int
	Name        string
	NumRequired *int
	Cost        *decimal.Decimal
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if err := validateHours(req.EstimatedHours, req.ActualHours); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	proj := &Project{
		Name:           req.Name,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Difficulty:     req.Difficulty,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", proj.ID, "name", proj.Name)
	return proj, nil
}

// Get fetches a project with its steps and materials.
func (s *Service) Get(ctx context.Context, id int) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id, "getting project")
	}
	return proj, nil
}

// List returns all projects without their children.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Update replaces the details of an existing project.
func (s *Service) Update(ctx context.Context, req UpdateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if err := validateHours(req.EstimatedHours, req.ActualHours); err != nil {
		return err
	}

	proj := &Project{
		ID:             req.ID,
		Name:           req.Name,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Difficulty:     req.Difficulty,
		Notes:          req.Notes,
		UpdatedAt:      s.now().UTC(),
	}
	if err := s.repo.Update(ctx, proj); err != nil {
		return s.mapError(err, req.ID, "updating project")
	}

	s.logger.Info("project updated", "project_id", req.ID)
	return nil
}

// Delete removes a project together with its steps and materials.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, id, "deleting project")
	}

	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// AddStep appends a step to the end of a project's step list.
func (s *Service) AddStep(ctx context.Context, projectID int, text string) (*Step, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: step text is required", ErrInvalidInput)
	}

	step := &Step{ProjectID: projectID, Text: text}
	if err := s.repo.AddStep(ctx, step); err != nil {
		return nil, s.mapError(err, projectID, "adding step")
	}

	s.logger.Info("step added", "project_id", projectID, "step_id", step.ID, "order", step.Order)
	return step, nil
}

// AddMaterial attaches a material to a project.
func (s *Service) AddMaterial(ctx context.Context, req AddMaterialRequest) (*Material, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: material name is required", ErrInvalidInput)
	}
	if err := validateAmount("cost", req.Cost); err != nil {
		return nil, err
	}

	mat := &Material{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		NumRequired: req.NumRequired,
		Cost:        req.Cost,
	}
	if err := s.repo.AddMaterial(ctx, mat); err != nil {
		return nil, s.mapError(err, req.ProjectID, "adding material")
	}

	s.logger.Info("material added", "project_id", req.ProjectID, "material_id", mat.ID)
	return mat, nil
}

func (s *Service) mapError(err error, id int, op string) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrForeignKeyViolation) {
		return fmt.Errorf("%w: id %d", ErrProjectNotFound, id)
	}
	return fmt.Errorf("%s: %w", op, err)
}
