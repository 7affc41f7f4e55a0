package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/shopspring/decimal"
)

// projectFields holds the answers to the project prompts. Nil means the
// prompt was left blank.
type projectFields struct {
	Name           *string
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
	Difficulty     *int
	Notes          *string
}

// merge builds an update that keeps every field of cur left blank in f.
func (f projectFields) merge(cur *project.Project) project.UpdateRequest {
	req := project.UpdateRequest{
		ID:             cur.ID,
		Name:           cur.Name,
		EstimatedHours: keep(f.EstimatedHours, cur.EstimatedHours),
		ActualHours:    keep(f.ActualHours, cur.ActualHours),
		Difficulty:     keep(f.Difficulty, cur.Difficulty),
		Notes:          keep(f.Notes, cur.Notes),
	}
	if f.Name != nil {
		req.Name = *f.Name
	}
	return req
}

func keep[T any](v, current *T) *T {
	if v != nil {
		return v
	}
	return current
}

// promptProjectFields asks for every project field. With cur set, each label
// shows the value a blank answer keeps.
func (a *App) promptProjectFields(cur *project.Project) (projectFields, error) {
	labels := [5]string{
		"Enter the project name",
		"Enter the estimated hours",
		"Enter the actual hours",
		"Enter the project difficulty (1-5)",
		"Enter the project notes",
	}
	if cur != nil {
		labels[0] = withCurrent(labels[0], cur.Name)
		labels[1] = withCurrent(labels[1], formatDecimal(cur.EstimatedHours))
		labels[2] = withCurrent(labels[2], formatDecimal(cur.ActualHours))
		labels[3] = withCurrent(labels[3], formatInt(cur.Difficulty))
		labels[4] = withCurrent(labels[4], formatText(cur.Notes))
	}

	var f projectFields
	var err error
	if f.Name, err = a.prompt.Text(labels[0]); err != nil {
		return projectFields{}, err
	}
	if f.EstimatedHours, err = a.prompt.Decimal(labels[1]); err != nil {
		return projectFields{}, err
	}
	if f.ActualHours, err = a.prompt.Decimal(labels[2]); err != nil {
		return projectFields{}, err
	}
	if f.Difficulty, err = a.prompt.Int(labels[3]); err != nil {
		return projectFields{}, err
	}
	if f.Notes, err = a.prompt.Text(labels[4]); err != nil {
		return projectFields{}, err
	}
	return f, nil
}

func (a *App) createProject(ctx context.Context) error {
	f, err := a.promptProjectFields(nil)
	if err != nil {
		return err
	}

	req := project.CreateRequest{
		EstimatedHours: f.EstimatedHours,
		ActualHours:    f.ActualHours,
		Difficulty:     f.Difficulty,
		Notes:          f.Notes,
	}
	if f.Name != nil {
		req.Name = *f.Name
	}

	proj, err := a.service.Create(ctx, req)
	if err != nil {
		return err
	}

	// The new project is not selected.
	a.println(a.styles.success.Render("You have successfully created project: " + summary(proj)))
	return nil
}

func (a *App) listProjects(ctx context.Context) error {
	_, err := a.printProjects(ctx)
	return err
}

func (a *App) printProjects(ctx context.Context) ([]project.Project, error) {
	projects, err := a.service.List(ctx)
	if err != nil {
		return nil, err
	}

	a.println("")
	a.println(a.styles.heading.Render("Projects"))
	if len(projects) == 0 {
		a.println(a.styles.muted.Render("   (none)"))
	}
	for _, p := range projects {
		a.println(fmt.Sprintf("   %d: %s", p.ID, p.Name))
	}
	return projects, nil
}

func (a *App) selectProject(ctx context.Context) error {
	if _, err := a.printProjects(ctx); err != nil {
		return err
	}

	id, err := a.prompt.Int("Enter a project ID to select a project")
	if err != nil {
		return err
	}

	a.session.Clear()
	if id == nil {
		return nil
	}

	proj, err := a.service.Get(ctx, *id)
	if err != nil {
		return err
	}
	a.session.Select(proj)
	a.logger.Info("project selected", "project_id", proj.ID)
	return nil
}

func (a *App) updateProject(ctx context.Context) error {
	cur, err := a.requireSelection()
	if err != nil {
		a.guide(err)
		return nil
	}

	f, err := a.promptProjectFields(cur)
	if err != nil {
		return err
	}

	if err := a.service.Update(ctx, f.merge(cur)); err != nil {
		return err
	}
	return a.refresh(ctx, cur.ID)
}

func (a *App) deleteProject(ctx context.Context) error {
	if _, err := a.printProjects(ctx); err != nil {
		return err
	}

	id, err := a.prompt.Int("Enter a project ID to delete")
	if err != nil || id == nil {
		return err
	}

	if err := a.service.Delete(ctx, *id); err != nil {
		return err
	}
	a.println(a.styles.success.Render(fmt.Sprintf("Project %d was deleted successfully.", *id)))

	if cur := a.session.Current(); cur != nil && cur.ID == *id {
		a.session.Clear()
	}
	return nil
}

func (a *App) addStep(ctx context.Context) error {
	cur, err := a.requireSelection()
	if err != nil {
		a.guide(err)
		return nil
	}

	text, err := a.prompt.Text("Enter the step text")
	if err != nil || text == nil {
		return err
	}

	if _, err := a.service.AddStep(ctx, cur.ID, *text); err != nil {
		return err
	}
	return a.refresh(ctx, cur.ID)
}

func (a *App) addMaterial(ctx context.Context) error {
	cur, err := a.requireSelection()
	if err != nil {
		a.guide(err)
		return nil
	}

	name, err := a.prompt.Text("Enter the material to add")
	if err != nil {
		return err
	}
	quantity, err := a.prompt.Int("Enter the quantity")
	if err != nil {
		return err
	}
	cost, err := a.prompt.Decimal("Enter material cost per unit")
	if err != nil {
		return err
	}
	if name == nil {
		return nil
	}

	_, err = a.service.AddMaterial(ctx, project.AddMaterialRequest{
		ProjectID:   cur.ID,
		Name:        *name,
		NumRequired: quantity,
		Cost:        cost,
	})
	if err != nil {
		return err
	}
	return a.refresh(ctx, cur.ID)
}

func (a *App) requireSelection() (*project.Project, error) {
	cur := a.session.Current()
	if cur == nil {
		return nil, ErrNoSelection
	}
	return cur, nil
}

func (a *App) guide(err error) {
	a.logger.Debug("operation skipped", "reason", err)
	a.println("")
	a.println(a.styles.warning.Render("You must first select a project. Please select a project."))
}

// refresh replaces the selected project with a fresh copy from the service.
func (a *App) refresh(ctx context.Context, id int) error {
	proj, err := a.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			a.session.Clear()
		}
		return err
	}
	a.session.Select(proj)
	return nil
}
