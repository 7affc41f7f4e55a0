package project

import "context"

// Repository provides persistence for projects and their children.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id int) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id int) error
	AddStep(ctx context.Context, step *Step) error
	AddMaterial(ctx context.Context, mat *Material) error
}
