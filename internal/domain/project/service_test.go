package project_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/bdutremble/projects/internal/repository"
	"github.com/bdutremble/projects/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	hours := decimal.RequireFromString("10.00")
	difficulty := 3
	notes := "build a deck"

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.ID == 0 && p.Name == "Deck" && !p.CreatedAt.IsZero()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*project.Project).ID = 7
	}).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Create(ctx, project.CreateRequest{
		Name:           "Deck",
		EstimatedHours: &hours,
		Difficulty:     &difficulty,
		Notes:          &notes,
	})
	require.NoError(t, err)
	require.Equal(t, 7, proj.ID)
	require.True(t, proj.EstimatedHours.Equal(hours))
	require.Nil(t, proj.ActualHours)
	require.Equal(t, proj.CreatedAt, proj.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestProjectService_CreateValidation(t *testing.T) {
	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil)

	_, err := svc.Create(context.Background(), project.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, 5).Return((*project.Project)(nil), repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	_, err := svc.Get(ctx, 5)
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	require.Contains(t, err.Error(), "5")
}

func TestProjectService_GetWrapsStorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, 1).Return((*project.Project)(nil), boom)

	svc := project.NewService(repo, nil)
	_, err := svc.Get(ctx, 1)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Update", ctx, mock.Anything).Return(repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	err := svc.Update(ctx, project.UpdateRequest{ID: 9, Name: "Shed"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_UpdateStampsModification(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Update", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.ID == 9 && p.Name == "Shed" && !p.UpdatedAt.IsZero()
	})).Return(nil)

	svc := project.NewService(repo, nil)
	require.NoError(t, svc.Update(ctx, project.UpdateRequest{ID: 9, Name: "Shed"}))
	repo.AssertExpectations(t)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Delete", ctx, 3).Return(nil)
	repo.On("Delete", ctx, 4).Return(repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	require.NoError(t, svc.Delete(ctx, 3))
	require.ErrorIs(t, svc.Delete(ctx, 4), project.ErrProjectNotFound)
}

func TestProjectService_AddStep(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("AddStep", ctx, mock.MatchedBy(func(s *project.Step) bool {
		return s.ProjectID == 5 && s.Text == "sand the wood"
	})).Run(func(args mock.Arguments) {
		step := args.Get(1).(*project.Step)
		step.ID = 11
		step.Order = 2
	}).Return(nil)

	svc := project.NewService(repo, nil)
	step, err := svc.AddStep(ctx, 5, "sand the wood")
	require.NoError(t, err)
	require.Equal(t, 11, step.ID)
	require.Equal(t, 2, step.Order)

	_, err = svc.AddStep(ctx, 5, "")
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_AddMaterialMissingProject(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("AddMaterial", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := project.NewService(repo, nil)
	_, err := svc.AddMaterial(ctx, project.AddMaterialRequest{ProjectID: 42, Name: "screws"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.AddMaterial(ctx, project.AddMaterialRequest{ProjectID: 42})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_CreateUsesClock(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 9, 14, 30, 0, 0, time.FixedZone("EST", -5*60*60))

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	project.SetClock(svc, func() time.Time { return fixed })

	proj, err := svc.Create(ctx, project.CreateRequest{Name: "Deck"})
	require.NoError(t, err)
	require.Equal(t, fixed.UTC(), proj.CreatedAt)
	require.Equal(t, fixed.UTC(), proj.UpdatedAt)
	require.Equal(t, time.UTC, proj.CreatedAt.Location())

	later := fixed.Add(time.Hour)
	project.SetClock(svc, func() time.Time { return later })
	require.NoError(t, svc.Update(ctx, project.UpdateRequest{ID: proj.ID, Name: "Deck"}))

	updated := repo.Calls[1].Arguments.Get(1).(*project.Project)
	require.Equal(t, later.UTC(), updated.UpdatedAt)
}

func TestProjectService_RejectsOutOfRangeAmounts(t *testing.T) {
	ctx := context.Background()
	tooBig := decimal.RequireFromString("100000")
	huge := decimal.New(1, 50000000)
	fits := decimal.RequireFromString("99999.99")

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	svc := project.NewService(repo, nil)

	_, err := svc.Create(ctx, project.CreateRequest{Name: "Deck", EstimatedHours: &tooBig})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	require.Contains(t, err.Error(), "estimated hours")

	_, err = svc.Create(ctx, project.CreateRequest{Name: "Deck", ActualHours: &huge})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	err = svc.Update(ctx, project.UpdateRequest{ID: 1, Name: "Deck", ActualHours: &tooBig})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.AddMaterial(ctx, project.AddMaterialRequest{ProjectID: 1, Name: "boards", Cost: &huge})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	require.Contains(t, err.Error(), "cost")

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "AddMaterial", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	_, err = svc.Create(ctx, project.CreateRequest{Name: "Deck", EstimatedHours: &fits})
	require.NoError(t, err)
}

func TestInAmountRange(t *testing.T) {
	cases := []struct {
		name string
		in   decimal.Decimal
		want bool
	}{
		{"zero", decimal.RequireFromString("0"), true},
		{"largest", decimal.RequireFromString("99999.99"), true},
		{"smallest", decimal.RequireFromString("-99999.99"), true},
		{"too large", decimal.RequireFromString("100000"), false},
		{"too small", decimal.RequireFromString("-100000.00"), false},
		{"huge exponent", decimal.New(1, 50000000), false},
		{"tiny exponent", decimal.New(1, -50000000), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, project.InAmountRange(tc.in))
		})
	}
}
