package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bdutremble/projects/internal/domain/project"
	"github.com/google/uuid"
)

// ProjectService is the record service the console drives.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Get(ctx context.Context, id int) (*project.Project, error)
	Update(ctx context.Context, req project.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	AddStep(ctx context.Context, projectID int, text string) (*project.Step, error)
	AddMaterial(ctx context.Context, req project.AddMaterialRequest) (*project.Material, error)
}

// Config holds the collaborators of an App.
type Config struct {
	Service ProjectService
	In      io.Reader
	Out     io.Writer
	Logger  *slog.Logger
	// SessionID tags log lines; a random one is generated when empty.
	SessionID string
}

// App is the interactive menu loop. It owns the session's selected project.
type App struct {
	service    ProjectService
	prompt     *Prompter
	out        io.Writer
	styles     styles
	session    *Session
	logger     *slog.Logger
	operations []operation
}

type operation struct {
	key   int
	label string
	name  string
	run   func(ctx context.Context) error
}

// New creates an App.
func New(cfg Config) (*App, error) {
	if cfg.Service == nil {
		return nil, errors.New("cli: service is required")
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}

	session, err := NewSession(cfg.SessionID)
	if err != nil {
		return nil, err
	}

	a := &App{
		service: cfg.Service,
		prompt:  NewPrompter(cfg.In, cfg.Out),
		out:     cfg.Out,
		styles:  newStyles(cfg.Out),
		session: session,
		logger:  cfg.Logger.With("session_id", cfg.SessionID),
	}
	a.operations = []operation{
		{key: 1, label: "Add a project", name: "create", run: a.createProject},
		{key: 2, label: "List projects", name: "list", run: a.listProjects},
		{key: 3, label: "Select a project", name: "select", run: a.selectProject},
		{key: 4, label: "Update project details", name: "update", run: a.updateProject},
		{key: 5, label: "Delete a project", name: "delete", run: a.deleteProject},
		{key: 6, label: "Add step to current project", name: "add-step", run: a.addStep},
		{key: 7, label: "Add material to current project", name: "add-material", run: a.addMaterial},
	}
	return a, nil
}

// Session exposes the selection state.
func (a *App) Session() *Session {
	return a.session
}

// Run shows the menu and dispatches selections until the user submits a
// blank selection or input ends. Failed operations are reported and the loop
// continues; only unreadable input or a canceled context stop it with an error.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("console session started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.printMenu()

		selection, err := a.prompt.Int("Enter a menu selection")
		var verr *ValidationError
		switch {
		case errors.Is(err, io.EOF):
			a.exit()
			return nil
		case errors.As(err, &verr):
			a.report("menu", err)
			continue
		case err != nil:
			return fmt.Errorf("read selection: %w", err)
		}

		if selection == nil {
			a.exit()
			return nil
		}

		op, ok := a.lookup(*selection)
		if !ok {
			a.println("")
			a.println(a.styles.warning.Render(fmt.Sprintf("%d is not a valid menu selection. Try again.", *selection)))
			continue
		}

		if err := op.run(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				a.exit()
				return nil
			}
			a.report(op.name, err)
		}
	}
}

func (a *App) lookup(key int) (operation, bool) {
	for _, op := range a.operations {
		if op.key == key {
			return op, true
		}
	}
	return operation{}, false
}

func (a *App) report(op string, err error) {
	a.logger.Warn("operation failed", "operation", op, "error", err)
	a.println("")
	a.println(a.styles.error.Render("Error: " + err.Error() + " Try again."))
}

func (a *App) exit() {
	a.session.Clear()
	a.logger.Info("console session ended")
	a.println("")
	a.println(a.styles.heading.Render("Exiting the menu. Thanks for using this program!"))
}

func (a *App) printMenu() {
	a.println("")
	a.println(a.styles.heading.Render("These are the available selections. Press the Enter key to quit:"))
	for _, op := range a.operations {
		a.println(fmt.Sprintf("  %d) %s", op.key, op.label))
	}

	a.println("")
	cur := a.session.Current()
	if cur == nil {
		a.println(a.styles.muted.Render("You are not working with a project."))
		return
	}
	a.println("You are working with project: " + summary(cur))
	for _, line := range details(cur) {
		a.println(line)
	}
}

func (a *App) println(line string) {
	fmt.Fprintln(a.out, line)
}
