package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
)

// taskAPI is the server surface the commands use; *api.Client implements it.
type taskAPI interface {
	LoggedIn() bool
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, password string) (*api.Account, error)
	Login(ctx context.Context, email, password string) (*api.Account, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.Account, error)
	CreateTask(ctx context.Context, text string) (*api.Task, error)
	ListTasks(ctx context.Context) ([]api.Task, error)
	GetTask(ctx context.Context, id string) (*api.Task, error)
	UpdateTask(ctx context.Context, id string, update api.TaskUpdate) (*api.Task, error)
	DeleteTask(ctx context.Context, id string) (*api.Task, error)
}

type App struct {
	config *config.Config
	api    taskAPI
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) *App {
	return newApp(c, api.New(c.ServerURL, c.Timeout), os.Stdin, os.Stdout)
}

func newApp(c *config.Config, client taskAPI, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: client, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

// Run greets the user, reports whether the server is reachable and runs the
// REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to TaskKeeper CLI (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: server %s is not reachable: %v\n", a.config.ServerURL, err)
	}
	runREPL(ctx, a, a.status, a.reader)
}
