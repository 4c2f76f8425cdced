package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dustin/go-humanize"
)

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

// now is a test seam for relative completion times.
var now = time.Now

func formatTask(t api.Task) string {
	mark := " "
	suffix := ""
	if t.Completed {
		mark = "x"
		if t.CompletedAt != nil {
			suffix = fmt.Sprintf("  (done %s)", humanize.RelTime(time.UnixMilli(*t.CompletedAt), now(), "ago", "from now"))
		}
	}
	return fmt.Sprintf("[%s] %s  %s%s", mark, t.ID, t.Text, suffix)
}

func (a *App) printTask(t *api.Task) {
	fmt.Fprintln(a.out, formatTask(*t))
}

func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("add <text>")
	}
	task, err := a.api.CreateTask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) List(ctx context.Context) error {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintln(a.out, formatTask(t))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	task, err := a.api.GetTask(ctx, args[0])
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("done <id>")
	}
	task, err := a.api.UpdateTask(ctx, args[0], api.TaskUpdate{Completed: true})
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) Undo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("undo <id>")
	}
	task, err := a.api.UpdateTask(ctx, args[0], api.TaskUpdate{})
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

// Edit replaces the text of a task. A completed task stays completed, with
// a fresh completion time, since the server recomputes completion on every
// update.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("edit <id> <text>")
	}
	id := args[0]
	current, err := a.api.GetTask(ctx, id)
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	task, err := a.api.UpdateTask(ctx, id, api.TaskUpdate{Text: &text, Completed: current.Completed})
	if err != nil {
		return err
	}
	a.printTask(task)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rm <id>")
	}
	task, err := a.api.DeleteTask(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed", task.ID)
	return nil
}
