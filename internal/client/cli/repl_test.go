package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Me(ctx context.Context) error   { return f.record("me", nil) }
func (f *fakeExec) List(ctx context.Context) error { return f.record("list", nil) }
func (f *fakeExec) Add(ctx context.Context, args []string) error {
	return f.record("add", args)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Done(ctx context.Context, args []string) error {
	return f.record("done", args)
}
func (f *fakeExec) Undo(ctx context.Context, args []string) error {
	return f.record("undo", args)
}
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Remove(ctx context.Context, args []string) error {
	return f.record("rm", args)
}

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrint(t)

	input := strings.Join([]string{
		"help",
		"login",
		"",
		"add buy   milk",
		"l",
		"show 1",
		"done 1",
		"undo 1",
		"edit 1 new text",
		"rm 1",
		"me",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "add", "list", "show", "done", "undo", "edit", "rm", "me", "logout"}, exec.calls)
	assert.Equal(t, []string{"buy", "milk"}, exec.args[1])
	assert.Equal(t, []string{"1", "new", "text"}, exec.args[6])
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrint(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, strings.Join(*lines, "\n"), "register, login, exit")

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, strings.Join(*lines, "\n"), "add <text>")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{err: errors.New("server down")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\nfoobar\nquit\n")))

	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "Error: server down")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Equal(t, []string{"list"}, exec.calls)
}
