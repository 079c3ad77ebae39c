// Package commands implements the todo command line: it parses one command,
// applies it to the task repository and renders the resulting list.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/jrazmi/todolist/core/repositories/tasksrepo"
)

// Exit codes returned by Run.
const (
	ExitOK       = 0
	ExitRejected = 1
	ExitUsage    = 2
)

// Repository is the subset of tasksrepo.Repository the commands use.
type Repository interface {
	List() []tasksrepo.Task
	Get(index int) (tasksrepo.Task, error)
	Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error)
	Edit(ctx context.Context, index int, input tasksrepo.UpdateTask) (tasksrepo.Task, error)
	MarkCompleted(ctx context.Context, index int) (tasksrepo.Task, error)
	Delete(ctx context.Context, index int) (tasksrepo.Task, error)
}

type runFunc func(ctx context.Context, repo Repository, fs *flag.FlagSet, args []string) error

// command describes one subcommand and the messages shown for success and
// for each kind of rejection.
type command struct {
	name        string
	usage       string
	help        string
	success     string
	noTitle     string
	noSelection string
	run         runFunc
}

var commandList = []command{
	{
		name:  "list",
		usage: "list",
		help:  "show all tasks",
		run:   runList,
	},
	{
		name:    "add",
		usage:   "add -title T [-description D] [-category C]",
		help:    "add a pending task",
		success: "Task added successfully!",
		noTitle: "Title is required to add a task.",
		run:     runAdd,
	},
	{
		name:        "edit",
		usage:       "edit -n N [-title T] [-description D] [-category C]",
		help:        "change the given fields of task N",
		success:     "Task edited successfully!",
		noTitle:     "Title is required to save changes.",
		noSelection: "Please select a task to edit.",
		run:         runEdit,
	},
	{
		name:        "complete",
		usage:       "complete -n N",
		help:        "mark task N as completed",
		success:     "Task marked as completed!",
		noSelection: "Please select a task to mark as completed.",
		run:         runComplete,
	},
	{
		name:        "delete",
		usage:       "delete -n N",
		help:        "delete task N",
		success:     "Task deleted successfully!",
		noSelection: "Please select a task to delete.",
		run:         runDelete,
	},
}

// usageError marks a failure to parse command line flags.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError{err: err}
	}
	if fs.NArg() > 0 {
		return usageError{err: fmt.Errorf("unexpected arguments: %v", fs.Args())}
	}
	return nil
}

func runList(ctx context.Context, repo Repository, fs *flag.FlagSet, args []string) error {
	return parse(fs, args)
}

func runAdd(ctx context.Context, repo Repository, fs *flag.FlagSet, args []string) error {
	title := fs.String("title", "", "task title (required)")
	description := fs.String("description", "", "task description")
	category := fs.String("category", "", "task category")
	if err := parse(fs, args); err != nil {
		return err
	}

	_, err := repo.Create(ctx, tasksrepo.CreateTask{
		Title:       *title,
		Description: *description,
		Category:    *category,
	})
	return err
}

// runEdit starts from the task's current values and overwrites only the
// fields given on the command line.
func runEdit(ctx context.Context, repo Repository, fs *flag.FlagSet, args []string) error {
	n := fs.Int("n", 0, "task number as shown by list")
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	category := fs.String("category", "", "new category")
	if err := parse(fs, args); err != nil {
		return err
	}

	current, err := repo.Get(*n - 1)
	if err != nil {
		return err
	}
	input := tasksrepo.UpdateTask{
		Title:       current.Title,
		Description: current.Description,
		Category:    current.Category,
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			input.Title = *title
		case "description":
			input.Description = *description
		case "category":
			input.Category = *category
		}
	})

	_, err = repo.Edit(ctx, *n-1, input)
	return err
}

func runComplete(ctx context.Context, repo Repository, fs *flag.FlagSet, args []string) error {
	n := fs.Int("n", 0, "task number as shown by list")
	if err := parse(fs, args); err != nil {
		return err
	}
	_, err := repo.MarkCompleted(ctx, *n-1)
	return err
}

func runDelete(ctx context.Context, repo Repository, fs *flag.FlagSet, args []string) error {
	n := fs.Int("n", 0, "task number as shown by list")
	if err := parse(fs, args); err != nil {
		return err
	}
	_, err := repo.Delete(ctx, *n-1)
	return err
}

// Run executes args[0] with the remaining arguments and returns the process
// exit code. The task list is written to stdout after every command that
// changed memory, including one whose save failed.
func Run(ctx context.Context, repo Repository, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		args = []string{"list"}
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		printHelp(stdout)
		return ExitOK
	}

	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		printHelp(stderr)
		return ExitUsage
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	err := cmd.run(ctx, repo, fs, args[1:])

	var ue usageError
	switch {
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "Error: %v\nUsage: todo %s\n", ue.err, cmd.usage)
		return ExitUsage
	case errors.Is(err, tasksrepo.ErrTitleRequired):
		fmt.Fprintf(stderr, "Error: %s\n", cmd.noTitle)
		return ExitRejected
	case errors.Is(err, tasksrepo.ErrIndexOutOfRange):
		fmt.Fprintf(stderr, "Error: %s\n", cmd.noSelection)
		return ExitRejected
	case errors.Is(err, tasksrepo.ErrStorageWrite):
		fmt.Fprintf(stderr, "Error: the change could not be saved: %v\n", err)
		Render(stdout, repo.List())
		return ExitRejected
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitRejected
	}

	if cmd.success != "" {
		fmt.Fprintln(stdout, cmd.success)
	}
	Render(stdout, repo.List())
	return ExitOK
}

func lookup(name string) (command, bool) {
	for _, c := range commandList {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Render writes one line per task, numbered from 1.
func Render(w io.Writer, tasks []tasksrepo.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for i, t := range tasks {
		fmt.Fprintf(w, "%d. %s - %s (%s) - %s\n", i+1, t.Title, t.Description, t.Category, t.Status())
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: todo <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandList {
		fmt.Fprintf(w, "  %-52s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(w, "  %-52s %s\n", "help", "show this help")
}
