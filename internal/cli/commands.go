package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/simpletodo/internal/model"
	"github.com/idilsaglam/simpletodo/internal/store"
	"github.com/idilsaglam/simpletodo/internal/ui"
)

const listHint = "Hint: run `todo ls` to see valid indexes"

func (a *app) addCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (title can be multiple words)",
		Example: `  todo add Buy milk
  todo add "Call Alice" -d "re: project"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.session.store.Add(cmd.Context(), strings.Join(args, " "), description)
			switch {
			case errors.Is(err, store.ErrEmptyTitle):
				// blank titles are ignored
				return nil
			case err != nil:
				return failure(fmt.Errorf("save: %w", err))
			}
			ui.OK(a.stdout, "added")
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printList(a.session.store.Tasks())
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show the task at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.parseIndex("show", args[0])
			if err != nil {
				return err
			}
			task, err := a.session.store.At(idx)
			if err != nil {
				return failure(err)
			}
			t := ui.Current()
			lines := []string{ui.C(t.Title, task.Title)}
			if task.Description != "" {
				lines = append(lines, "", task.Description)
			}
			ui.Panel(a.stdout, lines)
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change the title and/or description of a task",
		Example: `  todo edit 1 --title "Call Bob"
  todo edit 2 --description ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.parseIndex("edit", args[0])
			if err != nil {
				return err
			}
			current, err := a.session.store.At(idx)
			if err != nil {
				return failure(err)
			}
			if !cmd.Flags().Changed("title") {
				title = current.Title
			}
			if !cmd.Flags().Changed("description") {
				description = current.Description
			}

			_, err = a.session.store.Update(cmd.Context(), idx, title, description)
			switch {
			case errors.Is(err, store.ErrEmptyTitle):
				return usage("edit: empty title")
			case err != nil:
				return failure(fmt.Errorf("save: %w", err))
			}
			ui.OK(a.stdout, "updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the task at a 1-based index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			if _, err := a.session.store.Remove(cmd.Context(), idx); err != nil {
				return failure(fmt.Errorf("save: %w", err))
			}
			ui.OK(a.stdout, "removed")
			return nil
		},
	}
}

// parseIndex turns a 1-based argument into a valid 0-based store index.
func (a *app) parseIndex(cmdName, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usage("%s: not a number: %s", cmdName, arg)
	}
	have := a.session.store.Len()
	if n < 1 || n > have {
		return 0, &exitError{
			code: ExitUsage,
			err:  fmt.Errorf("index out of range: have %d, got %d", have, n),
			hint: listHint,
		}
	}
	return n - 1, nil
}

// -------------- rendering helpers --------------

func (a *app) printList(tasks []model.Task) {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Accent, "Total"), len(tasks),
	)

	lines := []string{header, ""}
	lines = append(lines, taskLines(tasks)...)
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(a.stdout, lines)
}

func taskLines(tasks []model.Task) []string {
	t := ui.Current()
	if len(tasks) == 0 {
		return []string{ui.C(t.Muted, "no tasks")}
	}
	out := make([]string, 0, len(tasks)*2)
	for i, task := range tasks {
		idx := fmt.Sprintf("%2d.", i+1)
		out = append(out, fmt.Sprintf("%s %s", ui.C(ui.Dim, idx), ui.Truncate(task.Title, 80)))
		if task.Description != "" {
			desc := strings.ReplaceAll(task.Description, "\n", " ")
			out = append(out, "    "+ui.C(t.Muted, ui.Truncate(desc, 76)))
		}
	}
	return out
}
