package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/adapters/git"
	"github.com/xvierd/pomotray/internal/domain"
)

// taskCmd groups the task list commands. They edit the settings file
// directly and can run while no timer is open.
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "List, add, select and rename tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := app.settings.Load()
		out := cmd.OutOrStdout()

		if jsonOutput {
			type taskJSON struct {
				Index        int    `json:"index"`
				Name         string `json:"name"`
				WorkMinutes  int    `json:"work_minutes"`
				BreakMinutes int    `json:"break_minutes"`
				Current      bool   `json:"current"`
			}
			list := make([]taskJSON, len(settings.Tasks))
			for i, t := range settings.Tasks {
				list[i] = taskJSON{i + 1, t.Name, t.WorkDuration, t.BreakDuration, i == settings.CurrentTaskIndex}
			}
			return printJSON(out, map[string]interface{}{
				"tasks": list,
				"count": len(list),
			})
		}

		fmt.Fprintf(out, "📋 Tasks (%d):\n\n", len(settings.Tasks))
		for i, t := range settings.Tasks {
			marker := " "
			if i == settings.CurrentTaskIndex {
				marker = "▶"
			}
			fmt.Fprintf(out, "%s %d. %s (%d/%d min)\n", marker, i+1, t.Name, t.WorkDuration, t.BreakDuration)
		}
		return nil
	},
}

var taskAddCmd = &cobra.Command{
	Use:   "add [name] [work-minutes] [break-minutes]",
	Short: "Add a task",
	Long: `Add a task with its own work and break length. The new task is not selected.

Missing arguments are asked for when running in a terminal; the current git
branch is offered as the task name.`,
	Args: cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := make([]string, 3)
		copy(fields, args)

		if len(args) < 3 {
			if !isInteractive() {
				return domain.ErrFieldsRequired
			}
			if err := runTaskForm(cmd, fields); err != nil {
				return err
			}
		}

		task, err := domain.ParseTask(fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}
		if err := newEngine().AddTask(cmd.Context(), task.Name, task.WorkDuration, task.BreakDuration); err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Added task: %s (%d/%d min)\n", task.Name, task.WorkDuration, task.BreakDuration)
		return nil
	},
}

// runTaskForm asks for the empty fields of name, work and break minutes.
func runTaskForm(cmd *cobra.Command, fields []string) error {
	if fields[0] == "" {
		if branch, err := app.git.CurrentBranch(cmd.Context(), ""); err == nil {
			fields[0] = git.TaskNameFromBranch(branch)
		}
	}
	if fields[1] == "" {
		fields[1] = strconv.Itoa(domain.DefaultWorkMinutes)
	}
	if fields[2] == "" {
		fields[2] = strconv.Itoa(domain.DefaultBreakMinutes)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task name").
				Value(&fields[0]).
				Validate(func(s string) error {
					_, err := domain.NormalizeTaskName(s)
					return err
				}),
			huh.NewInput().
				Title("Work minutes").
				Value(&fields[1]).
				Validate(validatePositive),
			huh.NewInput().
				Title("Break minutes").
				Value(&fields[2]).
				Validate(validatePositive),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return fmt.Errorf("failed to read task: %w", err)
	}
	return nil
}

func validatePositive(s string) error {
	_, err := domain.ParsePositive(s)
	return err
}

var taskSelectCmd = &cobra.Command{
	Use:   "select <name|number>",
	Short: "Select the current task by name or list number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		settings := engine.Snapshot().Settings

		index := settings.TaskIndex(strings.TrimSpace(args[0]))
		if index < 0 {
			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], domain.ErrTaskNotFound)
			}
			index = n - 1
		}
		if err := engine.SelectTask(cmd.Context(), index); err != nil {
			return fmt.Errorf("failed to select task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "▶ Current task: %s\n", engine.Snapshot().Task.Name)
		return nil
	},
}

var taskRenameCmd = &cobra.Command{
	Use:   "rename <new name>",
	Short: "Rename the current task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := domain.NormalizeTaskName(strings.Join(args, " "))
		if err != nil {
			return err
		}

		engine := newEngine()
		settings := engine.Snapshot().Settings
		if i := settings.TaskIndex(name); i >= 0 && i != settings.CurrentTaskIndex {
			return domain.ErrDuplicateTask
		}
		if err := engine.ChangeTask(cmd.Context(), name); err != nil {
			return fmt.Errorf("failed to rename task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✏️  Current task renamed to: %s\n", name)
		return nil
	},
}

func init() {
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskSelectCmd)
	taskCmd.AddCommand(taskRenameCmd)
}
