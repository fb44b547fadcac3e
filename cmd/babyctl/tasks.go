package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Carcandyx/baby-steps-client/client"
	"github.com/Carcandyx/baby-steps-client/client/view"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List, create and complete tasks",
	}
	cmd.AddCommand(newListTasksCmd(a))
	cmd.AddCommand(newCreateTaskCmd(a))
	cmd.AddCommand(newCompleteTaskCmd(a))
	return cmd
}

func newListTasksCmd(a *app) *cobra.Command {
	var babyID, status, search, due string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally for one baby",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := view.ParseStatus(status)
			if err != nil {
				return err
			}

			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			var tasks []client.Task
			if babyID != "" {
				tasks, err = c.ListTasksForBaby(cmd.Context(), babyID)
			} else {
				tasks, err = c.ListAllTasks(cmd.Context())
			}
			if err != nil {
				return err
			}

			if due != "" {
				day, err := parseDay(due)
				if err != nil {
					return err
				}
				tasks = view.TasksDueOn(tasks, day)
			}
			tasks = view.FilterTasks(tasks, view.Filter{Status: st, Search: search})
			log.Debug().Int("count", len(tasks)).Str("status", string(st)).Msg("tasks filtered")
			return printTasks(cmd.OutOrStdout(), tasks)
		},
	}

	cmd.Flags().StringVar(&babyID, "baby-id", "", "Only this baby's tasks")
	cmd.Flags().StringVar(&status, "status", "all", "all, completed or pending")
	cmd.Flags().StringVar(&search, "search", "", "Match title or description")
	cmd.Flags().StringVar(&due, "due", "", "Only tasks due on YYYY-MM-DD")
	return cmd
}

func printTasks(w io.Writer, tasks []client.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDONE\tDEADLINE\tBABY\tTITLE")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\t%s\n", t.ID, done, t.DeadlineDate.Local().Format("2006-01-02 15:04"), t.BabyID, t.Title)
	}
	return tw.Flush()
}

func newCreateTaskCmd(a *app) *cobra.Command {
	var babyID, title, description, deadline string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a task for a baby",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseDeadline(deadline)
			if err != nil {
				return err
			}

			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			t, err := c.CreateTask(cmd.Context(), client.CreateTaskRequest{
				Title:        title,
				Description:  description,
				BabyID:       babyID,
				DeadlineDate: when,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task created: %s - %s\n", t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&babyID, "baby-id", "", "Baby the task belongs to (required)")
	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Description (optional)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "YYYY-MM-DD or RFC 3339 timestamp (required)")
	_ = cmd.MarkFlagRequired("baby-id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("deadline")
	return cmd
}

func newCompleteTaskCmd(a *app) *cobra.Command {
	var babyID string
	var undo bool

	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task completed, or pending again with --undo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			t, err := c.SetTaskCompletion(cmd.Context(), args[0], !undo, babyID)
			if err != nil {
				return err
			}
			state := "completed"
			if !t.Completed {
				state = "pending"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is %s\n", t.ID, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&babyID, "baby-id", "", "Baby the task belongs to (required)")
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task pending instead")
	_ = cmd.MarkFlagRequired("baby-id")
	return cmd
}
