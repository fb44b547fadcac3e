package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Carcandyx/baby-steps-client/client"
	"github.com/Carcandyx/baby-steps-client/client/view"
)

func newBabiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "babies",
		Short: "List, inspect, create and delete babies",
	}
	cmd.AddCommand(newListBabiesCmd(a))
	cmd.AddCommand(newGetBabyCmd(a))
	cmd.AddCommand(newCreateBabyCmd(a))
	cmd.AddCommand(newDeleteBabyCmd(a))
	return cmd
}

func newListBabiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your babies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			babies, err := c.ListBabies(cmd.Context())
			if err != nil {
				return err
			}
			if len(babies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No babies yet. Add one with: babyctl babies create")
				return nil
			}
			now := time.Now()
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tGENDER\tAGE")
			for _, b := range babies {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Gender, view.AgeLabel(b.BirthDate, now))
			}
			return tw.Flush()
		},
	}
}

func newGetBabyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <baby-id>",
		Short: "Show one baby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			b, err := c.GetBaby(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			now := time.Now()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %s\n", b.ID)
			fmt.Fprintf(out, "Name:     %s\n", b.Name)
			fmt.Fprintf(out, "Gender:   %s\n", b.Gender)
			fmt.Fprintf(out, "Born:     %s (%s)\n", b.BirthDate.Format(dateLayout), view.AgeLabel(b.BirthDate, now))
			if b.Weight != "" {
				fmt.Fprintf(out, "Weight:   %s\n", b.Weight)
			}
			if b.Height != "" {
				fmt.Fprintf(out, "Height:   %s\n", b.Height)
			}
			if act := b.Activities; act != nil {
				fmt.Fprintf(out, "Feeding:  %s\n", view.RelativeTime(timeOrZero(act.Feeding), now))
				fmt.Fprintf(out, "Diaper:   %s\n", view.RelativeTime(timeOrZero(act.Diaper), now))
				fmt.Fprintf(out, "Sleep:    %s\n", view.RelativeTime(timeOrZero(act.Sleep), now))
			}
			return nil
		},
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func newCreateBabyCmd(a *app) *cobra.Command {
	var name, birthDate, gender, weight, height string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a baby",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			born, err := time.Parse(dateLayout, birthDate)
			if err != nil {
				return fmt.Errorf("invalid --birth-date %q: want YYYY-MM-DD", birthDate)
			}
			g := client.Gender(strings.ToUpper(gender))
			if !g.Valid() {
				return fmt.Errorf("invalid --gender %q: want MALE or FEMALE", gender)
			}

			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			b, err := c.CreateBaby(cmd.Context(), client.CreateBabyRequest{
				Name:      name,
				BirthDate: born,
				Gender:    g,
				Weight:    weight,
				Height:    height,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baby created: %s - %s\n", b.ID, b.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name (required)")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "Birth date as YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&gender, "gender", "", "MALE or FEMALE (required)")
	cmd.Flags().StringVar(&weight, "weight", "", "Weight, free text (optional)")
	cmd.Flags().StringVar(&height, "height", "", "Height, free text (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth-date")
	_ = cmd.MarkFlagRequired("gender")
	return cmd
}

func newDeleteBabyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <baby-id>",
		Short: "Delete a baby and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			if err := c.DeleteBaby(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baby deleted: %s\n", args[0])
			return nil
		},
	}
}
