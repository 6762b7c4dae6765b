package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinviz/kingraph/client"
)

func newPeopleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "Browse the person directory",
	}

	cmd.AddCommand(newPeopleListCmd())
	cmd.AddCommand(newPeopleGetCmd())
	cmd.AddCommand(newPeopleRelativesCmd())

	return cmd
}

func newPeopleListCmd() *cobra.Command {
	var (
		query  string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people, optionally filtered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient.People.List(cmd.Context(), client.ListOptions{
				Query:  query,
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return fmt.Errorf("listing people: %w", err)
			}

			if flagFmt == "table" {
				rows := make([][]string, 0, len(resp.People))
				for _, p := range resp.People {
					rows = append(rows, []string{p.ID, p.Name, p.Sex, yearString(p.BirthYear)})
				}
				formatTable([]string{"ID", "NAME", "SEX", "BORN"}, rows)
				if resp.HasMore {
					fmt.Println("(more results available)")
				}
				return nil
			}

			output(resp, "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive name filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (0 = server default)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func newPeopleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := apiClient.People.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting person: %w", err)
			}

			output(p, p.ID)
			return nil
		},
	}
}

func newPeopleRelativesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relatives <id>",
		Short: "Show a person's immediate relatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := apiClient.People.Relatives(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting relatives: %w", err)
			}

			output(rel, "")
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show registry statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("getting stats: %w", err)
			}

			output(stats, "")
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := apiClient.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check: %w", err)
			}

			output(h, h.Status)
			return nil
		},
	}
}
