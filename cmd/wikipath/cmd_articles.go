package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wikipath/wikipath/client"
)

func writeArticle(cmd *cobra.Command, a *client.Article) error {
	w := cmd.OutOrStdout()
	switch flagFmt {
	case formatQuietName:
		fmt.Fprintln(w, a.ID)
	case formatTableName:
		formatTable(w, []string{"ID", "TITLE"}, [][]string{{strconv.FormatInt(a.ID, 10), a.Title}})
	default:
		return formatJSON(w, a)
	}
	return nil
}

func newArticleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "article <id>",
		Short: "Show an article by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid article id %q", args[0])
			}

			a, err := apiClient.Articles.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeArticle(cmd, a)
		},
	}
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <title>",
		Short: "Look up the article with a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient.Articles.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeArticle(cmd, a)
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show article and link totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := apiClient.Stats(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch flagFmt {
			case formatQuietName:
				fmt.Fprintf(w, "%d %d\n", st.Articles, st.Links)
			case formatTableName:
				formatTable(w, []string{"ARTICLES", "LINKS"}, [][]string{{
					strconv.FormatInt(st.Articles, 10), strconv.FormatInt(st.Links, 10),
				}})
			default:
				return formatJSON(w, st)
			}
			return nil
		},
	}
}
