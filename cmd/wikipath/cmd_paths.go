package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wikipath/wikipath/client"
)

func newSingleCmd() *cobra.Command {
	var algo string
	cmd := &cobra.Command{
		Use:   "single <src> <dst>",
		Short: "Find a shortest click path between two articles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend()
			if err != nil {
				return err
			}

			p, err := b.Single(cmd.Context(), args[0], args[1], algo)
			if err != nil {
				return err
			}
			if p == nil {
				return noPathError(args[0], args[1])
			}
			return writePath(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&algo, "algorithm", client.AlgorithmBidirectional, "Search algorithm: bidirectional|bfs")
	return cmd
}

func newMultiCmd() *cobra.Command {
	var stream bool
	cmd := &cobra.Command{
		Use:   "multi <src> <dst>...",
		Short: "Find shortest click paths from one article to several",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend()
			if err != nil {
				return err
			}

			src, dsts := args[0], args[1:]
			if stream {
				return runStream(cmd, b, src, dsts)
			}

			res, err := b.Many(cmd.Context(), src, dsts)
			if err != nil {
				return err
			}
			return writeMany(cmd, res, dsts)
		},
	}
	cmd.Flags().BoolVar(&stream, "stream", false, "Print each destination as soon as it is found")
	return cmd
}

// manyResults flattens a multi result into destination order, with
// unresolved titles last in name order.
func manyResults(res *client.ManyArticlePaths, dsts []string) []client.DestinationPath {
	out := make([]client.DestinationPath, 0, len(dsts))
	seen := make(map[string]bool, len(dsts))

	for _, d := range dsts {
		if seen[d] {
			continue
		}
		seen[d] = true

		if p, ok := res.Paths[d]; ok {
			out = append(out, client.DestinationPath{Destination: d, Path: p})
		}
	}

	unresolved := make([]string, 0, len(res.Unresolved))
	for d := range res.Unresolved {
		unresolved = append(unresolved, d)
	}
	sort.Strings(unresolved)

	for _, d := range unresolved {
		out = append(out, client.DestinationPath{Destination: d, Error: res.Unresolved[d]})
	}

	return out
}

func writeMany(cmd *cobra.Command, res *client.ManyArticlePaths, dsts []string) error {
	w := cmd.OutOrStdout()
	results := manyResults(res, dsts)

	switch flagFmt {
	case formatQuietName:
		for _, dp := range results {
			fmt.Fprintln(w, destinationLine(dp))
		}
	case formatTableName:
		rows := make([][]string, len(results))
		for i, dp := range results {
			rows[i] = destinationRow(dp)
		}
		formatTable(w, []string{"DESTINATION", "CLICKS", "PATH"}, rows)
	default:
		if err := formatJSON(w, res); err != nil {
			return err
		}
	}

	return resultError(res.Source, results)
}

func runStream(cmd *cobra.Command, b pathBackend, src string, dsts []string) error {
	w := cmd.OutOrStdout()

	var results []client.DestinationPath
	err := b.Stream(cmd.Context(), src, dsts, func(dp client.DestinationPath) error {
		results = append(results, dp)
		switch flagFmt {
		case formatJSONName:
			return formatJSONLine(w, dp)
		default:
			fmt.Fprintln(w, destinationLine(dp))
			return nil
		}
	})
	if err != nil {
		return err
	}

	return resultError(src, results)
}

// resultError makes the command exit non-zero when a destination was not
// answered. Failed lookups take precedence over unreachable destinations.
func resultError(src string, results []client.DestinationPath) error {
	var missing, failed []string
	for _, dp := range results {
		switch {
		case dp.Error != "":
			failed = append(failed, dp.Destination)
		case dp.Path == nil:
			missing = append(missing, dp.Destination)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("could not resolve destinations %q", failed)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w from %q to %q", errNoPath, src, missing)
	}

	return nil
}
