// Package cmd implements the command-line interface for mixtape.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mixtape-cli/mixtape/color"
	"github.com/mixtape-cli/mixtape/key"
	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/query"
	"github.com/mixtape-cli/mixtape/scrape"
	"github.com/mixtape-cli/mixtape/style"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("category", "C", "", "List a chart category instead of searching (without a query, the "+key.SearchCategory+" config key is used)")
	searchCmd.Flags().BoolP("links", "l", false, "Include mixtape page links in the output")
	searchCmd.Flags().IntP("limit", "n", 0, "Maximum number of results to display")

	lo.Must0(searchCmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return media.Categories, cobra.ShellCompDirectiveNoFileComp
	}))

	searchCmd.SetOut(os.Stdout)
}

// searchCmd prints mixtape listings without entering an interactive interface.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search mixtapes or list a chart category",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			mixtapes = media.NewMixtapes(network.NewSession())
			category = lo.Must(cmd.Flags().GetString("category"))
			entries  []scrape.ListingEntry
		)

		// Without a query this becomes a chart listing of the configured
		// default category.
		if len(args) == 0 && category == "" {
			category = viper.GetString(key.SearchCategory)
		}

		if category != "" {
			if !media.ValidCategory(category) {
				handleErr(errors.New("unknown category: " + category))
			}

			found, err := mixtapes.ByCategory(category)
			handleErr(err)
			entries = found
		} else {
			q := strings.Join(args, " ")
			_ = query.Remember(q, 1)

			found, err := mixtapes.Search(q)
			handleErr(err)
			entries = found
		}

		limit := lo.Must(cmd.Flags().GetInt("limit"))
		if limit <= 0 {
			limit = viper.GetInt(key.SearchLimit)
		}
		entries = media.Limit(entries, limit)

		links := lo.Must(cmd.Flags().GetBool("links"))
		for i, entry := range entries {
			cmd.Printf(
				"%s %s\n",
				style.Faint(fmt.Sprintf("%2d.", i+1)),
				fmt.Sprintf("%s %s %s", style.Bold(entry.Artist), style.Faint("-"), entry.Title),
			)

			if links {
				cmd.Println("    " + style.Fg(color.Blue)(entry.Link))
			}
		}

		cmd.Println(style.Faint(util.Quantify(len(entries), "mixtape", "mixtapes")))
	},
}
