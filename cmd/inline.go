// Package cmd implements the command-line interface for mixtape.
package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/mixtape-cli/mixtape/filesystem"
	"github.com/mixtape-cli/mixtape/inline"
	"github.com/mixtape-cli/mixtape/media"
	"github.com/mixtape-cli/mixtape/network"
	"github.com/mixtape-cli/mixtape/query"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for mixtape discovery")
	inlineCmd.Flags().StringP("category", "C", "", "The chart category to list instead of searching")
	inlineCmd.Flags().StringP("mixtape", "m", "", "Criteria for selecting a specific mixtape from the results")
	inlineCmd.Flags().StringP("tracks", "t", "", "Criteria for selecting specific tracks from the chosen mixtape")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("urls", "u", false, "Print direct mp3 stream URLs for the selected tracks")
	inlineCmd.Flags().BoolP("download", "d", false, "Download the selected tracks to the localized downloads directory")

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.MarkFlagsMutuallyExclusive("query", "category")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return media.Categories, cobra.ShellCompDirectiveNoFileComp
	}))
}

// parseMixtapeFlag maps the CLI selector shorthand onto a picker.
// A bare number selects by index, "first" and "last" select by position
// and anything else matches an exact "Artist - Title" string.
func parseMixtapeFlag(description string) (inline.MixtapePicker, error) {
	switch description {
	case "first", "last":
		return inline.ParseMixtapePicker(description, "")
	}

	if _, err := strconv.ParseUint(description, 10, 16); err == nil {
		return inline.ParseMixtapePicker("index", description)
	}

	return inline.ParseMixtapePicker("exact", description)
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Mixtape selectors:
  first - first mixtape in the list
  last - last mixtape in the list
  [number] - select mixtape by index (starting from 0)
  [text] - select mixtape by its exact listing title

Track selectors:
  first - first track in the list
  last - last track in the list
  all - all tracks in the list
  [number] - select track by number (starting from 1)
  [from]-[to] - select tracks by range
  @[substring]@ - select tracks by title substring

When using the json flag the mixtape selector could be omitted. That way, it will list all mixtapes`,

	Example: "mixtape inline -q 'gucci mane' -m first -t all --urls",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("query") && !cmd.Flags().Changed("category") {
			handleErr(errors.New("either --query or --category is required"))
		}

		asJson, _ := cmd.Flags().GetBool("json")

		if !asJson {
			lo.Must0(cmd.MarkFlagRequired("mixtape"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		category := lo.Must(cmd.Flags().GetString("category"))
		if category != "" && !media.ValidCategory(category) {
			handleErr(errors.New("unknown category: " + category))
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var (
			writer io.Writer
			err    error
		)
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		mixtapeFlag := lo.Must(cmd.Flags().GetString("mixtape"))
		mixtapePicker := mo.None[inline.MixtapePicker]()
		if mixtapeFlag != "" {
			fn, err := parseMixtapeFlag(mixtapeFlag)
			handleErr(err)
			mixtapePicker = mo.Some(fn)
		}

		tracksFlag := lo.Must(cmd.Flags().GetString("tracks"))
		tracksFilter := mo.None[inline.TracksFilter]()
		if tracksFlag != "" {
			fn, err := inline.ParseTracksFilter(tracksFlag)
			handleErr(err)
			tracksFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:           writer,
			Session:       network.NewSession(),
			Query:         lo.Must(cmd.Flags().GetString("query")),
			Category:      category,
			Json:          lo.Must(cmd.Flags().GetBool("json")),
			URLs:          lo.Must(cmd.Flags().GetBool("urls")),
			Download:      lo.Must(cmd.Flags().GetBool("download")),
			MixtapePicker: mixtapePicker,
			TracksFilter:  tracksFilter,
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "mixtape", "track", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
