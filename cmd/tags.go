package cmd

import (
	"github.com/madlig/mygameon/core"
	"github.com/spf13/cobra"
)

// tagsCmd groups the tag normalization commands.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Normalize free-form game tags onto the canonical vocabulary",
	Long: `Map curator tags, genres and titles onto the canonical tag vocabulary.

Known tags are deduplicated and listed in vocabulary order. Unknown tags are
kept as written and listed after the canonical ones. RPG, sandbox and pixel
genres add inferred tags, and remastered or definitive titles are tagged AAA.

Subcommands:
  normalize  - Normalize a single record from flags
  file       - Normalize every row of a CSV file
  chips      - Show the card chips and overflow counter
  vocabulary - List the canonical vocabulary and its patterns`,
}

// tagsNormalizeCmd normalizes one record.
var tagsNormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize the tags of a single game",
	Long: `Normalize the tags given on the command line.

Examples:
  # Canonical tags come first, unknown ones are kept
  mygameon tags normalize --tags "coop, Controller Support, speedrun"

  # Genres and the title add inferred tags
  mygameon tags normalize --genre RPG --name "Skyrim Special Edition"

  # Emit JSON for scripting
  mygameon tags normalize --tags "multiplayer" --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot normalize tags", core.ExecuteTagsNormalize),
}

// tagsFileCmd normalizes a CSV export.
var tagsFileCmd = &cobra.Command{
	Use:   "file <input.csv>",
	Short: "Normalize the tags of every game in a CSV file",
	Long: `Read a CSV export with a name column and optional objectID, genre and tags
columns, and normalize every row using --workers concurrent workers.

Rows without a name are skipped with a warning. Output keeps the input order.

Examples:
  # Print a table of normalized tags
  mygameon tags file games.csv

  # Write the result as Parquet
  mygameon tags file games.csv --output parquet --output-file tags.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot normalize tag file", core.ExecuteTagsFile),
}

// tagsChipsCmd renders card chips.
var tagsChipsCmd = &cobra.Command{
	Use:   "chips [input.csv]",
	Short: "Show the tag chips a game card displays",
	Long: `Show the first --chip-limit canonical tags of each game plus the number of
canonical tags that did not fit. Without an input file the single record
given by --tags, --genre and --name is used.

Examples:
  mygameon tags chips --tags "coop, pvp, open world"
  mygameon tags chips games.csv --chip-limit 3`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot build tag chips", core.ExecuteTagsChips),
}

// tagsVocabularyCmd lists the vocabulary.
var tagsVocabularyCmd = &cobra.Command{
	Use:     "vocabulary",
	Short:   "List the canonical tags in sort order",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot list vocabulary", core.ExecuteTagsVocabulary),
}
