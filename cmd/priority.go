package cmd

import (
	"github.com/madlig/mygameon/core"
	"github.com/spf13/cobra"
)

// priorityCmd groups the request prioritization commands.
var priorityCmd = &cobra.Command{
	Use:   "priority",
	Short: "Score download requests by demand and size",
	Long: `Score download requests in [0,1] and label them for the operations team.

The score blends normalized demand and an inverted size term, so popular small
games come first. Scores of 0.75 and above are Hot, 0.45 and above are Normal and
the rest are Batch Later.

Weights and normalizers can be tuned under the "priority" key of .mygameon.yaml
or with MYGAMEON_PRIORITY_* environment variables.

Subcommands:
  score  - Score a single request from flags
  board  - Rank stored requests
  config - Show the effective scoring parameters`,
}

// priorityScoreCmd scores one request.
var priorityScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single download request",
	Long: `Compute the priority of a request from its count and size.

Examples:
  # A popular, small game
  mygameon priority score --count 80 --size 5

  # Show the formula breakdown as YAML
  mygameon priority score --count 10 --size 120 --output yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot score request", core.ExecutePriorityScore),
}

// priorityBoardCmd ranks stored requests.
var priorityBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Rank stored download requests by priority",
	Long: `Rank the requests stored in the catalog backend, highest priority first.
Ties keep the higher request count first, then the title.

When run tracking is enabled (--runs-backend), every board is recorded and can
be exported with "mygameon runs export".

Examples:
  mygameon priority board --limit 10
  mygameon priority board --status fulfilled --output csv --output-file done.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot build request board", core.ExecutePriorityBoard),
}

// priorityConfigCmd prints the effective config.
var priorityConfigCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show the effective scoring parameters",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot show priority config", core.ExecutePriorityConfig),
}
