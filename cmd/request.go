package cmd

import (
	"github.com/madlig/mygameon/core"
	"github.com/spf13/cobra"
)

// requestCmd groups the request management commands.
var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Record user download requests",
}

// requestAddCmd stores a request.
var requestAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a download request and show its priority",
	Long: `Store a download request in the catalog backend. Requests are keyed by their
title, case-insensitively. Without --count an existing request gains one more
vote; with --count the stored count is replaced.

Examples:
  mygameon request add --title "Hollow Knight" --size 9
  mygameon request add --title "Hollow Knight" --count 40
  mygameon request add --title "Hollow Knight" --status fulfilled`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot add request", core.ExecuteRequestAdd),
}
