// main is the entry point for the mygameon CLI.
package main

import (
	"github.com/madlig/mygameon/cmd"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/store"
)

func main() {
	err := cmd.Execute()
	store.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Error", err)
	}
}
