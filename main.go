// main is the entry point for the repocat CLI.
package main

import (
	"github.com/huangsam/repocat/cmd"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/tablestore"
)

func main() {
	cmd.SetTableManager(tablestore.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	tablestore.CloseTableStore()

	if err != nil {
		contract.LogFatal("Error executing command", err)
	}
}
