package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/qri-io/hyperslab/cmd/zsel/commands"
	"github.com/qri-io/hyperslab/internal/logger"
)

func main() {
	err := commands.NewRootCmd().Execute()
	if err != nil {
		slog.Debug("command failed", logger.Err(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
