package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/bilinguo/internal/cli"
	"codeberg.org/snonux/bilinguo/internal/models"
	"codeberg.org/snonux/bilinguo/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.ApplyConfig(flags)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewListerWithConfig(cli.GetOpenAIKey(), flags.OpenAIBaseURL, os.Stdout)
		return lister.ListAvailableModels(ctx)
	}

	var glossary string
	if len(args) > 0 {
		glossary = args[0]
	}

	// Create processor
	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}

	headless := flags.Lookup != "" || flags.AnkiFile != "" || flags.Serve != ""
	if !headless {
		// No headless mode requested - launch GUI mode by default
		return proc.RunGUIMode(glossary)
	}

	if glossary != "" {
		if err := proc.LoadGlossary(glossary); err != nil {
			return err
		}
	} else if flags.Lookup != "" || flags.AnkiFile != "" {
		return fmt.Errorf("a glossary file is required for --lookup and --anki")
	}

	if flags.Lookup != "" {
		if err := proc.Lookup(ctx, flags.Lookup, os.Stdout); err != nil {
			return err
		}
	}

	if flags.AnkiFile != "" {
		if err := proc.ExportAnki(ctx); err != nil {
			return err
		}
	}

	if flags.Serve != "" {
		return proc.Serve(ctx)
	}
	return nil
}
