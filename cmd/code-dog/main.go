// code-dog is an animated terminal companion that reacts to workspace
// activity: it walks while you type, sniffs on saves, barks at
// diagnostics, celebrates passing tasks, and keels over on failures.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MohinVinayak/Code-Dog/config"
	"github.com/MohinVinayak/Code-Dog/core"
)

var version = "dev"

var (
	flagConfig    string
	flagAssets    string
	flagWorkspace string
	flagTask      string
	flagDebug     bool
	flagSeed      int64
	flagMute      bool
)

func main() {
	root := &cobra.Command{
		Use:   "code-dog",
		Short: "An animated terminal dog that reacts to your coding activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDog()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "config file path")
	root.Flags().StringVar(&flagAssets, "assets", "", "animation frame directory (default: built-in art)")
	root.Flags().StringVar(&flagWorkspace, "workspace", "", "directory to watch for activity")
	root.Flags().StringVar(&flagTask, "task", "", "shell command to run as the dog's task")
	root.Flags().BoolVar(&flagDebug, "debug", false, "write a debug log file")
	root.Flags().Int64Var(&flagSeed, "seed", 0, "idle-blink randomness seed (0 = time-based)")
	root.Flags().BoolVar(&flagMute, "mute", false, "start with sound muted")

	root.AddCommand(newDoctorCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("code-dog", version)
		},
	})

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
