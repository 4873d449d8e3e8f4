package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MohinVinayak/Code-Dog/asset"
	"github.com/MohinVinayak/Code-Dog/audio"
	"github.com/MohinVinayak/Code-Dog/config"
	"github.com/MohinVinayak/Code-Dog/dog"
)

// newDoctorCmd validates the configuration and asset coverage
func newDoctorCmd() *cobra.Command {
	var assetsDir string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, assets, and audio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				fmt.Printf("config: INVALID (%v), using defaults\n", err)
			} else {
				fmt.Printf("config: ok (%s)\n", flagConfig)
			}
			fmt.Printf("  size=%s idle_timeout=%dms bark_delay=%dms death_cooldown=%dms enable_bark=%v\n",
				cfg.Size, cfg.IdleTimeoutMs, cfg.BarkDelayMs, cfg.DeathCooldownMs, cfg.EnableBark)

			root := assetsDir
			if root == "" {
				root = cfg.AssetDir
			}
			library := asset.NewLibrary(root, func() string { return cfg.Size })

			missing := 0
			for _, name := range dog.AllAnimations() {
				refs := library.Resolve(name)
				if len(refs) == 0 {
					fmt.Printf("  %-10s MISSING\n", name)
					missing++
					continue
				}
				fmt.Printf("  %-10s %d frames\n", name, len(refs))
			}
			if missing > 0 {
				return fmt.Errorf("%d animations have no frames", missing)
			}

			sounds := audio.NewSoundManager()
			if err := sounds.Initialize(); err != nil {
				fmt.Printf("audio: unavailable (%v), dog will be silent\n", err)
			} else {
				fmt.Println("audio: ok")
				sounds.Cleanup()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&assetsDir, "assets", "", "animation frame directory to check")
	return cmd
}
