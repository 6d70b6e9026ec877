package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/mekyu/rate-go/app/beatmap"
	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/settings"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "rate",
	Short:         "Difficulty and performance calculator for rhythm charts",
	Long:          "rate decodes .osu charts and computes star ratings, strain peaks and performance values for the osu and taiko rulesets.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("mods", "", "Modifier acronyms, e.g. HDDT")
	rootCmd.PersistentFlags().Bool("taiko", false, "Use the taiko ruleset")

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(ppCmd)
	rootCmd.AddCommand(peaksCmd)
}

// loadChart decodes and vets the chart at path and resolves the requested
// modifiers against it.
func loadChart(cmd *cobra.Command, path string) (*beatmap.Beatmap, *difficulty.Difficulty, error) {
	opts, err := settings.Parse()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	bMap, err := beatmap.Decode(f)
	if err != nil {
		if opts.LogDecodeErrors {
			log.Println("decode failed:", err)
		}

		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := beatmap.CheckSuspicion(bMap); err != nil {
		return nil, nil, fmt.Errorf("chart rejected: %w", err)
	}

	modString, _ := cmd.Flags().GetString("mods")
	mods := difficulty.ParseMods(modString)

	if opts.LazerScoring {
		mods |= difficulty.Lazer
	}

	diff := bMap.NewDifficulty()
	diff.SetMods(mods)

	return bMap, diff, nil
}
