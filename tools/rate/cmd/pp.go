package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mekyu/rate-go/app/rulesets/api"
	osu "github.com/mekyu/rate-go/app/rulesets/osu/performance"
	taiko "github.com/mekyu/rate-go/app/rulesets/taiko/performance"
	"github.com/mekyu/rate-go/app/settings"
)

var ppCmd = &cobra.Command{
	Use:   "pp <chart.osu>",
	Short: "Compute the performance value of a play",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bMap, diff, err := loadChart(cmd, args[0])
		if err != nil {
			return err
		}

		opts, err := settings.Parse()
		if err != nil {
			return err
		}

		useTaiko, _ := cmd.Flags().GetBool("taiko")
		acc, _ := cmd.Flags().GetFloat64("acc")
		misses, _ := cmd.Flags().GetInt("misses")
		combo, _ := cmd.Flags().GetInt("combo")
		worst, _ := cmd.Flags().GetBool("worst")
		gradual, _ := cmd.Flags().GetBool("gradual")

		priority := api.BestCase
		if worst {
			priority = api.WorstCase
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Value", "PP"})

		if useTaiko {
			attr := taiko.NewDifficultyCalculator().CalculateSingle(bMap.HitObjects, diff)

			state := taiko.GenerateScoreState(attr, acc/100, misses, priority)
			if combo >= 0 {
				state.MaxCombo = combo
			}

			var results api.TaikoPPResults

			if gradual && opts.SynchronizedGradual {
				results, _ = taiko.NewSynchronizedGradualPerformance(bMap.HitObjects, diff).ProcessAll(state)
			} else if gradual {
				results, _ = taiko.NewGradualPerformance(bMap.HitObjects, diff).ProcessAll(state)
			} else {
				results, err = taiko.NewPPCalculator().Calculate(attr, state, diff)
				if err != nil {
					return err
				}
			}

			fmt.Printf("%s [%s] +%s: %s\n", bMap.Name, bMap.Version, diff.Mods.String(), state)

			table.Append([]string{"Difficulty", ftoa(results.Difficulty)})
			table.Append([]string{"Accuracy", ftoa(results.Acc)})
			table.Append([]string{"Total", ftoa(results.Total)})
		} else {
			attr := osu.NewDifficultyCalculator().CalculateSingle(bMap.HitObjects, diff)

			state := osu.GenerateScoreState(attr, acc/100, misses, priority)
			if combo >= 0 {
				state.MaxCombo = combo
			}

			var results api.PPv2Results

			if gradual && opts.SynchronizedGradual {
				results, _ = osu.NewSynchronizedGradualPerformance(bMap.HitObjects, diff).ProcessAll(state)
			} else if gradual {
				results, _ = osu.NewGradualPerformance(bMap.HitObjects, diff).ProcessAll(state)
			} else {
				results, err = osu.NewPPCalculator().Calculate(attr, state, diff)
				if err != nil {
					return err
				}
			}

			fmt.Printf("%s [%s] +%s: %s\n", bMap.Name, bMap.Version, diff.Mods.String(), state)

			table.Append([]string{"Aim", ftoa(results.Aim)})
			table.Append([]string{"Speed", ftoa(results.Speed)})
			table.Append([]string{"Accuracy", ftoa(results.Acc)})
			table.Append([]string{"Flashlight", ftoa(results.Flashlight)})
			table.Append([]string{"Total", ftoa(results.Total)})
		}

		table.Render()

		return nil
	},
}

func init() {
	ppCmd.Flags().Float64("acc", 100, "Accuracy of the play in percent")
	ppCmd.Flags().Int("misses", 0, "Miss count of the play")
	ppCmd.Flags().Int("combo", -1, "Max combo of the play, -1 for full combo")
	ppCmd.Flags().Bool("worst", false, "Fill leftover judgements worst-case instead of best-case")
	ppCmd.Flags().Bool("gradual", false, "Drive the calculation through the gradual processor")
}
