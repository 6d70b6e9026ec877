package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mekyu/rate-go/app/rulesets/api"
	osu "github.com/mekyu/rate-go/app/rulesets/osu/performance"
	taiko "github.com/mekyu/rate-go/app/rulesets/taiko/performance"
)

var diffCmd = &cobra.Command{
	Use:   "diff <chart.osu>",
	Short: "Compute difficulty attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bMap, diff, err := loadChart(cmd, args[0])
		if err != nil {
			return err
		}

		useTaiko, _ := cmd.Flags().GetBool("taiko")
		step, _ := cmd.Flags().GetBool("step")

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Attribute", "Value"})

		if useTaiko {
			attr := taiko.NewDifficultyCalculator().CalculateSingle(bMap.HitObjects, diff)

			table.Append([]string{"Stars", ftoa(attr.Total)})
			table.Append([]string{"Colour", ftoa(attr.Colour)})
			table.Append([]string{"Rhythm", ftoa(attr.Rhythm)})
			table.Append([]string{"Stamina", ftoa(attr.Stamina)})
			table.Append([]string{"Great window", ftoa(attr.GreatHitWindow) + " ms"})
			table.Append([]string{"Objects", humanize.Comma(int64(attr.ObjectCount))})
			table.Append([]string{"Max combo", humanize.Comma(int64(attr.MaxCombo))})
		} else {
			calc := osu.NewDifficultyCalculator()

			if step {
				stars := calc.CalculateStep(bMap.HitObjects, diff)
				attr := stars[len(stars)-1]

				fmt.Printf("%s prefixes calculated\n", humanize.Comma(int64(len(stars))))
				appendOsuAttribs(table, attr)
			} else {
				appendOsuAttribs(table, calc.CalculateSingle(bMap.HitObjects, diff))
			}
		}

		fmt.Printf("%s [%s] +%s (%s)\n", bMap.Name, bMap.Version, diff.Mods.String(), bMap.Mode)
		table.Render()

		return nil
	},
}

func init() {
	diffCmd.Flags().Bool("step", false, "Calculate star ratings for every chart prefix")
}

func appendOsuAttribs(table *tablewriter.Table, attr api.Attributes) {
	table.Append([]string{"Stars", ftoa(attr.Total)})
	table.Append([]string{"Aim", ftoa(attr.Aim)})
	table.Append([]string{"Speed", ftoa(attr.Speed)})
	table.Append([]string{"Flashlight", ftoa(attr.Flashlight)})
	table.Append([]string{"Slider factor", ftoa(attr.SliderFactor)})
	table.Append([]string{"Objects", humanize.Comma(int64(attr.ObjectCount))})
	table.Append([]string{"Max combo", humanize.Comma(int64(attr.MaxCombo))})
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
