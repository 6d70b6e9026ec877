package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	osu "github.com/mekyu/rate-go/app/rulesets/osu/performance"
	osuskills "github.com/mekyu/rate-go/app/rulesets/osu/performance/skills"
	taiko "github.com/mekyu/rate-go/app/rulesets/taiko/performance"
)

var peaksCmd = &cobra.Command{
	Use:   "peaks <chart.osu>",
	Short: "Print per-section strain peaks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bMap, diff, err := loadChart(cmd, args[0])
		if err != nil {
			return err
		}

		useTaiko, _ := cmd.Flags().GetBool("taiko")

		table := tablewriter.NewWriter(os.Stdout)

		sections := 0

		if useTaiko {
			peaks := taiko.NewDifficultyCalculator().CalculateStrainPeaks(bMap.HitObjects, diff)
			sections = len(peaks.Total)

			table.SetHeader([]string{"Section", "Colour", "Rhythm", "Stamina", "Combined"})

			for i := range peaks.Total {
				table.Append([]string{
					sectionTime(i),
					ftoa(peaks.Colour[i]),
					ftoa(peaks.Rhythm[i]),
					ftoa(peaks.Stamina[i]),
					ftoa(peaks.Total[i]),
				})
			}
		} else {
			peaks := osu.NewDifficultyCalculator().CalculateStrainPeaks(bMap.HitObjects, diff)
			sections = len(peaks.Total)

			table.SetHeader([]string{"Section", "Aim", "Speed", "Flashlight", "Stars"})

			for i := range peaks.Total {
				table.Append([]string{
					sectionTime(i),
					ftoa(peaks.Aim[i]),
					ftoa(peaks.Speed[i]),
					ftoa(peaks.Flashlight[i]),
					ftoa(peaks.Total[i]),
				})
			}
		}

		fmt.Printf("%s [%s] +%s: %s sections\n", bMap.Name, bMap.Version, diff.Mods.String(), humanize.Comma(int64(sections)))
		table.Render()

		return nil
	},
}

// sectionTime formats the played-timeline start of a strain section.
func sectionTime(index int) string {
	return time.Duration(float64(index) * osuskills.SectionLength * float64(time.Millisecond)).Truncate(time.Millisecond).String()
}
