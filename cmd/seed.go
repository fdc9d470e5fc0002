package cmd

import (
	"inventory-audit/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the legacy inventory spreadsheet into an empty catalog",
	Long: `Reads the legacy 11-column inventory export (.csv or .xlsx) and creates
employees, workplaces and equipment from it. Nothing is imported when the
catalog already contains equipment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.close()

		res, err := importer.New(rt.db, rt.logger).ImportFile(cmd.Context(), seedFile)
		if err != nil {
			return err
		}
		if res.Skipped {
			rt.logger.Warn("Catalog is not empty, nothing imported")
			return nil
		}
		rt.logger.Info("Seed completed",
			zap.Int("employees", res.Employees),
			zap.Int("workplaces", res.Workplaces),
			zap.Int("equipment", res.Equipment))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "inventory.csv", "Path to the legacy export (.csv or .xlsx)")
	RootCmd.AddCommand(seedCmd)
}
