package cmd

import (
	"context"
	"errors"

	"inventory-audit/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the database schema and report storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the live schema with the inventory models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the report bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	integrityCmd.PersistentFlags().BoolVar(&fixFlag, "fix", false, "Create missing storage bucket and folders")
	integrityCmd.AddCommand(schemaCmd, storageCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, runSchema, runStorage bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// The schema is inspected as it is; migrating first would hide drift
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.close()

	logg := rt.logger
	svc := integrity.NewService(rt.db, rt.store, rt.cfg.Storage, logg)

	if runSchema {
		logg.Info("Checking database schema...", zap.String("driver", rt.cfg.Database.Driver))
		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Database schema matches the inventory models.")
		} else {
			logg.Warn("Database schema mismatches found")
			for table, tbl := range report.Tables {
				if tbl.Status == "ok" {
					continue
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			if len(report.MissingIndexes) > 0 {
				logg.Warn("Missing Indexes", zap.Strings("indexes", report.MissingIndexes))
			}
			if len(report.OrphanedEquipment) > 0 {
				logg.Warn("Audit items reference missing equipment", zap.Strings("equipment_ids", report.OrphanedEquipment))
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
			logg.Info("Run migrate to bring the schema up to date.")
		}
	}

	if runStorage {
		logg.Info("Checking report storage...")
		report, err := svc.CheckStorage(ctx)
		if errors.Is(err, integrity.ErrStorageDisabled) {
			logg.Info("Object storage is disabled, skipping storage check.")
			return nil
		}
		if err != nil {
			return err
		}

		if report.OK() {
			logg.Info("Report storage is intact.", zap.String("bucket", report.Bucket))
			return nil
		}

		logg.Warn("Report storage incomplete",
			zap.Bool("bucket_exists", report.BucketExists),
			zap.Strings("missing", report.Missing))
		if !fixFlag {
			logg.Info("Run with --fix to create what is missing.")
			return nil
		}
		if err := svc.FixStorage(ctx, report); err != nil {
			return err
		}
		logg.Info("Report storage fixed successfully.")
	}
	return nil
}
