package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"inventory-audit/feature/audit"
	"inventory-audit/feature/equipment"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportFormat string
	reportOut    string
	reportExport bool
)

// auditCmd groups the audit session commands
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run inventory audits from the command line",
}

var auditCreateCmd = &cobra.Command{
	Use:   "create <auditor>",
	Short: "Start a new audit",
	Args:  cobra.ExactArgs(1),
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		a, err := svc.CreateAudit(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), a)
	}),
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audits, newest first",
	Args:  cobra.NoArgs,
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		audits, err := svc.ListAudits(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), audits)
	}),
}

var auditScanCmd = &cobra.Command{
	Use:   "scan <audit-id> <barcode>...",
	Short: "Record scanned barcodes",
	Long: `Scans each barcode in order. Unknown and repeated barcodes are reported
and skipped; any other failure stops the run.`,
	Args: cobra.MinimumNArgs(2),
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		out := cmd.OutOrStdout()
		for _, barcode := range args[1:] {
			res, err := svc.ScanBarcode(cmd.Context(), args[0], barcode)
			var oe *audit.OutcomeError
			switch {
			case errors.As(err, &oe) && !errors.Is(err, audit.ErrAuditNotFound):
				fmt.Fprintf(out, "%s\t%s\n", barcode, oe.Message)
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "%s\t%s\n", barcode, res.Message)
			}
		}
		return nil
	}),
}

var auditStatsCmd = &cobra.Command{
	Use:   "stats <audit-id>",
	Short: "Show found and not-found counts",
	Args:  cobra.ExactArgs(1),
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		stats, err := svc.GetAuditStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	}),
}

var auditMissingCmd = &cobra.Command{
	Use:   "missing <audit-id>",
	Short: "List equipment not scanned in the audit",
	Args:  cobra.ExactArgs(1),
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		items, err := svc.GetNotFoundEquipment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, eq := range items {
			fmt.Fprintf(out, "%s\t%s\t%s\n", eq.Barcode, eq.Name, eq.DisplayLocation())
		}
		return nil
	}),
}

var auditUnmarkCmd = &cobra.Command{
	Use:   "unmark <audit-id> <equipment-id>",
	Short: "Remove a scan from the audit",
	Args:  cobra.ExactArgs(2),
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		msg, err := svc.UnmarkAsFound(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}),
}

var auditCompleteCmd = &cobra.Command{
	Use:   "complete <audit-id>",
	Short: "Mark the audit as completed",
	Args:  cobra.ExactArgs(1),
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		a, err := svc.CompleteAudit(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), a)
	}),
}

var auditReportCmd = &cobra.Command{
	Use:   "report <audit-id>",
	Short: "Write or export the audit report",
	Long: `Renders the found / not-found report as csv, xlsx or json. The report is
written to --out (stdout by default) or, with --export, uploaded to object storage.`,
	Args: cobra.ExactArgs(1),
	RunE: withAudit(func(cmd *cobra.Command, svc *audit.Service, args []string) error {
		ctx := cmd.Context()
		if reportExport {
			name, err := svc.ExportReport(ctx, args[0], reportFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		}

		if _, err := svc.GetAudit(ctx, args[0]); err != nil {
			return err
		}
		rows, err := svc.GenerateReport(ctx, args[0])
		if err != nil {
			return err
		}
		var data []byte
		if reportFormat == audit.FormatJSON {
			data, err = json.MarshalIndent(rows, "", "  ")
		} else {
			data, err = audit.Render(reportFormat, rows)
		}
		if err != nil {
			return err
		}

		if reportOut == "" || reportOut == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(reportOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		zap.L().Info("Report written", zap.String("file", reportOut), zap.Int("rows", len(rows)))
		return nil
	}),
}

func init() {
	auditReportCmd.Flags().StringVar(&reportFormat, "format", audit.FormatCSV, "Report format (csv, xlsx, json)")
	auditReportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output file (default stdout)")
	auditReportCmd.Flags().BoolVar(&reportExport, "export", false, "Upload the report to object storage")

	auditCmd.AddCommand(
		auditCreateCmd,
		auditListCmd,
		auditScanCmd,
		auditStatsCmd,
		auditMissingCmd,
		auditUnmarkCmd,
		auditCompleteCmd,
		auditReportCmd,
	)
	RootCmd.AddCommand(auditCmd)
}

// withAudit runs fn with an audit service backed by the configured database.
func withAudit(fn func(cmd *cobra.Command, svc *audit.Service, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.close()
		zap.ReplaceGlobals(rt.logger)

		svc := rt.auditService(equipment.NewService(rt.db, rt.logger), nil)
		return fn(cmd, svc, args)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
