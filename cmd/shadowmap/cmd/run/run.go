// Package run provides the run command implementation.
package run

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/auditgrid/shadowmap"
	"github.com/auditgrid/shadowmap/internal/cmd/alerts"
	"github.com/auditgrid/shadowmap/internal/cmd/application"
	"github.com/auditgrid/shadowmap/internal/cmd/globals"
	"github.com/auditgrid/shadowmap/internal/cmd/output"
	"github.com/auditgrid/shadowmap/internal/report"
	"github.com/auditgrid/shadowmap/internal/sources"
	"github.com/auditgrid/shadowmap/pkg/audit"
	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/logging"
)

// ExecuteRun orchestrates one complete audit run: fetch, reconcile,
// write artifacts, and optionally summarize and deliver.
func ExecuteRun(ctx context.Context, app application.Application, flags *Flags, globalFlags *globals.Flags) error {
	logger := app.Logger()
	status := statusWriter(globalFlags)

	// Resolve run identity and artifact location
	outDir := flags.OutDir
	if outDir == "" {
		outDir = app.OutputDir()
	}
	runID := flags.RunID
	if runID == "" {
		runID = app.RunID()
	}
	if runID == "" {
		runID = time.Now().Format(constants.TimeFormatRunID)
	}
	ctx = logging.WithRunID(ctx, runID)

	// Build the instance, honoring per-run source overrides
	sm, owned, err := resolveInstance(app, flags)
	if err != nil {
		return err
	}
	if owned {
		defer func() {
			if err := sm.Cleanup(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release data source")
			}
		}()
	}

	_ = status.WriteAlert(alerts.NewInfo(fmt.Sprintf("Reconciling from source %q", sm.Source())))

	result, err := sm.Audit(ctx)
	if err != nil {
		_ = status.WriteAlert(alerts.NewError("Audit failed").WithError(err))
		return err
	}

	logger.Info().
		Str("run_id", runID).
		Int("spine_rows", len(result.Spine)).
		Int("priority_gaps", len(result.PriorityGaps)).
		Int("orphans", len(result.Orphans)).
		Dur("duration", result.Duration).
		Msg("Audit complete")

	// The summary is an enhancement: any failure degrades the report to
	// its table-only form instead of failing the run
	summaryText := generateSummary(ctx, app, flags, result, status)

	artifacts, err := report.WriteAll(outDir, runID, result, summaryText)
	if err != nil {
		_ = status.WriteAlert(alerts.NewError("Failed to write artifacts").WithError(err))
		return err
	}
	_ = status.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Wrote %d artifacts to %s", len(artifacts), outDir)))

	if err := deliverArtifacts(ctx, app, flags, status, logger, artifacts); err != nil {
		return err
	}

	// Print the outcome tally unless quiet
	if !globalFlags.Quiet {
		formatter := output.NewFormatter(output.FormatTable)
		if err := formatter.Format(os.Stdout, output.TableData(report.TallyTable(result.Tally))); err != nil {
			return err
		}
		fmt.Println(result.Summary())
	}

	return nil
}

// statusWriter returns the alert destination for this run. Quiet runs
// discard status lines; everything else goes to stderr so stdout stays
// clean for data.
func statusWriter(globalFlags *globals.Flags) alerts.Writer {
	if globalFlags.Quiet {
		return alerts.DiscardWriter
	}

	w := alerts.NewFormatWriter(os.Stderr, output.Format(globalFlags.Format))
	if globalFlags.NoColor {
		w.DisableColor()
	}
	return w
}

// resolveInstance returns the shadowmap instance for this run. A source
// override builds a dedicated instance the caller must clean up; without
// overrides the app's shared instance is used.
func resolveInstance(app application.Application, flags *Flags) (shadowmap.Shadowmap, bool, error) {
	var opts []shadowmap.Option
	if flags.DatabaseURL != "" {
		opts = append(opts, shadowmap.WithDatabaseURL(flags.DatabaseURL))
	}
	// An explicit source is applied last so it wins over the DSN's
	// implied postgres selection
	if flags.Source != "" {
		opts = append(opts, shadowmap.WithSource(sources.ID(flags.Source)))
	}

	if len(opts) == 0 {
		sm, err := app.Shadowmap()
		return sm, false, err
	}

	sm, err := app.Shadowmap(opts...)
	return sm, true, err
}

// generateSummary produces the executive summary when enabled by flag or
// configuration. Failures are reported and leave the summary empty.
func generateSummary(ctx context.Context, app application.Application, flags *Flags, result *audit.Result, status alerts.Writer) string {
	if !flags.Summary && !app.SummaryEnabled() {
		return ""
	}

	gen, err := app.Summarizer()
	if err != nil {
		_ = status.WriteAlert(alerts.NewWarning("Executive summary skipped").WithError(err))
		return ""
	}

	text, err := gen.Generate(ctx, result)
	if err != nil {
		_ = status.WriteAlert(alerts.NewWarning("Executive summary skipped").WithError(err))
		return ""
	}
	return text
}

// deliverArtifacts uploads the artifact set when a destination is
// configured. The --upload flag turns a missing destination into an
// error instead of a skip.
func deliverArtifacts(ctx context.Context, app application.Application, flags *Flags, status alerts.Writer, logger *zerolog.Logger, artifacts []report.Artifact) error {
	up, err := app.Uploader()
	if err != nil {
		if flags.Upload {
			_ = status.WriteAlert(alerts.NewError("Upload requested but not configured").WithError(err))
			return err
		}
		logger.Debug().Err(err).Msg("Artifact delivery not configured, skipping upload")
		return nil
	}

	for _, artifact := range artifacts {
		if err := up.Upload(ctx, artifact); err != nil {
			_ = status.WriteAlert(alerts.NewError(fmt.Sprintf("Failed to upload %s", artifact.Name)).WithError(err))
			return err
		}
		logger.Debug().Str("artifact", artifact.Name).Msg("Artifact uploaded")
	}

	_ = status.WriteAlert(alerts.NewSuccess(fmt.Sprintf("Uploaded %d artifacts", len(artifacts))))
	return nil
}
