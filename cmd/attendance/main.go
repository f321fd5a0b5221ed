/*
main.go - attendance CLI entry point

PURPOSE:
  Command-line surface over the attendance rule engine. One subcommand
  per metric plus the combined summary:

    attendance working-days -i export.xlsx
    attendance overtime     -i export.xlsx -d 2025-12-01
    attendance debit        -i export.xlsx
    attendance meals        -i export.xlsx -o meals.json
    attendance payroll      -i export.xlsx
    attendance summary      -i export.xlsx -o summary.json

OUTPUT:
  Indent-2 JSON on stdout, or written to <output.folder>/<out> when
  --out is given (the folder is created on demand).

CONFIG:
  --config points at a YAML file; without it, attendance.yaml in the
  working directory is read if present, otherwise the payroll contract
  defaults apply.
*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/config"
	"github.com/warp/attendance-engine/factory"
	"github.com/warp/attendance-engine/report"
)

var (
	configPath string
	inputPath  string
	outputName string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attendance",
		Short: "Payroll attendance metrics from the GPS time-clock export",
		Long: "Computes working-day validity, overtime pay, meal entitlements and " +
			"debit hours per employee from a raw attendance spreadsheet export.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "Path to the XLSX export")
	rootCmd.PersistentFlags().StringVarP(&outputName, "out", "o", "", "Write JSON output to a file under the output folder instead of stdout")
	_ = rootCmd.MarkPersistentFlagRequired("input")

	rootCmd.AddCommand(
		workingDaysCmd(),
		overtimeCmd(),
		debitCmd(),
		mealsCmd(),
		payrollCmd(),
		summaryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runContext is the per-invocation wiring: config, logger, rules.
type runContext struct {
	cfg   *config.Config
	rules *factory.Rules
}

func setup() (*runContext, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err = buildLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &runContext{cfg: cfg, rules: factory.New(cfg, logger)}, nil
}

// startCutoff resolves the ingestion cutoff: the --date flag wins over
// report.start_date from the config.
func (rc *runContext) startCutoff(flagValue string) (*time.Time, error) {
	value := flagValue
	if value == "" {
		value = rc.cfg.Report.StartDate
	}
	if value == "" {
		return nil, nil
	}
	ts, err := report.ParseStartDate(value)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (rc *runContext) load(include attendance.TypeSet, start *time.Time) (*attendance.RecordSet, error) {
	return report.Load(inputPath, include, report.Options{
		Sheet:     rc.cfg.Report.Sheet,
		StartDate: start,
		Logger:    logger,
	})
}

func workingDaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "working-days",
		Short: "Calculate valid and invalid working days per employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup()
			if err != nil {
				return err
			}
			set, err := rc.load(attendance.WorkingDayTypes(), nil)
			if err != nil {
				return err
			}
			result, err := rc.rules.WorkingDays.Evaluate(set)
			if err != nil {
				return err
			}
			return rc.emit(result)
		},
	}
}

func overtimeCmd() *cobra.Command {
	var startDate string
	cmd := &cobra.Command{
		Use:   "overtime",
		Short: "Pair overtime sessions and total the valid hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup()
			if err != nil {
				return err
			}
			start, err := rc.startCutoff(startDate)
			if err != nil {
				return err
			}
			set, err := rc.load(attendance.OvertimeTypes(), start)
			if err != nil {
				return err
			}
			return rc.emit(rc.rules.Overtime.Evaluate(set))
		},
	}
	cmd.Flags().StringVarP(&startDate, "date", "d", "", "Starting date of the filtered report")
	return cmd
}

func debitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debit",
		Short: "Accumulate tardiness and early-departure debit hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup()
			if err != nil {
				return err
			}
			set, err := rc.load(attendance.WorkingDayTypes(), nil)
			if err != nil {
				return err
			}
			totals, err := rc.rules.Debit.Evaluate(set)
			if err != nil {
				return err
			}
			return rc.emit(map[string]any{
				"attendance":  set.ToMap(),
				"debit_hours": totals,
			})
		},
	}
}

func mealsCmd() *cobra.Command {
	var startDate string
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Count entitled meals per employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup()
			if err != nil {
				return err
			}
			start, err := rc.startCutoff(startDate)
			if err != nil {
				return err
			}
			set, err := rc.load(attendance.MealTypes(), start)
			if err != nil {
				return err
			}
			return rc.emit(rc.rules.Meals.Evaluate(set))
		},
	}
	cmd.Flags().StringVarP(&startDate, "date", "d", "", "Starting date of the filtered report")
	return cmd
}

func payrollCmd() *cobra.Command {
	var startDate string
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Offset overtime against debit and price the surplus",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup()
			if err != nil {
				return err
			}
			start, err := rc.startCutoff(startDate)
			if err != nil {
				return err
			}
			result, err := rc.reconcile(start)
			if err != nil {
				return err
			}
			return rc.emit(result)
		},
	}
	cmd.Flags().StringVarP(&startDate, "date", "d", "", "Starting date of the filtered report")
	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Generate the combined per-employee attendance summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := setup()
			if err != nil {
				return err
			}

			payroll, err := rc.reconcile(nil)
			if err != nil {
				return err
			}

			workSet, err := rc.load(attendance.WorkingDayTypes(), nil)
			if err != nil {
				return err
			}
			workingDays, err := rc.rules.WorkingDays.Evaluate(workSet)
			if err != nil {
				return err
			}

			mealSet, err := rc.load(attendance.MealTypes(), nil)
			if err != nil {
				return err
			}
			meals := rc.rules.Meals.Evaluate(mealSet)

			return rc.emit(attendance.Summarize(attendance.SummaryInput{
				ValidWorkingDays:   workingDays.Valid,
				InvalidWorkingDays: workingDays.Invalid,
				OvertimePay:        payroll.OvertimePay,
				RemainingDebit:     payroll.RemainingDebit,
				MealsCount:         meals.Totals,
			}))
		},
	}
}

// reconcile runs the debit and overtime rules and offsets them.
func (rc *runContext) reconcile(start *time.Time) (*attendance.PayrollResult, error) {
	debitSet, err := rc.load(attendance.WorkingDayTypes(), start)
	if err != nil {
		return nil, err
	}
	debit, err := rc.rules.Debit.Evaluate(debitSet)
	if err != nil {
		return nil, err
	}

	overtimeSet, err := rc.load(attendance.OvertimeTypes(), start)
	if err != nil {
		return nil, err
	}
	overtime := rc.rules.Overtime.Evaluate(overtimeSet)

	return rc.rules.Payroll.Reconcile(debit, overtime.Totals), nil
}

// emit marshals the payload and writes it to stdout or the output file.
func (rc *runContext) emit(payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if outputName == "" {
		fmt.Println(string(data))
		return nil
	}

	outputPath := filepath.Join(rc.cfg.Output.Folder, outputName)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote output", zap.String("path", outputPath))
	return nil
}

func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if cfg.File == "" {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		zcfg.EncoderConfig.TimeKey = "timestamp"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return zcfg.Build()
	}

	// File output with rotation.
	writer := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(writer),
		level,
	)
	return zap.New(core), nil
}
