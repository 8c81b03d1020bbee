package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moradia-app/moradia/internal/calculation"
	"github.com/moradia-app/moradia/internal/compare"
	"github.com/moradia-app/moradia/internal/config"
	"github.com/moradia-app/moradia/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "moradia",
	Short: "Housing finance simulator",
	Long:  "Compares buying with financing, renting and investing, and investing until an outright purchase, month by month",
}

var loanCmd = &cobra.Command{
	Use:   "loan [input-file]",
	Short: "Simulate a loan amortization schedule",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := mustLogger()
		defer func() { _ = logger.Sync() }()

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		resolved, err := calculation.ResolveInput(input)
		if err != nil {
			log.Fatal(err)
		}

		result, err := calculation.SimulateLoan(
			resolved.LoanParams(), input.Amortizations, input.AnnualInflationRatePercent, logger)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%s loan of %s over %d months (rate %s%%/month)\n",
			result.System, result.LoanValue.StringFixed(2), result.OriginalTermMonths,
			result.MonthlyRatePercent.StringFixed(4))
		fmt.Printf("  first installment:  %s\n", result.FirstInstallment.StringFixed(2))
		fmt.Printf("  last installment:   %s\n", result.LastInstallment.StringFixed(2))
		fmt.Printf("  total paid:         %s\n", result.TotalPaid.StringFixed(2))
		fmt.Printf("  total interest:     %s\n", result.TotalInterest.StringFixed(2))
		fmt.Printf("  actual term:        %d months", result.ActualTermMonths)
		if result.MonthsSaved > 0 {
			fmt.Printf(" (%d saved by extra amortizations)", result.MonthsSaved)
		}
		fmt.Println()
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the three housing scenarios",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := mustLogger()
		defer func() { _ = logger.Sync() }()

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		engine := compare.NewEngine(logger)
		result, err := engine.EnhancedCompare(input)
		if err != nil {
			log.Fatal(err)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)
		case "json":
			out, err := (&compare.JSONFormatter{}).Format(result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)
		default:
			fmt.Print((&compare.TableFormatter{}).Format(result))
		}
	},
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Sweep a rate parameter and report ranking stability",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := mustLogger()
		defer func() { _ = logger.Sync() }()

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		name, _ := cmd.Flags().GetString("parameter")
		stepPoints, _ := cmd.Flags().GetFloat64("step")
		steps, _ := cmd.Flags().GetInt("steps")

		engine := compare.NewEngine(logger)
		analysis, err := engine.Sensitivity(input, compare.SensitivityParameter{
			Name:       name,
			StepPoints: decimal.NewFromFloat(stepPoints),
			Steps:      steps,
		})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Sensitivity of %s (base winner: %s)\n\n", analysis.Parameter, analysis.BaseBest)
		fmt.Printf("%10s  %-18s\n", "delta pts", "best scenario")
		for _, r := range analysis.Results {
			fmt.Printf("%10s  %-18s\n", r.DeltaPoints.StringFixed(2), r.BestScenario)
		}
		if len(analysis.FlipPoints) == 0 {
			fmt.Println("\nThe recommendation is stable across the swept range.")
		} else {
			fmt.Printf("\nThe winner changes at %d of %d swept points.\n",
				len(analysis.FlipPoints), len(analysis.Results))
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a simulation input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Input file %s is valid\n", args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := server.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}

		logger, err := buildLogger(cfg.Logging, logLevel)
		if err != nil {
			log.Fatal(err)
		}
		defer func() { _ = logger.Sync() }()

		logger.Info("starting server", zap.String("address", cfg.Address))
		if err := server.ListenAndServe(cfg, logger); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "moradia %s (commit %s, built %s)\n", version, commit, date)
	},
}

// buildLogger creates a zap logger from logging config with a CLI override.
func buildLogger(cfg server.LoggingConfig, override string) (*zap.Logger, error) {
	level := cfg.Level
	if override != "" {
		level = override
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var zapConfig zap.Config
	switch cfg.Format {
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	return zapConfig.Build()
}

func mustLogger() *zap.Logger {
	logger, err := buildLogger(server.LoggingConfig{Format: "console"}, logLevel)
	if err != nil {
		log.Fatal(err)
	}
	return logger
}

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	compareCmd.Flags().String("format", "table", "output format (table, csv, json)")
	sensitivityCmd.Flags().String("parameter", compare.ParamInvestmentReturn,
		"rate to sweep (loanInterest, investmentReturn, appreciation, inflation)")
	sensitivityCmd.Flags().Float64("step", 0.5, "sweep step in percentage points")
	sensitivityCmd.Flags().Int("steps", 4, "steps in each direction")
	serveCmd.Flags().String("config", "", "server config file path")

	rootCmd.AddCommand(loanCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
