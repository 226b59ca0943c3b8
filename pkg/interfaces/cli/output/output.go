package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vsinha/supplycover/pkg/application/dto"
	"github.com/vsinha/supplycover/pkg/domain/services/validation"
)

// Formats lists the supported output formats
var Formats = []string{"text", "json", "csv", "svg"}

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// WriteCoverage renders a projection. Every format is supported.
func WriteCoverage(w io.Writer, report *dto.CoverageReport, config Config) error {
	return emit(w, config, "coverage", func(out io.Writer) error {
		switch config.Format {
		case "text":
			return coverageText(out, report)
		case "json":
			return writeJSON(out, report)
		case "csv":
			rows := [][]string{{"day", "demand", "replenishment", "days_of_supply"}}
			for i, r := range report.Results {
				rows = append(rows, []string{
					r.Day.Format("2006-01-02"),
					seriesAt(report.Demand, i),
					seriesAt(report.Replenishment, i),
					formatQuantity(r.DaysOfSupply),
				})
			}
			return writeCSV(out, rows)
		case "svg":
			_, err := io.WriteString(out, NewCoverageChart(report).GenerateSVG(report))
			return err
		default:
			return fmt.Errorf("unsupported output format: %s", config.Format)
		}
	})
}

// WriteQuantities renders per-day quantities
func WriteQuantities(w io.Writer, report *dto.QuantityReport, config Config) error {
	return emit(w, config, "quantities", func(out io.Writer) error {
		switch config.Format {
		case "text":
			fmt.Fprintf(out, "📦 %s quantities for %s\n\n", report.Kind, displayMaterial(string(report.Material)))
			fmt.Fprintf(out, "%-12s %12s\n", "Day", "Quantity")
			fmt.Fprintf(out, "%-12s %12s\n", "------------", "------------")
			for i, q := range report.Quantities {
				fmt.Fprintf(out, "%-12s %12s\n", report.Start.AddDate(0, 0, i).Format("2006-01-02"), formatQuantity(q))
			}
			return nil
		case "json":
			return writeJSON(out, report)
		case "csv":
			rows := [][]string{{"day", "quantity"}}
			for i, q := range report.Quantities {
				rows = append(rows, []string{report.Start.AddDate(0, 0, i).Format("2006-01-02"), formatQuantity(q)})
			}
			return writeCSV(out, rows)
		default:
			return fmt.Errorf("unsupported output format: %s", config.Format)
		}
	})
}

// WriteValidation renders validation results. Text output lists invalid records only.
func WriteValidation(w io.Writer, results []validation.Result, config Config) error {
	return emit(w, config, "validation", func(out io.Writer) error {
		switch config.Format {
		case "text":
			invalid := 0
			for _, r := range results {
				if r.Valid() {
					if config.Verbose {
						fmt.Fprintf(out, "✅ %s %s\n", r.Kind, r.RecordID)
					}
					continue
				}
				invalid++
				fmt.Fprintf(out, "❌ %s %s\n", r.Kind, r.RecordID)
				for _, violation := range r.Errors {
					fmt.Fprintf(out, "   - %s\n", violation)
				}
			}
			fmt.Fprintf(out, "\n%d of %d records valid\n", len(results)-invalid, len(results))
			return nil
		case "json":
			return writeJSON(out, results)
		case "csv":
			rows := [][]string{{"kind", "id", "violation"}}
			for _, r := range results {
				for _, violation := range r.Errors {
					rows = append(rows, []string{r.Kind.String(), r.RecordID.String(), violation})
				}
			}
			return writeCSV(out, rows)
		default:
			return fmt.Errorf("unsupported output format: %s", config.Format)
		}
	})
}

func coverageText(out io.Writer, report *dto.CoverageReport) error {
	fmt.Fprintf(out, "📊 Days of supply: %s (%s)\n", report.Material, report.Role)
	fmt.Fprintf(out, "======================\n\n")
	fmt.Fprintf(out, "Partner: %s\n", report.Partner)
	fmt.Fprintf(out, "Site: %s\n", report.Site)
	fmt.Fprintf(out, "Initial Stock: %s\n\n", formatQuantity(report.InitialStock))

	fmt.Fprintf(out, "%-12s %12s %14s %15s\n", "Day", "Demand", "Replenishment", "Days of Supply")
	fmt.Fprintf(out, "%-12s %12s %14s %15s\n", "------------", "------------", "--------------", "---------------")
	for i, r := range report.Results {
		marker := ""
		if r.DaysOfSupply < 1 {
			marker = " ⚠️"
		}
		fmt.Fprintf(out, "%-12s %12s %14s %15.2f%s\n",
			r.Day.Format("2006-01-02"),
			seriesAt(report.Demand, i),
			seriesAt(report.Replenishment, i),
			r.DaysOfSupply,
			marker)
	}
	return nil
}

// emit writes to w, or to <name>.<format> in the output directory when one is set
func emit(w io.Writer, config Config, name string, write func(io.Writer) error) error {
	if config.OutputDir == "" {
		return write(w)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	ext := config.Format
	if ext == "text" {
		ext = "txt"
	}
	filename := filepath.Join(config.OutputDir, name+"."+ext)
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
	}
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(jsonData))
	return err
}

func writeCSV(out io.Writer, rows [][]string) error {
	writer := csv.NewWriter(out)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// seriesAt formats day i of a series; cached reports carry no series
func seriesAt(series []float64, i int) string {
	if i >= len(series) {
		return "-"
	}
	return formatQuantity(series[i])
}

func displayMaterial(m string) string {
	if m == "" {
		return "all materials"
	}
	return m
}
