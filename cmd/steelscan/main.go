// Command steelscan runs the steel-building drawing-analysis pipeline
// against a PDF file from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steelscan/steelscan/internal/analyze"
	"github.com/steelscan/steelscan/internal/catalog"
	"github.com/steelscan/steelscan/internal/config"
	"github.com/steelscan/steelscan/internal/logger"
)

var calibrationPath string

func main() {
	root := &cobra.Command{
		Use:   "steelscan",
		Short: "Analyze Japanese steel-building engineering drawings",
	}
	root.PersistentFlags().StringVar(&calibrationPath, "calibration", "", "path to a YAML calibration overlay")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newCatalogCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if calibrationPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadCalibration(calibrationPath)
}

func newAnalyzeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "analyze <pdf-file>",
		Short: "Run the full analysis pipeline against one PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading calibration: %w", err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			result, err := analyze.Run(data, args[0], cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				enc = json.NewEncoder(f)
				enc.SetIndent("", "  ")
			}
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write JSON result to this path instead of stdout")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog <section-notation>",
		Short: "Parse one steel-section notation entry and print its unit weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, lattice, weight := catalog.ParseMemberEntry(args[0])
			if sec == nil && lattice == nil {
				logger.Warn("no recognized section notation in %q", args[0])
				return fmt.Errorf("unparseable section notation: %s", args[0])
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"section":     sec,
				"lattice":     lattice,
				"unit_weight": weight,
			})
		},
	}
	return cmd
}
