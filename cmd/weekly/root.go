package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"weekly-reports/internal/daterange"
	"weekly-reports/internal/interfaces"
	"weekly-reports/internal/store"
	"weekly-reports/internal/types"
	"weekly-reports/internal/weekly"
)

// deps are the seams the command tree is built on.
type deps struct {
	newSummarizer func(ctx context.Context, cfg *store.Config, out io.Writer) (interfaces.WeeklySummarizer, error)
	initSystem    func(ctx context.Context, cfg *store.Config) (func(), error)
}

func defaultDeps() deps {
	return deps{
		newSummarizer: newSummarizer,
		initSystem:    initializeSystem,
	}
}

type rootOptions struct {
	reportsDir string
	outputDir  string
	startDate  string
	endDate    string
	format     string
	verbose    bool
	configPath string
	envFile    string

	start *time.Time
	end   *time.Time
}

// validate parses the date flags and checks the output format.
func (o *rootOptions) validate() error {
	if o.startDate != "" {
		t, err := daterange.Parse(o.startDate)
		if err != nil {
			return fmt.Errorf("--start-date: %w", err)
		}
		o.start = &t
	}
	if o.endDate != "" {
		t, err := daterange.Parse(o.endDate)
		if err != nil {
			return fmt.Errorf("--end-date: %w", err)
		}
		o.end = &t
	}
	if !weekly.ValidFormat(o.format) {
		return fmt.Errorf("--format: %w, got '%s'", weekly.ErrInvalidFormat, o.format)
	}
	return nil
}

func newRootCmd(d deps) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Weekly Reports Summarizer",
		Long:  "Weekly Reports Summarizer - Transform daily reports into concise weekly summaries",
		Args:  cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid; runtime failures should not print usage.
			cmd.SilenceUsage = true
			return runSummary(cmd, d, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.reportsDir, "reports-dir", "r", "", "Directory containing daily report files (format: YYYY-MM-DD.md)")
	f.StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for saving the generated summary (defaults to reports-dir)")
	f.StringVarP(&opts.startDate, "start-date", "s", "", "Start date for the summary (format: YYYY-MM-DD)")
	f.StringVarP(&opts.endDate, "end-date", "d", "", "End date for the summary (format: YYYY-MM-DD). Defaults to the last complete week")
	f.StringVarP(&opts.format, "format", "f", weekly.FormatText, "Output format for the summary (txt or md)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	_ = cmd.MarkFlagRequired("reports-dir")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Optional YAML settings file")
	pf.StringVar(&opts.envFile, "env-file", "", "Environment file (defaults to ./.env)")

	cmd.AddCommand(
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func runSummary(cmd *cobra.Command, d deps, opts *rootOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(opts.envFile, opts.configPath)
	if err != nil {
		return err
	}
	cleanup, err := d.initSystem(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.verbose {
		printBanner(out)
	}

	summarizer, err := d.newSummarizer(ctx, cfg, out)
	if err != nil {
		return err
	}

	res, err := summarizer.Run(ctx, types.SummaryRequest{
		ReportsDir: opts.reportsDir,
		OutputDir:  opts.outputDir,
		Start:      opts.start,
		End:        opts.end,
		Format:     opts.format,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted: %w", err)
		}
		return err
	}

	if opts.verbose {
		fmt.Fprintln(out, color.CyanString("[i] Período: %s a %s",
			res.Range.Start.Format(types.DateLayout), res.Range.End.Format(types.DateLayout)))
		fmt.Fprintln(out, color.CyanString("[i] Relatórios lidos: %d (%s)",
			res.ReportCount, humanize.Bytes(uint64(res.ReportBytes))))
		if res.FailedReports > 0 {
			fmt.Fprintln(out, color.YellowString("[!] Relatórios ilegíveis ignorados: %d", res.FailedReports))
		}
	}
	if res.Path != "" {
		fmt.Fprintln(out, color.GreenString("[+] Resumo semanal gerado em %s", res.Path))
	} else if opts.verbose {
		fmt.Fprintln(out, color.YellowString("[!] Nenhum resumo retornado, nada foi gravado."))
	}
	if opts.verbose {
		fmt.Fprintln(out, color.GreenString("[i] Processamento concluído com sucesso."))
	}
	return nil
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, color.New(color.FgHiMagenta, color.Bold).Sprint("WEEKLY REPORTS"))
	fmt.Fprintln(w, color.WhiteString("Versão %s", version))
	fmt.Fprintln(w, color.WhiteString("Um assistente de sumarização de relatórios semanais em português."))
	fmt.Fprintln(w)
}
