package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/mmconv/internal/config"
	"github.com/gubarz/mmconv/internal/executor"
	"github.com/gubarz/mmconv/internal/i18n"
	"github.com/gubarz/mmconv/internal/logging"
	"github.com/gubarz/mmconv/internal/mealmaster"
	"github.com/gubarz/mmconv/internal/recipe"
	"github.com/gubarz/mmconv/internal/serializer"
	"github.com/gubarz/mmconv/internal/ui"
)

const name = "mmconv"

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mmconv",
	Short: "MealMaster recipe converter",
	Long: `Converts recipes between MealMaster text files and JSON or YAML.

Read MealMaster archives into structured documents and write them back
as MealMaster text. Archives can also be rewritten in canonical layout
or checked for recipes that fail to parse.`,
	SilenceUsage: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse [paths...]",
	Short: "Convert MealMaster files to JSON or YAML",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Convert a JSON or YAML document to MealMaster text",
	Long: `Reads a list of recipe documents, as written by "mmconv parse", and
writes them as MealMaster text. Without a file the document is read from
stdin in the configured format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [paths...]",
	Short: "Parse MealMaster files and write them out again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalize,
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report MealMaster files that fail to parse",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.AddCommand(parseCmd, exportCmd, normalizeCmd, checkCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default mmconv.yaml in ~/.config/mmconv, ~ or .)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Document format: "+strings.Join(serializer.SupportedFormats(), ", "))
	rootCmd.PersistentFlags().StringP("encoding", "e", "", "Input charset: "+strings.Join(executor.Charsets(), ", "))
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "Files decoded at once")
	rootCmd.PersistentFlags().String("lang", "", "Language for unit names (en, de)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	checkCmd.Flags().BoolP("verbose", "v", false, "List the recipes of every file")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("encoding", rootCmd.PersistentFlags().Lookup("encoding"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("lang", rootCmd.PersistentFlags().Lookup("lang"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	ui.RefreshStyles()
}

func initLogger() {
	logging.SetDefault(name, version, config.GetLogLevel())
	slog.Debug("starting", "name", name, "version", version, "config", viper.ConfigFileUsed())
}

func newExecutor() (*executor.Executor, error) {
	exec, err := executor.NewExecutor(config.GetWorkers(), config.GetEncoding())
	if err != nil {
		return nil, err
	}
	return exec.WithExtensions(config.GetExtensions()).WithLogger(slog.Default()), nil
}

// decode collects and decodes every path. Failed documents are logged and
// counted, the good ones returned.
func decode(ctx context.Context, paths []string) ([]executor.FileReport, error) {
	exec, err := newExecutor()
	if err != nil {
		return nil, err
	}
	files, err := exec.Collect(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no MealMaster files found in %s", strings.Join(paths, ", "))
	}
	slog.Debug("decoding", "files", len(files), "workers", exec.Workers())
	return exec.DecodeFiles(ctx, files)
}

// failures logs every failure and returns an error when there was one.
func failures(reports []executor.FileReport) error {
	n := 0
	for _, r := range reports {
		if r.Err != nil {
			slog.Error("failed to read file", "file", r.Path, "error", r.Err)
			n++
		}
		for _, err := range r.Failures {
			slog.Warn("skipped recipe", "file", r.Path, "error", err)
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d recipes could not be converted", n)
	}
	return nil
}

func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output: %w", err)
	}
	return f, f.Close, nil
}

func writeMealMaster(cmd *cobra.Command, recipes []*recipe.Recipe) (err error) {
	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()

	exporter := mealmaster.NewExporter(mealmaster.WithProgram(config.GetProgram()))
	for _, r := range recipes {
		if err := exporter.WriteTo(w, r); err != nil {
			return fmt.Errorf("write %q: %w", r.Title, err)
		}
		if _, err := io.WriteString(w, "\r\n\r\n"); err != nil {
			return err
		}
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	reports, err := decode(cmd.Context(), args)
	if err != nil {
		return err
	}

	tr, err := i18n.NewTranslator(config.GetLang())
	if err != nil {
		return fmt.Errorf("error loading translations: %w", err)
	}

	format := serializer.Format(config.GetFormat())
	var w *serializer.Writer
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if !cmd.Flags().Changed("format") {
			format = serializer.FormatFromPath(path)
		}
		if w, err = serializer.NewFileWriter(format, path); err != nil {
			return err
		}
	} else {
		w = serializer.NewWriter(format, cmd.OutOrStdout())
	}
	defer w.Close()

	if err := w.Serialize(cmd.Context(), serializer.NewDocuments(executor.Recipes(reports), tr)); err != nil {
		return err
	}
	return failures(reports)
}

func runExport(cmd *cobra.Command, args []string) error {
	var (
		r   *serializer.Reader
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		r, err = serializer.NewReader(serializer.Format(config.GetFormat()), cmd.InOrStdin())
	} else {
		r, err = serializer.NewFileReader(args[0])
	}
	if err != nil {
		return err
	}
	defer r.Close()

	recipes, err := serializer.ReadRecipes(r)
	if err != nil {
		return err
	}
	return writeMealMaster(cmd, recipes)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	reports, err := decode(cmd.Context(), args)
	if err != nil {
		return err
	}
	if err := writeMealMaster(cmd, executor.Recipes(reports)); err != nil {
		return err
	}
	return failures(reports)
}

func runCheck(cmd *cobra.Command, args []string) error {
	reports, err := decode(cmd.Context(), args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	fmt.Fprint(cmd.OutOrStdout(), ui.Report(reports, verbose))

	if sum := ui.Summarize(reports); !sum.OK() {
		return fmt.Errorf("%d of %d files failed", sum.FailedFiles, sum.Files)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
