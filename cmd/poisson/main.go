package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-poisson"
	"github.com/aouyang1/go-poisson/config"
	"github.com/aouyang1/go-poisson/pde"
	"github.com/aouyang1/go-poisson/solver"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	problemName string
	partitions  int
	method      string
	methods     []string
	sizes       []int
	gridOut     string
	exactOut    string
	jsonOut     string
	plotOut     string
	logLevel    string
	profileDir  string
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var stopProfile func()

	rootCmd := &cobra.Command{
		Use:          "poisson",
		Short:        "finite difference poisson solver",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if profileDir != "" {
				stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.Quiet).Stop
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stopProfile != nil {
				stopProfile()
			}
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&problemName, "problem", "", "named problem")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile", "", "write a cpu profile to this directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve a problem and write the solution grid",
		RunE:  runSolve,
	}
	solveCmd.Flags().IntVar(&partitions, "partitions", 0, "partitions per side")
	solveCmd.Flags().StringVar(&method, "method", "", "gaussian, cholesky or auto")
	solveCmd.Flags().StringVar(&gridOut, "grid", "", "solution grid output path")
	solveCmd.Flags().StringVar(&exactOut, "exact", "", "exact grid output path")
	solveCmd.Flags().StringVar(&jsonOut, "json", "", "results json output path")
	solveCmd.Flags().StringVar(&plotOut, "plot", "", "heat map html output path")

	exactCmd := &cobra.Command{
		Use:   "exact",
		Short: "write the exact solution grid of a problem",
		RunE:  runExact,
	}
	exactCmd.Flags().IntVar(&partitions, "partitions", 0, "partitions per side")
	exactCmd.Flags().StringVar(&exactOut, "exact", "", "exact grid output path")

	errorCmd := &cobra.Command{
		Use:   "error",
		Short: "convergence study of the grid error over sizes",
		RunE:  runError,
	}
	errorCmd.Flags().IntSliceVar(&sizes, "sizes", nil, "partitions per side to study")
	errorCmd.Flags().StringVar(&method, "method", "", "gaussian, cholesky or auto")
	errorCmd.Flags().StringVar(&jsonOut, "json", "", "study json output path")
	errorCmd.Flags().StringVar(&plotOut, "plot", "", "line chart html output path")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time every method over sizes",
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", nil, "partitions per side to study")
	benchCmd.Flags().StringSliceVar(&methods, "methods", []string{"gaussian", "cholesky"}, "methods to time")
	benchCmd.Flags().StringVar(&jsonOut, "json", "", "study json output path")
	benchCmd.Flags().StringVar(&plotOut, "plot", "", "line chart html output path")

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list named problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range poisson.ListProblems() {
				p, err := poisson.GetProblem(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Description)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(solveCmd, exactCmd, errorCmd, benchCmd, problemsCmd, initCmd)
	return rootCmd
}

// loadConfig reads the config file if one is given and applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("problem") {
		cfg.Problem = problemName
	}
	if flags.Changed("partitions") {
		cfg.Partitions = partitions
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("sizes") {
		cfg.Sizes = sizes
	}
	if flags.Changed("grid") {
		cfg.Output.Grid = gridOut
	}
	if flags.Changed("exact") {
		cfg.Output.Exact = exactOut
	}
	if flags.Changed("json") {
		cfg.Output.JSON = jsonOut
	}
	if flags.Changed("plot") {
		cfg.Output.Plot = plotOut
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := setupLogger(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q, %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// setup builds the solver and looks up the problem named in the config
func setup(cfg *config.Config) (*poisson.Poisson, poisson.Problem, error) {
	m, err := pde.ParseMethod(cfg.Method)
	if err != nil {
		return nil, poisson.Problem{}, err
	}
	prob, err := poisson.GetProblem(cfg.Problem)
	if err != nil {
		return nil, poisson.Problem{}, err
	}
	p, err := poisson.New(&poisson.Options{
		Lower:         cfg.Lower,
		Upper:         cfg.Upper,
		Method:        m,
		SolverOptions: &solver.Options{Epsilon: cfg.Epsilon},
	})
	if err != nil {
		return nil, poisson.Problem{}, err
	}
	return p, prob, nil
}

func writeTo(path string, write func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, prob, err := setup(cfg)
	if err != nil {
		return err
	}

	res, err := p.Solve(prob, cfg.Partitions)
	if err != nil {
		return err
	}

	if err := writeTo(cfg.Output.Grid, res.WriteGrid); err != nil {
		return err
	}
	if err := writeTo(cfg.Output.Exact, res.WriteExact); err != nil {
		return err
	}
	if err := writeTo(cfg.Output.JSON, res.WriteJSON); err != nil {
		return err
	}
	if cfg.Output.Plot != "" {
		if err := res.Plot(cfg.Output.Plot); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "problem:    %s\n", res.Problem)
	fmt.Fprintf(out, "method:     %s\n", res.Method)
	fmt.Fprintf(out, "unknowns:   %d\n", res.Unknowns)
	fmt.Fprintf(out, "elapsed:    %s\n", res.Elapsed)
	fmt.Fprintf(out, "grid l2:    %.6e\n", res.Scores.GridL2)
	fmt.Fprintf(out, "max abs:    %.6e\n", res.Scores.MaxAbs)
	fmt.Fprintf(out, "residual:   %.6e\n", res.Scores.Residual)
	return nil
}

func runExact(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	prob, err := poisson.GetProblem(cfg.Problem)
	if err != nil {
		return err
	}
	a, err := pde.New(cfg.Lower, cfg.Upper)
	if err != nil {
		return err
	}
	g, err := a.ExactGrid(cfg.Partitions, prob.Exact)
	if err != nil {
		return err
	}

	if cfg.Output.Exact == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), g.String())
		return err
	}
	return writeTo(cfg.Output.Exact, func(w io.Writer) error {
		_, err := io.WriteString(w, g.String())
		return err
	})
}

func runError(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, prob, err := setup(cfg)
	if err != nil {
		return err
	}
	points, err := p.Study(prob, cfg.Sizes, []pde.Method{p.Options().Method})
	if err != nil {
		return err
	}
	return reportStudy(cmd.OutOrStdout(), cfg, points)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, prob, err := setup(cfg)
	if err != nil {
		return err
	}

	ms := make([]pde.Method, 0, len(methods))
	for _, name := range methods {
		m, err := pde.ParseMethod(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		ms = append(ms, m)
	}
	points, err := p.Study(prob, cfg.Sizes, ms)
	if err != nil {
		return err
	}
	return reportStudy(cmd.OutOrStdout(), cfg, points)
}

func reportStudy(out io.Writer, cfg *config.Config, points []poisson.StudyPoint) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tN\tUNKNOWNS\tELAPSED\tGRID L2\tRESIDUAL")
	for _, pt := range points {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.6e\t%.3e\n", pt.Method, pt.Partitions, pt.Unknowns, pt.Elapsed, pt.GridL2, pt.Residual)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err := writeTo(cfg.Output.JSON, func(w io.Writer) error {
		return poisson.WriteStudyJSON(w, points)
	}); err != nil {
		return err
	}
	if cfg.Output.Plot != "" {
		return poisson.PlotStudy(cfg.Output.Plot, points)
	}
	return nil
}
