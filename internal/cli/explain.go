package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/pipeline"
)

// explainOpts holds the flags shared by explain and dot.
type explainOpts struct {
	format   string
	output   string
	compact  bool
	detailed bool
	refresh  bool
	cache    cacheOpts
}

// explainCommand creates the explain command.
func (c *CLI) explainCommand() *cobra.Command {
	var opts explainOpts

	cmd := &cobra.Command{
		Use:   "explain [plan.toml]",
		Short: "Write a plan as JSON relations",
		Long: `Explain reads a TOML plan file (or stdin when the argument is "-" or
missing) and writes every distinct relational node as one record of the
{"rels": [...]} document. Use --format to get the indented text tree or a
Graphviz diagram instead.`,
		Example: `  relexplain explain plan.toml
  relexplain explain plan.toml --compact -o plan.json
  relexplain explain plan.toml -f text
  cat plan.toml | relexplain explain -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplain(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.DefaultFormat, "output format: json, text, dot, svg")
	opts.registerCommon(cmd, false)

	return cmd
}

// dotCommand creates the dot command, a shortcut for explain --format dot
// with attribute-rich labels.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		opts explainOpts
		svg  bool
	)

	cmd := &cobra.Command{
		Use:   "dot [plan.toml]",
		Short: "Draw a plan as a Graphviz diagram",
		Long: `Dot draws the plan as a directed graph whose nodes are labeled with the
ids the JSON document assigns, so the two outputs can be read side by side.`,
		Example: `  relexplain dot plan.toml | dot -Tpng > plan.png
  relexplain dot plan.toml --svg -o plan.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = pipeline.FormatDOT
			if svg {
				opts.format = pipeline.FormatSVG
			}
			return c.runExplain(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT source")
	opts.registerCommon(cmd, true)

	return cmd
}

func (o *explainOpts) registerCommon(cmd *cobra.Command, detailed bool) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&o.compact, "compact", false, "write json on a single line")
	cmd.Flags().BoolVar(&o.detailed, "detailed", detailed, "include attributes in diagram labels")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached output")
	o.cache.register(cmd)
}

func (c *CLI) runExplain(cmd *cobra.Command, args []string, opts explainOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	data, source, err := readPlan(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	logger.Debug("read plan", "source", source, "bytes", len(data))

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Plan:     data,
		Format:   opts.format,
		Compact:  opts.compact,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if result.CacheHit {
		prog.done("Served from cache", "plan", result.PlanHash[:12])
	} else {
		prog.done(fmt.Sprintf("Explained %d nodes", result.Stats.NodeCount), "records", result.Stats.Records)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(result.Output)
		return err
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	printSuccess("Wrote %s", opts.format)
	printFile(opts.output)
	printStats(result.Stats.NodeCount, result.Stats.Records, result.CacheHit)
	return nil
}

// readPlan returns the plan bytes and a description of where they came from.
func readPlan(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}

	path := args[0]
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.New(errors.ErrCodeFileNotFound, "plan file %s not found", path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}
