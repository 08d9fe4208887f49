package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kacebover/lumox/gui/controller"
	"github.com/kacebover/lumox/lookup"
)

var (
	colorOK    = color.New(color.FgGreen)
	colorWarn  = color.New(color.FgYellow)
	colorError = color.New(color.FgRed)
	colorTitle = color.New(color.FgCyan, color.Bold)
)

func (c *cli) lookupCmd(use, short, module string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := lookup.ParseKind(module)
			if err != nil {
				return err
			}
			return c.runLookup(cmd.Context(), kind, strings.Join(args, " "))
		},
	}
}

func (c *cli) dorkCmd() *cobra.Command {
	var (
		op       string
		fileType string
		noOpen   bool
	)

	cmd := &cobra.Command{
		Use:   "dork <term>",
		Short: "Open a search-engine dork in the browser",
		Example: `  lumox dork --op site example.com
  lumox dork --op filetype --filetype pdf "annual report"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			operator, err := lookup.ParseOperator(op)
			if err != nil {
				return err
			}
			query, err := lookup.BuildDork(operator, strings.Join(args, " "), fileType)
			if err != nil {
				return err
			}

			if noOpen {
				lookups, err := c.newLookups()
				if err != nil {
					return err
				}
				fmt.Fprintln(c.stdout, lookups.SearchURL(query))
				return nil
			}
			return c.runLookup(cmd.Context(), lookup.KindDork, query)
		},
	}

	bindDorkFlags(cmd.Flags(), &op, &fileType, &noOpen)
	return cmd
}

func bindDorkFlags(fs *pflag.FlagSet, op, fileType *string, noOpen *bool) {
	names := make([]string, 0, len(lookup.Operators()))
	for _, o := range lookup.Operators() {
		names = append(names, string(o))
	}
	fs.StringVar(op, "op", string(lookup.OpSite), "operator: "+strings.Join(names, ", "))
	fs.StringVar(fileType, "filetype", "", "file type for the filetype operator")
	fs.BoolVar(noOpen, "no-open", false, "print the search URL instead of opening it")
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			data, err := yaml.Marshal(c.config)
			if err != nil {
				return err
			}
			_, err = c.stdout.Write(data)
			return err
		},
	}

	path := &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file path",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{configOptional: "true"},
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(c.stdout, c.configPath)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{configOptional: "true"},
		RunE: func(*cobra.Command, []string) error {
			if _, err := os.Stat(c.configPath); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", c.configPath)
			}
			if err := controller.SaveConfigTo(controller.DefaultConfig(), c.configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			colorOK.Fprintf(c.stdout, "Wrote %s\n", c.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(show, path, initCmd)
	return cmd
}

func (c *cli) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the services and tools the lookups need",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lookups, err := c.newLookups()
			if err != nil {
				return err
			}

			checker := lookup.NewDependencyChecker(lookups)
			for _, s := range checker.CheckAll(cmd.Context()) {
				if s.Available {
					colorOK.Fprintf(c.stdout, "[ok]      %s: %s\n", s.Name, s.Detail)
					continue
				}
				colorError.Fprintf(c.stdout, "[missing] %s: %s\n", s.Name, s.Description)
				if s.Detail != "" {
					fmt.Fprintf(c.stdout, "          %s\n", s.Detail)
				}
				fmt.Fprintf(c.stdout, "          %s\n", s.InstallHint)
			}

			for _, s := range checker.Missing() {
				if s.Required {
					return fmt.Errorf("required dependency unavailable: %s", s.Name)
				}
			}
			return nil
		},
	}
}

func (c *cli) guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Show how to run the desktop application",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			LaunchGUI(c.stdout)
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(c.stdout, "lumox %s\n", version)
		},
	}
}

// newLookups builds the lookup set from the loaded config
func (c *cli) newLookups() (*lookup.Lookups, error) {
	opts, err := c.config.LookupOptions()
	if err != nil {
		return nil, err
	}
	opts.Opener = lookup.URLOpenerFunc(openBrowser)
	return lookup.New(opts), nil
}

// runLookup submits one lookup through a controller and prints its result.
// The pump runs completions inline since the CLI has no UI loop.
func (c *cli) runLookup(ctx context.Context, kind lookup.Kind, input string) error {
	lookups, err := c.newLookups()
	if err != nil {
		return err
	}

	opts := []controller.Option{controller.WithLogger(c.logger), controller.WithContext(ctx)}
	if c.recorder != nil {
		opts = append(opts, controller.WithRecorder(c.recorder))
	}
	hub, err := controller.NewHub(lookups, []lookup.Kind{kind}, opts...)
	if err != nil {
		return err
	}
	lc, err := hub.Controller(kind)
	if err != nil {
		return err
	}

	done := make(chan controller.Completion, 1)
	lc.SetOnComplete(func(comp controller.Completion) { done <- comp })

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	hub.Start(pumpCtx, func(f func()) { f() })

	if _, err := lc.Submit(input); err != nil {
		return err
	}

	var comp controller.Completion
	select {
	case comp = <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	colorTitle.Fprintf(c.stdout, "%s: %s\n", kind.Title(), comp.Request.Input)
	if !comp.Result.OK() {
		colorError.Fprintln(c.stdout, comp.Result.Render())
		return errLookupFailed
	}
	c.printResult(kind, comp.Result.Text())
	return nil
}

func (c *cli) printResult(kind lookup.Kind, text string) {
	if kind != lookup.KindUsername {
		fmt.Fprintln(c.stdout, text)
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case strings.HasSuffix(line, ": "+string(lookup.ProbeFound)):
			colorOK.Fprintln(c.stdout, line)
		case strings.HasSuffix(line, ": "+string(lookup.ProbeNotFound)):
			colorWarn.Fprintln(c.stdout, line)
		default:
			colorError.Fprintln(c.stdout, line)
		}
	}
}

// openBrowser opens rawURL with the platform's default handler
func openBrowser(rawURL string) error {
	cmd := lookup.BrowserCommand(rawURL)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
