// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package command

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-homedir"

	"github.com/eventscrub/eventscrub/agent"
	"github.com/eventscrub/eventscrub/hcl"
)

var _ cli.Command = &ScrubCommand{}

// ScrubCommand reads JSON event documents, runs them through the configured
// processor chain, and writes the sanitized documents back out.
type ScrubCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	// HCL file location
	config string

	// Input and output locations; empty means stdin/stdout
	input  string
	output string

	// dryrun builds and lists the chain without processing any events
	dryrun bool
}

func (c *ScrubCommand) init() {
	const (
		configUsageText = "Path to HCL configuration file"
		inputUsageText  = "Path to a file containing JSON event documents; reads stdin when omitted"
		outputUsageText = "Path the sanitized documents should be written to; writes stdout when omitted"
		dryrunUsageText = "Displays the processors that would be applied during a normal run without processing any events."
	)

	// flag.ContinueOnError allows flag.Parse to return an error if one comes up, rather than doing an `os.Exit(2)`
	// on its own.
	c.flags = flag.NewFlagSet("scrub", flag.ContinueOnError)

	c.flags.StringVar(&c.config, "config", "", configUsageText)
	c.flags.StringVar(&c.input, "input", "", inputUsageText)
	c.flags.StringVar(&c.output, "output", "", outputUsageText)
	c.flags.BoolVar(&c.dryrun, "dryrun", false, dryrunUsageText)

	// When invalid flags are provided, Go will output a usage message of its own. If we direct our flag set to
	// io.Discard, it will effectively be hidden, allowing us to print our own Help message upon failure.
	c.flags.SetOutput(io.Discard)
}

// NewScrubCommand produces a new *command pointer, initialized for use in a CLI application.
func NewScrubCommand(ui cli.Ui) *ScrubCommand {
	c := &ScrubCommand{ui: ui}
	c.init()
	return c
}

// ScrubCommandFactory provides a cli.CommandFactory that will produce an appropriately-initiated *command.
func ScrubCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewScrubCommand(ui), nil
	}
}

// Help provides help text to users who pass in the --help flag or who enter invalid options.
func (c *ScrubCommand) Help() string {
	helpText := `Usage: eventscrub scrub [options]

Sanitizes error-report event documents by running them through the configured
processor chain, redacting or stripping fields that may carry secrets.
`

	return Usage(helpText, c.flags)
}

// Synopsis provides a brief description of the command, for inclusion in the application's primary --help.
func (c *ScrubCommand) Synopsis() string {
	return "Sanitize event documents before transmission"
}

// Run executes the command.
func (c *ScrubCommand) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		// Output the specific error to help the user understand what went wrong.
		c.ui.Warn(err.Error())
		// Since there was an issue in input, let's show our Help to try and assist the user.
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	l := ConfigureLogging("eventscrub")

	var scrub *hcl.Scrub
	if c.config != "" {
		path, err := homedir.Expand(c.config)
		if err != nil {
			l.Error("Failed to expand config path", "config", c.config, "error", err)
			return ConfigError
		}
		hclCfg, err := hcl.Parse(path)
		if err != nil {
			l.Error("Failed to load configuration", "config", path, "error", err)
			return ConfigError
		}
		l.Debug("HCL config is", "hcl", hclCfg)
		scrub = hclCfg.Scrub
	}

	if c.dryrun {
		return c.runDry(l, scrub)
	}

	in, closeIn, err := c.openInput()
	if err != nil {
		l.Error("Failed to open input", "input", c.input, "error", err)
		return SetupError
	}
	defer closeIn()

	out, closeOut, err := c.openOutput()
	if err != nil {
		l.Error("Failed to open output", "output", c.output, "error", err)
		return SetupError
	}
	defer closeOut()

	a := agent.NewAgent(agent.Config{Scrub: scrub, Input: in, Output: out}, l)
	if err := a.Run(); err != nil {
		return AgentExecutionError
	}
	return Success
}

// runDry builds the chain and lists its processors in order, without touching
// any event document.
func (c *ScrubCommand) runDry(l hclog.Logger, scrub *hcl.Scrub) int {
	chain, err := hcl.BuildChain(scrub)
	if err != nil {
		l.Error("Failed to build processor chain", "error", err)
		return ConfigError
	}
	ids := make([]string, len(chain.Processors))
	for i, p := range chain.Processors {
		ids[i] = p.ID()
	}
	c.ui.Output("processors: " + strings.Join(ids, ", "))
	return Success
}

func (c *ScrubCommand) openInput() (io.Reader, func(), error) {
	if c.input == "" {
		return os.Stdin, func() {}, nil
	}
	path, err := homedir.Expand(c.input)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func (c *ScrubCommand) openOutput() (io.Writer, func(), error) {
	if c.output == "" {
		return os.Stdout, func() {}, nil
	}
	path, err := homedir.Expand(c.output)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// ConfigureLogging takes a logger name, sets the default configuration, grabs the LOG_LEVEL from our ENV vars, and
// returns a configured and usable logger.
func ConfigureLogging(loggerName string) hclog.Logger {
	// Create logger, set default and log level
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  loggerName,
		Color: hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}
