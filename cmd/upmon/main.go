package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/template"

	"github.com/spf13/pflag"
	"github.com/upmon/upmon/internal/checker"
	"github.com/upmon/upmon/internal/meta"
	"github.com/upmon/upmon/internal/schedule"
	"github.com/upmon/upmon/internal/scheme"
	"github.com/upmon/upmon/internal/store"
)

func init() {
	scheme.HTTPUserAgent = fmt.Sprintf("upmon/%s health check", meta.Version)
}

// UpmonCommand is the upmon command line, with everything the flags can
// set.
type UpmonCommand struct {
	OutStream io.Writer
	ErrStream io.Writer

	ListenPort   int
	StorePath    string
	Token        string
	ScheduleSpec string
	ReportTo     string
	OneshotMode  bool
	ShowVersion  bool
	ShowHelp     bool

	Schedule schedule.Schedule
	Targets  []checker.Target
}

var defaultUpmonCommand = &UpmonCommand{
	OutStream: os.Stdout,
	ErrStream: os.Stderr,
}

//go:embed help.txt
var helpText string

func (cmd *UpmonCommand) PrintUsage() {
	tmpl := template.Must(template.New("help.txt").Parse(helpText))
	tmpl.Execute(cmd.ErrStream, map[string]interface{}{
		"Version": meta.Version,
	})
}

func (cmd *UpmonCommand) ParseArgs(args []string) (exitCode int) {
	flags := pflag.NewFlagSet("upmon", pflag.ContinueOnError)
	flags.SetOutput(cmd.ErrStream)

	flags.IntVarP(&cmd.ListenPort, "port", "p", 8900, "HTTP listen port")
	flags.StringVarP(&cmd.StorePath, "store", "f", "./upmon.db", "Path to the status database")
	flags.StringVarP(&cmd.Token, "token", "t", os.Getenv("UPMON_TOKEN"), "Shared-secret bearer token")
	flags.StringVarP(&cmd.ScheduleSpec, "schedule", "s", "", "Check cadence")
	flags.StringVarP(&cmd.ReportTo, "report-to", "r", "", "Deliver batches to a remote upmon server instead of recording locally")
	flags.BoolVarP(&cmd.OneshotMode, "oneshot", "1", false, "Check status only once and exit")
	flags.BoolVarP(&cmd.ShowVersion, "version", "v", false, "Show version")
	flags.BoolVarP(&cmd.ShowHelp, "help", "h", false, "Show help message")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(cmd.ErrStream, err)
		fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
		return 2
	}

	if cmd.ShowVersion || cmd.ShowHelp {
		return 0
	}

	cmd.Schedule = schedule.DefaultSchedule
	if cmd.ScheduleSpec != "" {
		var err error
		cmd.Schedule, err = schedule.Parse(cmd.ScheduleSpec)
		if err != nil {
			fmt.Fprintf(cmd.ErrStream, "invalid schedule: %s\n", err)
			return 2
		}
	}

	var err error
	cmd.Targets, err = ParseTargets(flags.Args())
	if err != nil {
		fmt.Fprintln(cmd.ErrStream, err.Error())
		fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s -h` for more information.\n", args[0])
		return 2
	}

	if (cmd.OneshotMode || cmd.ReportTo != "") && len(cmd.Targets) == 0 {
		fmt.Fprintln(cmd.ErrStream, "invalid argument: at least one service=target pair is required in this mode.")
		return 2
	}

	return 0
}

func (cmd *UpmonCommand) PrintVersion() {
	fmt.Fprintf(cmd.OutStream, "upmon version %s (%s)\n", meta.Version, meta.Commit)
}

func (cmd *UpmonCommand) Run(args []string) (exitCode int) {
	if code := cmd.ParseArgs(args); code != 0 {
		return code
	}

	if cmd.ShowVersion {
		cmd.PrintVersion()
		return 0
	}

	if cmd.ShowHelp {
		cmd.PrintUsage()
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cmd.ReportTo != "" {
		return cmd.RunAgent(ctx)
	}

	path := cmd.StorePath
	if cmd.OneshotMode {
		// oneshot prints its findings; no reason to touch the database
		path = "-"
	}

	s, err := store.Open(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: failed to open status database: %s\n", err)
		return 1
	}
	defer s.Close()

	if cmd.OneshotMode {
		return cmd.RunOneshot(ctx, s)
	}
	return cmd.RunServer(ctx, s)
}

func main() {
	os.Exit(defaultUpmonCommand.Run(os.Args))
}
