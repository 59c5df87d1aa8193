package main

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"mover/internal/config"
	"mover/internal/log"
	"mover/internal/organize"
	"mover/internal/report"
	"mover/internal/watch"
	"mover/pkg/types"
)

// scanDir is the directory mover organizes: the one it runs in
const scanDir = "."

// reportedError marks an error that has already been emitted to the sink
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

type rootOptions struct {
	test      bool
	overwrite bool
	format    string
	verbose   int
	watch     bool
	logFile   bool
}

// NewRootCmd creates the mover command working on fs
func NewRootCmd(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mover",
		Short: "Renames and moves files based on configuration",
		Long: `mover organizes the files of the current directory using the rules in
` + config.FileName + `. Each file is matched against the rule patterns in
order; the first matching rule renames the file and moves it to the rule's
destination directory.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, fs)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.test, "test", "t", false, "Run in test mode (simulate actions without modifying files)")
	flags.BoolVarP(&opts.overwrite, "overwrite", "o", false, "Overwrite existing files in destination (default: skip)")
	flags.StringVarP(&opts.format, "format", "f", "auto", "Output format: auto, terminal, text, json, yaml or silent")
	flags.CountVarP(&opts.verbose, "verbose", "v", "Log progress to stderr (repeat for debug output)")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Keep running and organize files as they appear")
	flags.BoolVar(&opts.logFile, "log-file", false, "Also append logs to mover/mover.log in the XDG state directory")

	return rootCmd
}

func (o *rootOptions) run(cmd *cobra.Command, fs afero.Fs) error {
	if err := log.Setup(o.verbose, o.logFile); err != nil {
		log.LogWithError(err).Warn("file logging disabled")
	}
	defer func() { _ = log.Default().Close() }()

	format, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}
	out, err := report.New(format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	sink := report.Tee(out, report.SinkFunc(logEvent))

	mode := types.Mode{Simulate: o.test, Overwrite: o.overwrite}
	log.LogWithFields(log.F("mode", mode.String()), log.F("format", format.String())).Debug("starting")

	sink.Emit(types.Event{Kind: types.EventHeader})
	if mode.Simulate {
		sink.Emit(types.Event{Kind: types.EventTestMode})
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fail(sink, err)
	}

	organizer := organize.CurrentOrganizerFactory(fs, sink)

	// The watcher starts before the first pass so files created while it
	// runs still trigger a later one.
	var daemon *watch.Daemon
	if o.watch {
		daemon = newWatchDaemon(fs, organizer, sink, mode)
		if err := daemon.Start(); err != nil {
			return fail(sink, err)
		}
		defer daemon.Stop()
	}

	if _, err := organizer.OrganizeDirectory(cfg, scanDir, mode); err != nil {
		return fail(sink, err)
	}

	if daemon != nil {
		if err := runWatch(cmd.Context(), daemon); err != nil {
			return fail(sink, err)
		}
	}

	sink.Emit(types.Event{Kind: types.EventSuccess})
	return nil
}

// newWatchDaemon re-runs the organizer whenever files appear. The rule file
// is reloaded on every pass; a broken rule file is reported and the pass
// skipped, while an unreadable directory ends the watch.
func newWatchDaemon(fs afero.Fs, organizer organize.Organizer, sink report.Sink, mode types.Mode) *watch.Daemon {
	pass := func() (types.Summary, error) {
		cfg, err := config.Load(fs)
		if err != nil {
			sink.Emit(report.ErrorEvent(err))
			return types.Summary{}, nil
		}
		return organizer.OrganizeDirectory(cfg, scanDir, mode)
	}
	return watch.NewDaemon(scanDir, pass, watch.WithIgnore(organizer.Produced))
}

func runWatch(ctx context.Context, daemon *watch.Daemon) error {
	log.Info("watching for new files, press Ctrl+C to stop")
	err := daemon.Run(ctx)

	status := daemon.Status()
	log.LogWithFields(log.F("passes", status.Passes), log.F("processed", status.Totals.Processed)).Info("watch stopped")
	return err
}

// logEvent mirrors every emitted event into the debug log
func logEvent(e types.Event) {
	fields := []log.Field{log.F("kind", string(e.Kind))}
	if e.File != "" {
		fields = append(fields, log.F("file", e.File))
	}
	if e.To != "" {
		fields = append(fields, log.F("to", e.To))
	}
	if e.Simulated {
		fields = append(fields, log.F("simulated", true))
	}
	log.LogWithFields(fields...).Debug("event")
}

func fail(sink report.Sink, err error) error {
	sink.Emit(report.ErrorEvent(err))
	return &reportedError{err: err}
}
