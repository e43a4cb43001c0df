package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"futurtask/internal/api"
	"futurtask/internal/config"
	"futurtask/internal/logging"
)

// Connector opens the storage behind the API once configuration is known.
// The returned function releases it.
type Connector func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	app      *App
	registry *CommandRegistry
	connect  Connector
	closeFn  func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(connect Connector) *RootCommand {
	app := NewApp(nil, nil)
	root := &RootCommand{
		app:      app,
		registry: NewCommandRegistry(app),
		connect:  connect,
	}

	root.cmd = &cobra.Command{
		Use:   "futurtask",
		Short: "A local task tracker with profiles, statistics and reminders",
		Long: `FuturTask keeps tasks in named profiles on this machine.

EXAMPLES:
  futurtask add "Write report" --date 2024-06-20 --tags "#work #q2" --priority high
  futurtask list --status pending report        # Search pending tasks for "report"
  futurtask toggle 1718461800000                # Complete or reopen a task
  futurtask stats                               # Statistics for the current profile
  futurtask remind --watch                      # Print reminders every 5 minutes
  futurtask profile create Work --icon 💼       # Create a profile and switch to it
  futurtask export --format yaml > tasks.yaml   # Export the current profile

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is TOML, read from FT_CONFIG or <db dir>/config.toml.
  Environment variables use the FT_ prefix (FT_DB_DIR, FT_LOG_LEVEL, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs overrides the command line arguments
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// App returns the application the commands run against
func (r *RootCommand) App() *App {
	return r.app
}

// Close releases the storage opened by the connector
func (r *RootCommand) Close() error {
	if r.closeFn == nil {
		return nil
	}
	err := r.closeFn()
	r.closeFn = nil
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides FT_CONFIG)")

	// Storage configuration
	flags.String("db-dir", "", "Database directory (overrides FT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides FT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides FT_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides FT_DB_WRITE_TIMEOUT)")

	// Cache configuration
	flags.String("cache-origin", "", "Application origin for the asset cache (overrides FT_CACHE_ORIGIN)")
	flags.String("cache-listen", "", "Listen address of the cache proxy (overrides FT_CACHE_LISTEN)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides FT_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text, json or logfmt (overrides FT_LOG_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides FT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides FT_APP_VERBOSE)")
}

// setup loads configuration, configures logging and connects the API
func (r *RootCommand) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader.WithFile(path)
	}

	cfg, err := loader.LoadWithOverrides(r.overridesFromFlags(cmd))
	if err != nil {
		return err
	}
	r.app.config = cfg

	logging.Configure(os.Stderr, logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Timestamps: cfg.Logging.Timestamps,
		Prefix:     "futurtask",
	})

	if r.app.businessAPI != nil {
		return nil
	}
	businessAPI, closeFn, err := r.connect(cfg)
	if err != nil {
		return err
	}
	r.app.businessAPI = businessAPI
	r.closeFn = closeFn
	return nil
}

// overridesFromFlags collects the flags the user actually set
func (r *RootCommand) overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	overrides.DBDir = changedString(cmd, "db-dir")
	overrides.DBFilename = changedString(cmd, "db-filename")
	overrides.CacheOrigin = changedString(cmd, "cache-origin")
	overrides.CacheListen = changedString(cmd, "cache-listen")
	overrides.LogLevel = changedString(cmd, "log-level")
	overrides.LogFormat = changedString(cmd, "log-format")

	if flags.Changed("db-query-timeout") {
		d, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &d
	}
	if flags.Changed("db-write-timeout") {
		d, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &d
	}
	if flags.Changed("app-timeout") {
		d, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &d
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// command returns a registered command for flag binding
func (r *RootCommand) command(name string) Command {
	command, _ := r.registry.Get(name)
	return command
}

// run executes a registered command under the application timeout
func (r *RootCommand) run(name string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return r.registry.Execute(ctx, name, args)
	}
}

// runUntilInterrupted executes a long-running command until SIGINT or SIGTERM
func (r *RootCommand) runUntilInterrupted(name string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return r.registry.Execute(ctx, name, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	add := r.command("add").(*AddCommand)
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long:  "Add a pending task to the current profile. Tags are the #words of --tags.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run("add"),
	}
	addCmd.Flags().StringVarP(&add.Options.Date, "date", "d", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&add.Options.Description, "desc", "", "Description")
	addCmd.Flags().StringVarP(&add.Options.Tags, "tags", "t", "", `Tags, e.g. "#work #q2"`)
	addCmd.Flags().StringVarP(&add.Options.Priority, "priority", "p", "", "Priority: low, medium, high or urgent")

	// Edit command
	edit := r.command("edit").(*EditCommand)
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long:  "Replace fields of a task. Fields without a flag keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit.Options = EditOptions{
				Title:       changedString(cmd, "title"),
				Description: changedString(cmd, "desc"),
				Tags:        changedString(cmd, "tags"),
				Date:        changedString(cmd, "date"),
				Priority:    changedString(cmd, "priority"),
				Status:      changedString(cmd, "status"),
			}
			return r.run("edit")(cmd, args)
		},
	}
	editCmd.Flags().String("title", "", "Title")
	editCmd.Flags().String("desc", "", "Description")
	editCmd.Flags().StringP("tags", "t", "", "Tags")
	editCmd.Flags().StringP("date", "d", "", "Due date (YYYY-MM-DD)")
	editCmd.Flags().StringP("priority", "p", "", "Priority")
	editCmd.Flags().String("status", "", "Status: pending or completed")

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>...",
		Short: "Complete or reopen tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run("toggle"),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run("delete"),
	}

	clearAll := r.command("clear").(*ClearCommand)
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task of the current profile",
		Args:  cobra.NoArgs,
		RunE:  r.run("clear"),
	}
	clearCmd.Flags().BoolVarP(&clearAll.Yes, "yes", "y", false, "Confirm deletion")

	// List command
	list := r.command("list").(*ListCommand)
	listCmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List tasks",
		Long: `List the tasks of the current profile, newest due date first.

The query is matched case-insensitively against titles, descriptions and tags.

Examples:
  futurtask list                        # All tasks
  futurtask list --year 2024 --month 06 # Tasks due in June 2024
  futurtask list --tag "#work" report   # #work tasks mentioning "report"`,
		RunE: r.run("list"),
	}
	listCmd.Flags().StringVar(&list.Filters.Year, "year", "", "Due year")
	listCmd.Flags().StringVar(&list.Filters.Month, "month", "", "Due month (01-12)")
	listCmd.Flags().StringVar(&list.Filters.Status, "status", "", "Status: pending or completed")
	listCmd.Flags().StringVar(&list.Filters.Tag, "tag", "", "Tag")
	listCmd.Flags().StringVarP(&list.Format, "format", "f", FormatText, "Output format: text, json or yaml")

	stats := r.command("stats").(*StatsCommand)
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics for the current profile",
		Args:  cobra.NoArgs,
		RunE:  r.run("stats"),
	}
	statsCmd.Flags().StringVarP(&stats.Format, "format", "f", FormatText, "Output format: text, json or yaml")

	remind := r.command("remind").(*RemindCommand)
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Show overdue and upcoming tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remind.Watch {
				return r.runUntilInterrupted("remind")(cmd, args)
			}
			return r.run("remind")(cmd, args)
		},
	}
	remindCmd.Flags().BoolVarP(&remind.Watch, "watch", "w", false, "Keep scanning until interrupted")
	remindCmd.Flags().DurationVar(&remind.Interval, "interval", 0, "Scan interval (overrides FT_REMIND_INTERVAL)")

	export := r.command("export").(*ExportCommand)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current profile's tasks",
		Args:  cobra.NoArgs,
		RunE:  r.run("export"),
	}
	exportCmd.Flags().StringVarP(&export.Format, "format", "f", FormatJSON, "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&export.Output, "output", "o", "", "Write to a file instead of stdout")

	themeCmd := &cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show or change the colour theme",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.run("theme"),
	}

	r.cmd.AddCommand(
		addCmd,
		editCmd,
		toggleCmd,
		deleteCmd,
		clearCmd,
		listCmd,
		statsCmd,
		remindCmd,
		exportCmd,
		themeCmd,
		r.profileCommand(),
		r.cacheCommand(),
	)
}

func (r *RootCommand) profileCommand() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE:  r.run("profile list"),
	}

	create := r.command("profile create").(*ProfileCreateCommand)
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile and switch to it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run("profile create"),
	}
	createCmd.Flags().StringVar(&create.Icon, "icon", "", "Icon")
	createCmd.Flags().StringVar(&create.Color, "color", "", "Colour (#rrggbb)")

	switchCmd := &cobra.Command{
		Use:   "switch <id>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("profile switch"),
	}

	del := r.command("profile delete").(*ProfileDeleteCommand)
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("profile delete"),
	}
	deleteCmd.Flags().BoolVarP(&del.Yes, "yes", "y", false, "Confirm deletion")

	profileCmd.AddCommand(listCmd, createCmd, switchCmd, deleteCmd)
	return profileCmd
}

func (r *RootCommand) cacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the offline asset cache",
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Download and cache the static assets",
		Args:  cobra.NoArgs,
		RunE:  r.run("cache install"),
	}

	activateCmd := &cobra.Command{
		Use:   "activate",
		Short: "Delete caches of other versions",
		Args:  cobra.NoArgs,
		RunE:  r.run("cache activate"),
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the cache version",
		Args:  cobra.NoArgs,
		RunE:  r.run("cache version"),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored caches and their entries",
		Args:  cobra.NoArgs,
		RunE:  r.run("cache list"),
	}

	serve := r.command("cache serve").(*CacheServeCommand)
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the application through the offline cache",
		Args:  cobra.NoArgs,
		RunE:  r.runUntilInterrupted("cache serve"),
	}
	serveCmd.Flags().StringVar(&serve.Addr, "addr", "", "Listen address (overrides FT_CACHE_LISTEN)")

	cacheCmd.AddCommand(installCmd, activateCmd, versionCmd, listCmd, serveCmd)
	return cacheCmd
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}
