package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/entry"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/logging"
	"github.com/hpungsan/jot/internal/ops"
	"github.com/hpungsan/jot/internal/render"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(fs afero.Fs) *cli.App {
	e := &env{fs: fs}
	app := &cli.App{
		Name:    "jot",
		Usage:   "A small journal for the command line",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, EnvVars: []string{"JOT_DIR"}, Usage: "Jot home directory (default: ~/.jot)"},
			&cli.StringFlag{Name: "log-level", EnvVars: []string{"JOT_LOG_LEVEL"}, Value: logging.LevelNone, Usage: "Log level: none|error|info|debug"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
		},
		Before: e.setup,
		After: func(*cli.Context) error {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			initCmd(e),
			addCmd(e),
			removeCmd(e),
			viewCmd(e),
			editCmd(e),
			searchCmd(e),
			exportCmd(e),
			backupCmd(e),
			configCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// initCmd creates the init command.
func initCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create an empty journal",
		Action: func(c *cli.Context) error {
			output, err := ops.Init(e.store)
			if err != nil {
				return outputError(err)
			}
			if !output.Created {
				fmt.Fprintf(c.App.Writer, "Journal already exists at %s\n", output.Path)
				return nil
			}
			fmt.Fprintln(c.App.Writer, render.Success("Journal initialized at "+output.Path, e.color))
			return nil
		},
	}
}

// addCmd creates the add command.
func addCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Aliases:   []string{"new"},
		Usage:     "Add an entry; #words become tags (reads stdin when no content is given)",
		ArgsUsage: "<content>",
		Action: func(c *cli.Context) error {
			content := strings.Join(c.Args().Slice(), " ")
			if content == "" && !e.interactive {
				text, err := readAll(c.App.Reader)
				if err != nil {
					return outputError(errors.NewIO("read stdin", err))
				}
				content = text
			}

			output, err := ops.Add(e.store, e.cfg, ops.AddInput{Content: content})
			if err != nil {
				return outputError(err)
			}
			fmt.Fprintln(c.App.Writer, render.Success(fmt.Sprintf("Entry #%d added!", output.Entry.ID), e.color))
			return nil
		},
	}
}

// removeCmd creates the remove command.
func removeCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:    "remove",
		Aliases: []string{"delete"},
		Usage:   "Remove entries by id, id range or date range",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "id", Aliases: []string{"i"}, Usage: "Entry id"},
			&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Usage: "Inclusive id range, e.g. 2..4"},
			&cli.StringFlag{Name: "from", Usage: "Remove entries dated on or after YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "Remove entries dated on or before YYYY-MM-DD"},
		},
		Action: func(c *cli.Context) error {
			input := ops.RemoveInput{
				Range: c.String("range"),
				From:  c.String("from"),
				To:    c.String("to"),
			}
			if c.IsSet("id") {
				id := c.Int("id")
				input.ID = &id
			}

			output, err := ops.Remove(e.store, input)
			if output != nil && len(output.Removed) > 0 {
				fmt.Fprintln(c.App.Writer, render.Success(removedMessage(output.Removed), e.color))
			}
			if err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// viewCmd creates the view command.
func viewCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Aliases:   []string{"list"},
		Usage:     "Show one entry, the latest entry, or entries filtered by date and tags",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Only entries dated on or after YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "Only entries dated on or before YYYY-MM-DD"},
			&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "Comma-separated tags"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Require every tag instead of any"},
			&cli.BoolFlag{Name: "recent", Usage: "Show only the most recent entry"},
			&cli.BoolFlag{Name: "table", Usage: "One line per entry"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ViewInput{
				From:   c.String("from"),
				To:     c.String("to"),
				Tags:   parseTags(c.String("tags")),
				All:    c.Bool("all"),
				Recent: c.Bool("recent"),
			}
			if c.NArg() > 0 {
				id, err := parseID(c.Args().First())
				if err != nil {
					return outputError(err)
				}
				input.ID = &id
			}

			output, err := ops.View(e.store, input)
			if err != nil {
				return outputError(err)
			}

			switch {
			case output.Single:
				fmt.Fprintln(c.App.Writer, render.Detail(output.Entries[0]))
			case c.Bool("table"):
				fmt.Fprintln(c.App.Writer, render.Table(output.Entries))
			default:
				fmt.Fprintln(c.App.Writer, render.FormatAll(output.Entries, e.renderOptions("")))
			}
			return nil
		},
	}
}

// editCmd creates the edit command.
func editCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Aliases:   []string{"modify"},
		Usage:     "Change the body or tags of an entry (prompts when no flags are given)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "body", Aliases: []string{"b"}, Usage: "New body"},
			&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "New comma-separated tags (empty clears)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewEdit("entry id is required"))
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			input := ops.EditInput{ID: id}
			if c.IsSet("body") {
				body := c.String("body")
				input.Body = &body
			}
			if c.IsSet("tags") {
				input.Tags = nonNil(parseTags(c.String("tags")))
			}

			if input.Body == nil && input.Tags == nil {
				if !e.interactive {
					return outputError(errors.NewEdit("nothing to change (use --body or --tags)"))
				}
				if input, err = promptEdit(c, e, id); err != nil {
					return outputError(err)
				}
			}

			output, err := ops.Edit(e.store, input)
			if err != nil {
				return outputError(err)
			}
			if !output.Changed {
				fmt.Fprintln(c.App.Writer, "Nothing changed.")
				return nil
			}
			fmt.Fprintln(c.App.Writer, render.Success("Entry updated!", e.color))
			return nil
		},
	}
}

// promptEdit asks for new content and tags, showing the current values as
// defaults. An empty answer keeps the current value.
func promptEdit(c *cli.Context, e *env, id int) (ops.EditInput, error) {
	current, err := ops.View(e.store, ops.ViewInput{ID: &id})
	if err != nil {
		return ops.EditInput{}, errors.NewEdit(fmt.Sprintf("entry with ID %d not found", id))
	}
	cur := current.Entries[0]
	tags := entry.JoinTags(cur.Tags, " ")

	in := bufio.NewReader(c.App.Reader)
	w := c.App.Writer

	fmt.Fprintf(w, "Editing entry: %s\n", cur.Body)
	body, err := prompt(in, w, fmt.Sprintf("Enter new content [%s]: ", cur.Body))
	if err != nil {
		return ops.EditInput{}, err
	}
	rawTags, err := prompt(in, w, fmt.Sprintf("Enter new tags [%s]: ", tags))
	if err != nil {
		return ops.EditInput{}, err
	}

	input := ops.EditInput{ID: id}
	if body != "" {
		input.Body = &body
	}
	if rawTags != "" {
		input.Tags = parseTags(rawTags)
	}
	return input, nil
}

func prompt(in *bufio.Reader, w io.Writer, question string) (string, error) {
	fmt.Fprint(w, question)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.NewIO("read input", err)
	}
	return strings.TrimSpace(line), nil
}

// searchCmd creates the search command.
func searchCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"find"},
		Usage:     "Search entry bodies, optionally filtered by tags and dates",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "from", Usage: "Only entries dated on or after YYYY-MM-DD"},
			&cli.StringFlag{Name: "to", Usage: "Only entries dated on or before YYYY-MM-DD"},
			&cli.BoolFlag{Name: "fuzzy", Aliases: []string{"f"}, Usage: "Match query characters in order, not as a substring"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Require every tag instead of any"},
			&cli.BoolFlag{Name: "case-sensitive", Aliases: []string{"c"}, Usage: "Match case exactly"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Search(e.store, ops.SearchInput{
				Query:         strings.Join(c.Args().Slice(), " "),
				Tags:          parseTags(c.String("tags")),
				From:          c.String("from"),
				To:            c.String("to"),
				All:           c.Bool("all"),
				Fuzzy:         c.Bool("fuzzy"),
				CaseSensitive: c.Bool("case-sensitive"),
			})
			if err != nil {
				return outputError(err)
			}

			highlight := output.Term
			if c.Bool("fuzzy") {
				highlight = ""
			}
			fmt.Fprintln(c.App.Writer, render.FormatAll(output.Entries, e.renderOptions(highlight)))
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Aliases:   []string{"dump"},
		Usage:     "Export the journal to the export directory",
		ArgsUsage: "<json|csv|plain|toml|yaml|html>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "open", Aliases: []string{"o"}, Usage: "Open the exported file"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewExport("format is required"))
			}

			output, err := ops.Export(e.store, e.cfg, ops.ExportInput{
				Format:  c.Args().First(),
				BaseDir: e.baseDir,
				Open:    c.Bool("open"),
			})
			if output != nil {
				msg := fmt.Sprintf("Journal exported to %s (%d %s, %s)",
					output.Path, output.Count, plural(output.Count, "entry", "entries"), output.Size)
				fmt.Fprintln(c.App.Writer, render.Success(msg, e.color))
			}
			if err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// backupCmd creates the backup command.
func backupCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "backup",
		Usage:     "Create a backup of the journal or restore it",
		ArgsUsage: "[create|c|restore|r]",
		Action: func(c *cli.Context) error {
			output, err := ops.Backup(e.store, ops.BackupInput{Action: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			msg := "Backup created at: " + output.Path
			if output.Action == ops.BackupRestore {
				msg = "Backup restored from: " + output.Path
			}
			fmt.Fprintln(c.App.Writer, render.Success(msg, e.color))
			return nil
		},
	}
}

// configCmd creates the config command.
func configCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or change settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "show-time", Usage: "Show HH:MM next to entry dates"},
			&cli.BoolFlag{Name: "body-tags", Usage: "Keep #tags in stored entry bodies"},
			&cli.StringFlag{Name: "export-dir", Usage: "Export directory (relative to the jot directory)"},
			&cli.BoolFlag{Name: "rotate-backup", Usage: "Keep a .bak copy of the journal on every save"},
			&cli.StringFlag{Name: "color", Usage: "Colored output: auto|always|never"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ConfigInput{Path: config.Path(e.baseDir)}
			if c.IsSet("show-time") {
				input.ShowTime = boolPtr(c.Bool("show-time"))
			}
			if c.IsSet("body-tags") {
				input.BodyTags = boolPtr(c.Bool("body-tags"))
			}
			if c.IsSet("rotate-backup") {
				input.RotateBackup = boolPtr(c.Bool("rotate-backup"))
			}
			if c.IsSet("export-dir") {
				dir := c.String("export-dir")
				input.ExportDir = &dir
			}
			if c.IsSet("color") {
				color := c.String("color")
				input.Color = &color
			}

			output, err := ops.Configure(e.fs, input)
			if err != nil {
				return outputError(err)
			}

			data, err := toml.Marshal(*output.Config)
			if err != nil {
				return outputError(errors.NewSerialization("config", err))
			}
			fmt.Fprint(c.App.Writer, string(data))
			if output.Changed {
				fmt.Fprintln(c.App.Writer, render.Success("Config saved to "+output.Path, e.color))
			}
			return nil
		},
	}
}

// Helper functions

// outputError formats err for the CLI: a one-line summary, plus a hint line
// for error classes that carry one.
func outputError(err error) error {
	jErr, ok := errors.As(err)
	if !ok {
		return cli.Exit("error: "+err.Error(), 1)
	}
	msg := fmt.Sprintf("error: [%s] %s", jErr.Code, jErr.Message)
	if jErr.Hint != "" {
		msg += "\nhint: " + jErr.Hint
	}
	return cli.Exit(msg, 1)
}

// parseTags splits a comma- or space-separated string into tags.
func parseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid entry id %q", s))
	}
	return id, nil
}

// readAll reads all content from r.
func readAll(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func removedMessage(ids []int) string {
	if len(ids) == 1 {
		return fmt.Sprintf("Entry #%d removed", ids[0])
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("Removed %d entries (%s)", len(ids), strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolPtr(b bool) *bool {
	return &b
}
