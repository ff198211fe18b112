package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/cinedb/pkg/cinema"
	"github.com/ssargent/cinedb/pkg/serial"
)

func newCodecCmd(app *cli) *cobra.Command {
	codecCmd := &cobra.Command{
		Use:   "codec",
		Short: "Inspect flat field strings",
		Long: `Inspect flat field strings without touching the store.

A record is written as name#value pairs joined by ~. Nested records are
wrapped in { and }, list elements are joined by & and a missing value is
written as ` + "`null`" + `. Pass - to read the string from stdin.`,
		Annotations: map[string]string{skipStore: "true"},
	}

	codecCmd.AddCommand(
		&cobra.Command{
			Use:         "parse <text>",
			Short:       "Split a flat string into its top-level fields",
			Args:        cobra.ExactArgs(1),
			Annotations: map[string]string{skipStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := readText(cmd, args[0])
				if err != nil {
					return err
				}
				fields, err := serial.Parse(text)
				if err != nil {
					return err
				}
				if fields == nil {
					fmt.Fprintln(cmd.OutOrStdout(), serial.Null)
					return nil
				}
				names := make([]string, 0, len(fields))
				for name := range fields {
					names = append(names, name)
				}
				sort.Strings(names)
				return app.printer(cmd.OutOrStdout()).fields(names, fields)
			},
		},
		&cobra.Command{
			Use:         "decode <type> <text>",
			Short:       "Decode a flat string as a record and print it as JSON",
			Args:        cobra.ExactArgs(2),
			Annotations: map[string]string{skipStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := readText(cmd, args[1])
				if err != nil {
					return err
				}
				rec, err := cinema.Registry.DecodeFields(args[0], text)
				if err != nil {
					return err
				}
				return (&printer{w: cmd.OutOrStdout(), format: "json"}).json(rec)
			},
		},
		&cobra.Command{
			Use:         "types",
			Short:       "List the record types decode accepts",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipStore: "true"},
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, tag := range cinema.Registry.Tags() {
					fmt.Fprintln(cmd.OutOrStdout(), tag)
				}
				return nil
			},
		},
	)
	return codecCmd
}

func readText(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
