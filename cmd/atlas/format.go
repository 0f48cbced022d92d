package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// outputIndex writes the index in the requested format.
func outputIndex(w io.Writer, format string, idx CLIIndex) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(idx)
	}
	formatIndexText(w, idx)
	return nil
}

func formatIndexText(w io.Writer, idx CLIIndex) {
	for _, r := range idx.Roots {
		kind := "directory"
		if r.IsPackage {
			kind = "package"
		}
		fmt.Fprintf(w, "Root: %s (%s) %s\n", r.Name, kind, r.Path)
	}
	fmt.Fprintln(w)

	if len(idx.Modules) > 0 {
		fmt.Fprintln(w, "Modules:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tPATH")
		for _, m := range idx.Modules {
			fmt.Fprintf(tw, "  %s\t%s\n", m.FullName, m.Path)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if len(idx.Classes) > 0 {
		fmt.Fprintln(w, "Classes:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tSIGNATURE\tMODULE")
		for _, c := range idx.Classes {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.FullName, c.Signature, c.Module)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if len(idx.Callables) > 0 {
		fmt.Fprintln(w, "Callables:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tSIGNATURE\tMODULE")
		for _, c := range idx.Callables {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.FullName, c.Signature, c.Module)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if len(idx.Failures) > 0 {
		fmt.Fprintln(w, "Skipped:")
		for _, f := range idx.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.Path, f.Reason)
		}
	}
}
