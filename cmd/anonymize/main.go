// Command anonymize reads text from stdin, anonymizes it with the full
// built-in detector set, and prints the anonymized text followed by its
// pretty-printed JSON audit report.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cybergodev/anonymize"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "anonymize: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	input, err := io.ReadAll(in)
	if err != nil {
		return &anonymize.IOError{Err: err}
	}

	az, err := anonymize.New(anonymize.DefaultConfig())
	if err != nil {
		return err
	}
	defer az.Close()

	result, err := az.Anonymize(string(input))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "--- ANONYMIZED TEXT ---")
	fmt.Fprintln(out, result.Text)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "--- AUDIT REPORT (JSON) ---")

	report, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(report))

	return nil
}
