package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/arnodel/json2csv"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom of main).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
		}
	}()

	// Parse the command line arguments
	var keySeparator string
	var arrayFormat string
	var arrayStart string
	var arrayEnd string
	var keepEmptyArrays bool
	var keepEmptyObjects bool
	var delimiter string
	var useCRLF bool

	flag.Usage = printUsage

	flag.StringVar(&keySeparator, "sep", ".", "string joining an object key to its parent key")
	flag.StringVar(&arrayFormat, "array", "plain", "array index formatting: plain, surrounded")
	flag.StringVar(&arrayStart, "array-start", "", "string written before an array index (only with -array surrounded)")
	flag.StringVar(&arrayEnd, "array-end", "", "string written after an array index (only with -array surrounded)")
	flag.BoolVar(&keepEmptyArrays, "keep-empty-arrays", false, "give empty arrays a column of their own")
	flag.BoolVar(&keepEmptyObjects, "keep-empty-objects", false, "give empty objects a column of their own")
	flag.StringVar(&delimiter, "delimiter", ",", "CSV field delimiter (a single character)")
	flag.BoolVar(&useCRLF, "crlf", false, "terminate CSV lines with \\r\\n")

	flag.Parse()

	if flag.NArg() > 0 {
		fatalError("unexpected argument %q. Input is read from stdin: json2csv [options] < input.json", flag.Arg(0))
	}

	flattener := json2csv.NewFlattener()
	flattener.KeySeparator = keySeparator
	flattener.PreserveEmptyArrays = keepEmptyArrays
	flattener.PreserveEmptyObjects = keepEmptyObjects

	switch arrayFormat {
	case "plain":
		if arrayStart != "" || arrayEnd != "" {
			fatalError("-array-start and -array-end require -array surrounded")
		}
	case "surrounded":
		flattener.ArrayFormatting = json2csv.ArrayFormattingSurrounded
		flattener.ArrayStart = arrayStart
		flattener.ArrayEnd = arrayEnd
	default:
		fatalError("invalid -array value: %q (use plain or surrounded)", arrayFormat)
	}

	comma := []rune(delimiter)
	if len(comma) != 1 {
		fatalError("invalid -delimiter value: %q (must be a single character)", delimiter)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "reading JSON documents from the terminal - pipe input in or finish with Ctrl-D")
	}

	// The converter buffers all its output until the headers are known, so
	// there is no point flushing before the end.
	out := bufio.NewWriter(os.Stdout)

	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = comma[0]
	csvWriter.UseCRLF = useCRLF

	err := json2csv.NewConverter(flattener).ConvertFromReader(os.Stdin, csvWriter)
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return
		}
		fatalError("error: %s", err)
	}
}

// Some color ANSI codes
var (
	reset     = "\033[0m"
	brightRed = "\033[31;1m"
)

func fatalError(msg string, args ...interface{}) {
	var stderr io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		stderr = colorable.NewColorableStderr()
		msg = brightRed + msg + reset
	}
	fmt.Fprintf(stderr, msg+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `json2csv - convert JSON objects to CSV rows

USAGE:
  json2csv [options] < input.json > output.csv

DESCRIPTION:
  json2csv reads consecutive JSON objects from stdin (a single object, JSON
  Lines, or objects separated by any whitespace) and writes one CSV row per
  object to stdout.  Nested values are flattened into compound column names,
  e.g. {"a": {"b": [1]}} produces the column "a.b.0".

  The headers are the union of all the flattened keys in the input, sorted
  alphabetically.  A row missing a key gets an empty field.  If two
  different paths flatten to the same key the conversion fails and nothing
  is written.

KEY OPTIONS:
  -sep STRING        Separator between key segments (default: .)
  -array FORMAT      How array indices are spelled (default: plain)
                     plain      - joined with -sep:       a.0
                     surrounded - wrapped in delimiters:  a[0]
  -array-start S     Opening index delimiter, with -array surrounded
  -array-end S       Closing index delimiter, with -array surrounded

EMPTY CONTAINER OPTIONS:
  -keep-empty-arrays   Keep [] as a column with an empty value
  -keep-empty-objects  Keep {} as a column with an empty value
                       By default empty containers contribute no column.

CSV OPTIONS:
  -delimiter CHAR    CSV field delimiter (default: ,)
  -crlf              Terminate lines with \r\n instead of \n

EXAMPLES:
  # Basic conversion
  json2csv < events.json

  # Bracket-style array indices: a[0] instead of a.0
  json2csv -array surrounded -array-start '[' -array-end ']' < events.json

  # Semicolon-separated output
  json2csv -delimiter ';' < events.json
`)
}
