// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/testtally/tally"
	"github.com/testtally/tally/report"
)

const (
	usageText = `
tally - test report aggregator

tally reads pytest style JUnit XML result documents, aggregates summary and
category statistics, and renders a self-contained report.

VERSION: %s
GIT TAG: %s
BUILD DATE: %s

USAGE:

	# Convert a result document to HTML next to the input
	$ tally test_results.xml

	# Merge several result documents into one JSON report
	$ tally -fmt=json -out=combined_report.json api_results.xml audio_results.xml

	# Render a summary to the terminal
	$ tally -fmt=text test_results.xml

	# Generate the report and open it in the system viewer
	$ tally -open test_results.xml

`
)

var (
	// report format
	flagFormat = flag.String("fmt", "html", "Set report format. Valid options are: "+strings.Join(report.Formats, ", "))

	// output file
	flagOutput = flag.String("out", "", "Set report file. The default is derived from the first input path")

	// open the generated report
	flagOpen = flag.Bool("open", false, "Open the generated report in the system viewer (best effort)")

	// config file
	flagConfig = flag.String("conf", "", "Path to optional config file")

	// quiet
	flagQuiet = flag.Bool("quiet", false, "Only show output when errors occur")

	// slowest-tests list size
	flagSlowest = flag.Int("slowest", 0, "Number of entries in the slowest tests list (0 keeps the configured default)")

	// disable color in text output
	flagNoColor = flag.Bool("no-color", false, "Disable color in text output")

	// log to file or stderr
	flagLogfile = flag.String("log", "", "Log messages to file rather than stderr")

	// print version and quit
	flagVersion = flag.Bool("version", false, "Print version and quit")

	logger *log.Logger
)

func usage() {
	usageText := fmt.Sprintf(usageText, Version, GitTag, BuildDate)
	fmt.Fprintln(os.Stderr, usageText)
	fmt.Fprint(os.Stderr, "OPTIONS:\n\n")
	flag.PrintDefaults()
	fmt.Fprint(os.Stderr, "\n")
}

func loadConfig(configFile string) (tally.Config, error) {
	config := tally.NewConfig()
	if configFile != "" {
		file, err := os.Open(configFile)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		if _, err := config.ReadFrom(file); err != nil {
			return nil, err
		}
	}
	if *flagSlowest > 0 {
		config.Set(tally.SlowestCount, *flagSlowest)
	}
	return config, nil
}

// resolveOutputPath derives the report location when -out is not given: the
// first input path with its extension swapped for a format specific suffix.
// Text reports without an explicit output go to stdout, signalled by an
// empty path.
func resolveOutputPath(output, format string, inputs []string) string {
	if output != "" {
		return output
	}
	if format == "text" {
		return ""
	}
	first := inputs[0]
	base := strings.TrimSuffix(first, filepath.Ext(first))
	return base + "_report." + report.Extension(format)
}

// saveReport renders into a temporary file next to the destination and
// moves it into place, so a failed render never leaves partial output. An
// empty filename renders to stdout instead.
func saveReport(filename, format string, enableColor bool, data *tally.ReportInfo) error {
	if filename == "" {
		return report.CreateReport(os.Stdout, format, enableColor, data)
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return &tally.RenderError{Path: filename, Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".tally-*")
	if err != nil {
		return &tally.RenderError{Path: filename, Err: err}
	}
	defer os.Remove(tmp.Name())

	err = report.CreateReport(tmp, format, enableColor, data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &tally.RenderError{Path: filename, Err: err}
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return &tally.RenderError{Path: filename, Err: err}
	}
	return nil
}

// failf prints a one-line error and exits. Fatal messages bypass the logger
// so they stay visible under -quiet.
func failf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "[tally] "+format+"\n", v...)
	os.Exit(1)
}

func main() {
	// Setup usage description
	flag.Usage = usage

	// Parse command line arguments
	flag.Parse()

	if *flagVersion {
		prepareVersionInfo()
		fmt.Printf("Version: %s\nGit tag: %s\nBuild date: %s\n", Version, GitTag, BuildDate)
		os.Exit(0)
	}

	// Ensure at least one input document was specified
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "\nError: FILE [FILE...] expected\n")
		flag.Usage()
		os.Exit(1)
	}

	// Setup logging
	logWriter := os.Stderr
	if *flagLogfile != "" {
		var e error
		logWriter, e = os.Create(*flagLogfile)
		if e != nil {
			flag.Usage()
			log.Fatal(e)
		}
	}

	if *flagQuiet {
		logger = log.New(io.Discard, "", 0)
	} else {
		logger = log.New(logWriter, "[tally] ", log.LstdFlags)
	}

	// Load config
	config, err := loadConfig(*flagConfig)
	if err != nil {
		failf("%v", err)
	}

	// Aggregate the input documents
	aggregator := tally.NewAggregator(config, logger)
	if err := aggregator.Process(flag.Args()...); err != nil {
		failf("%v", err)
	}

	prepareVersionInfo()
	data := aggregator.Report().WithVersion(Version)

	// Create output report
	outputPath := resolveOutputPath(*flagOutput, *flagFormat, flag.Args())
	if err := saveReport(outputPath, *flagFormat, !*flagNoColor, data); err != nil {
		failf("%v", err)
	}

	if outputPath != "" {
		logger.Printf("report written to %s", outputPath)
		if *flagOpen {
			if err := openReport(outputPath); err != nil {
				logger.Printf("unable to open %s: %v", outputPath, err)
			}
		}
	}

	// Finalize logging
	logWriter.Close()
}
