// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	_ "embed"
	"flag"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/vtablec/vtablec/dispatch"
	"github.com/vtablec/vtablec/driver"
	"github.com/vtablec/vtablec/report"
)

//go:embed doc.go
var doc string

var (
	specializeFlag = flag.Bool("specialize", false, "assume every call site has been whole-program specialized")
	reportFlag     = flag.String("report", "", "write a build report to this file (.html or .md by extension)")
	dirFlag        = flag.String("C", ".", "directory to load packages and go.mod from")
	traceFlag      = flag.String("trace", "", "serve an x/net/trace event log at this address (e.g. localhost:6060) and wait before exiting")
)

func usage() {
	_, after, _ := strings.Cut(doc, "/*\n")
	doc, _, _ := strings.Cut(after, "*/")
	io.WriteString(flag.CommandLine.Output(), doc+"\nFlags:\n\n")
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("vtablec: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	if len(flag.Args()) == 0 {
		usage()
		os.Exit(2)
	}

	var tracer *dispatch.Tracer
	if *traceFlag != "" {
		ln, err := net.Listen("tcp", *traceFlag)
		if err != nil {
			log.Fatalf("trace: %v", err)
		}
		go http.Serve(ln, nil)
		tracer = dispatch.NewTracer("vtablec.Build", strings.Join(flag.Args(), " "))
		defer tracer.Finish()
		log.Printf("tracing at http://%s/debug/requests", ln.Addr())
	}

	var dt *dispatch.DispatchTable
	ru, err := driver.MeasureBuild(func() error {
		prog, err := driver.LoadProgram(*dirFlag, flag.Args()...)
		if err != nil {
			return err
		}
		dt, err = prog.Build(dispatch.BuildOptions{WholeProgramSpecialization: *specializeFlag, Tracer: tracer})
		if err != nil {
			return err
		}
		_, err = prog.Emit(dt)
		return err
	})
	if err != nil {
		if tracer != nil {
			tracer.Errorf("build failed: %v", err)
		}
		log.Fatalf("%v", err)
	}

	stats, rows := report.Collect(dt)
	log.Printf("built table of length %d (%d/%d selectors participating, %.1f%% dense) in %.2fs, peak RSS %d bytes",
		stats.TableLength, stats.ParticipatingCount, stats.SelectorCount, stats.Density()*100, ru.WallSeconds, ru.PeakRSSBytes)

	if *reportFlag != "" {
		f, err := os.Create(*reportFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer f.Close()

		if strings.HasSuffix(*reportFlag, ".html") {
			err = report.WriteHTML(f, stats, rows)
		} else {
			err = report.WriteMarkdown(f, stats, rows)
		}
		if err != nil {
			log.Fatalf("writing report: %v", err)
		}
	}

	if tracer != nil {
		log.Print("press Enter to stop tracing and exit")
		bufio.NewReader(os.Stdin).ReadString('\n')
	}
}
