// pdfgen - minimal text PDF writer
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pdfgen/internal/config"
	"github.com/dgallion1/pdfgen/internal/fixtures"
	"github.com/dgallion1/pdfgen/internal/inspect"
	"github.com/dgallion1/pdfgen/internal/layout"
	"github.com/dgallion1/pdfgen/internal/parser"
	"github.com/dgallion1/pdfgen/internal/pdfdoc"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pdfgen <command> [options]\n")
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  fixtures [-out dir]                    write test_original.pdf and test_modified.pdf\n")
	fmt.Fprintf(os.Stderr, "  render [options] -o out.pdf <input>    render a .txt, .md, .csv, .html or .docx file\n")
	fmt.Fprintf(os.Stderr, "  inspect [-text] <file.pdf>             check xref, stream lengths and trailer\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "fixtures":
		err = runFixtures(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFixtures(args []string) error {
	fs := flag.NewFlagSet("fixtures", flag.ExitOnError)
	out := fs.String("out", ".", "output directory")
	fs.Parse(args)

	paths, err := fixtures.Write(*out)
	for _, p := range paths {
		fmt.Printf("Created %s\n", p)
	}
	return err
}

func runRender(args []string) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("render", flag.ExitOnError)
	out := fs.String("o", "", "output PDF file (default: input name with .pdf)")
	lines := fs.Int("lines", cfg.LinesPerPage, "lines per page")
	font := fs.String("font", cfg.FontName, "standard Type1 base font")
	wrap := fs.Int("wrap", cfg.WrapColumns, "wrap paragraphs at this many characters (0 disables)")
	title := fs.String("title", "", "document title (default: from input)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("render takes exactly one input file")
	}
	input := fs.Arg(0)

	p, err := parser.ForFile(input)
	if err != nil {
		return err
	}
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	text, err := p.Parse(f, filepath.Base(input))
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}
	if *title != "" {
		text.Title = *title
	}

	cfg.FontName = *font
	opts := layout.Options{
		WrapColumns:  *wrap,
		LinesPerPage: *lines,
		Font:         cfg.Font(),
		Layout:       cfg.Layout(),
	}
	doc := layout.Build(text, opts)
	data, err := pdfdoc.Assemble(doc)
	if err != nil {
		return err
	}

	if *out == "" {
		*out = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d pages, %d bytes)\n", *out, len(doc.Pages), len(data))
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	showText := fs.Bool("text", false, "print the extracted lines of each page")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("inspect takes exactly one PDF file")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	r := inspect.Check(data)
	fmt.Printf("Objects:    %d\n", r.Objects)
	fmt.Printf("Pages:      %d\n", r.Pages)
	fmt.Printf("Xref:       %d\n", r.XrefOffset)
	if title, err := inspect.Title(data); err == nil && title != "" {
		fmt.Printf("Title:      %s\n", title)
	}

	if *showText {
		pages, err := inspect.ExtractLines(data)
		if err != nil {
			return err
		}
		for i, lines := range pages {
			fmt.Printf("\n--- Page %d ---\n", i+1)
			for _, l := range lines {
				fmt.Println(l)
			}
		}
	}

	if !r.OK() {
		for _, p := range r.Problems {
			fmt.Printf("Problem:    %s\n", p)
		}
		return r.Err()
	}
	fmt.Println("Structure:  ok")
	return nil
}
