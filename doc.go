// Package tex2html converts LaTeX documents to standalone HTML pages.
//
// The input is the event stream of a LaTeX tokenizer: text, macro names,
// their resolved arguments, environment boundaries and paragraph breaks.
// The converter executes the macros the way TeX would (counters, lengths,
// sectioning, boxes, lists, pictures, cross references) and renders the
// result as an HTML5 document styled after the document class.
//
// # Quick Start
//
//	data, err := os.ReadFile("paper.events.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	events, err := tex2html.DecodeEvents(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv, err := tex2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.Convert(ctx, tex2html.Input{Events: events})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("paper.html", result.HTML, 0644)
//
// Recoverable problems, such as an undefined \ref or a package that could
// not be loaded, do not fail the conversion. They are returned in
// Result.Warnings. Fatal problems are returned as a *LocatedError carrying
// the source position when the stream provides one.
//
// # Conversion Pipeline
//
//  1. Macro interpretation into a node tree (document class, packages)
//  2. Page assembly with the geometry of the class as CSS variables
//  3. Relative path rewriting against Input.SourceDir
//  4. Stylesheet inlining (class style, user styles, package styles)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := tex2html.NewConverter(
//	    tex2html.WithDocumentClass("book", "12pt"),
//	    tex2html.WithPrecision(2),
//	    tex2html.WithLanguage("de"),
//	    tex2html.WithPackages("xcolor", "graphicx"),
//	    tex2html.WithStyles("custom.css"),
//	)
//
// # Packages
//
// \usepackage loads extensions by name. Built in are xcolor, color,
// graphicx, hyperref, multicol, echo, latexsym, gensymb, stix, markdown
// and minted. WithExtensions adds more, and WithExtensionResolver looks up
// names that are not registered.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. ConverterPool bounds how many
// conversions run at once:
//
//	pool := tex2html.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package tex2html
