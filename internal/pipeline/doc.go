// Package pipeline holds the stages that run around the interpreter:
//   - Markdown bodies rendered to node trees via Goldmark
//   - source code highlighting via Chroma
//   - relative resource paths rewritten against the source directory
//   - stylesheets inlined into the finished document
//
// Every stage works on golang.org/x/net/html node trees, so its output can
// be spliced into the interpreter's document without another parse.
package pipeline
