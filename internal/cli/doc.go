// Package cli implements the explorer command line: the file operations of
// the explorer engine over the configured mount table, with terminal
// dialogs for confirmations and names.
//
// Every invocation is its own window. The clipboard does not outlive a
// command, so cp and mv put their sources on the clipboard and paste them
// in one go.
package cli
