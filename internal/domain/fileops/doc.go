/*
Package fileops is the file operations engine behind an explorer window.

It mediates every mutation of the namespace (cut, copy, paste, delete,
rename and create) on top of a vfs.FileSystem it does not own, and adds
what the raw filesystem primitives lack: no silent overwrite, reversible
delete through the recycle bin, cross-device move fallback and
deterministic collision naming.

Each window owns one Engine with its own clipboard and history. The
recycle bin manager and the filesystem are shared.

# Batches

Paste and delete process items one at a time and stop at the first error.
Items handled before the error stay applied; the returned results list
them. The context is checked between items.

# Dialogs

Confirmation and name entry go through a Prompter, so the same engine runs
behind a terminal prompt, an HTTP request body or a test double.
*/
package fileops
