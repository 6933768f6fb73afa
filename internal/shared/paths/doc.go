// Package paths provides the path algebra used by the explorer.
//
// Every path handled by the engine is an absolute, "/"-separated string in
// normalized form: no trailing slash except for the root, no empty segments,
// no "." or ".." components. All functions here are total: malformed input
// (including the empty string) normalizes to the root instead of failing.
//
// # Layout
//
//	/                   (root, displayed as "This PC")
//	  ├── Local Disk/   (drives: direct children of the root)
//	  ├── ...
//	  └── $Recycle.Bin/ (reserved recycle namespace)
//	        ├── metadata.json
//	        └── <id>/    (one opaque entry per recycled item)
//
// # Usage
//
//	p := paths.Join("/docs", "a.txt")   // /docs/a.txt
//	paths.Parent(p)                     // /docs
//	paths.DisplayName("/", "This PC")   // This PC
//	paths.IsDrive("/docs")              // true
package paths
