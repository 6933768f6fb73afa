// Package main is the explorer command line.
//
// Usage:
//
//	explorer --mounts mounts.yaml ls /C
//	explorer cp /C/report.txt /D
//	explorer mv /C/photos /D
//	explorer rm /C/old.txt
//	explorer trash list
//	explorer trash restore rb_01J...
//
// Deletions and names are confirmed in the terminal; --yes accepts every
// confirmation and suggested name.
package main
