/*
Package recycle implements the recycle bin.

Recycled objects live directly under the recycle root, each under an opaque
id, so two files with the same name deleted from different folders never
collide. The ledger file next to them is the only record of original
locations:

	/$Recycle.Bin/
	  metadata.json       {"items":[{"id","originalPath","name","deletedAt"}]}
	  rb_01J9.../         the recycled object

# Ordering

A recycle moves the object first and writes the ledger second. If the
ledger write fails the move is undone. A crash between the two steps leaves
an object with no ledger row; Init logs such orphans and prunes ledger rows
whose object has gone missing. Restore runs the same two steps in reverse
order of effect: move back, then drop the row.

# Concurrency

One Manager serves every explorer window on a filesystem. A mutex
serialises each ledger read-modify-write.
*/
package recycle
