/*
Package accumulator implements batch proof verification for a hash
based accumulator: a forest of perfect merkle trees, one tree per set
bit of the leaf count.

The forest is numbered from the bottom left in row-major order, with
every row padded out to a power of two.  A forest with 5 leaves:

	                12
	        |-------\
	        08      09
	        |---\   |---\
	        00  01  02  03  04

Row 0 is padded to 8 slots, row 1 to 4, and so on; 04 has no sibling
on its row so it is a root all by itself.  Positions 05-07, 10, 11 and
13 exist in the numbering but hold nothing.

The verification side is ComputeRoots: given the positions being
proven, their claimed hashes, and the sibling hashes the prover
supplied, it climbs the forest row by row and returns the roots it
arrives at.  Whoever holds the committed roots then compares; the
computation itself has no opinion about what the roots should be.

Forest is the full copy of the accumulator that the proof-serving side
keeps.  It can produce batch proofs (ProveBatch) with the siblings in
exactly the order ComputeRoots consumes them.
*/
package accumulator
