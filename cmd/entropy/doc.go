// 19 Mar 2026

/*
Entropy reads pre-aggregated clonotype count files and calculates the
normalised Shannon entropy of residue usage at each interior CDR3
position, separately for shared and unshared clonotypes.

A count row is whitespace-delimited. The first field is an integer
sharing tag, the number of subjects the clonotype was seen in, and the
fourth field is the CDR3 amino acid sequence. Rows with too few fields
or a non-numeric tag are skipped. A tag of 1 counts as unshared, a tag
from 6 to 10 counts as shared and everything else is dropped. All of
these numbers can be moved with flags, since the sharing convention
changes between datasets.

Sequences are bucketed by length, 7 to 14 by default. Before the
calculation, the shared and unshared buckets at each length are cut
down to a common size by random sampling, since entropy estimates from
unequal sample sizes do not compare fairly. The sampling is seeded, so
a run can be repeated exactly.

Entropy at a position is -sum p ln p over the observed residues,
divided by ln of the number of distinct residues seen, so it runs from
0 to 1 whatever the alphabet. Three residues at each end of every
sequence are conserved junction and stay out of the calculation.

The output is a csv file for plotting with some other program. It has
a header line which programs like excel like. R's read.csv() has an
option to tell it there is a header line.

Usage:

	entropy [flags] [countfile...]

The flags are:

	-d label
		Dataset label written to every output row.
	-o file
		Output csv file, instead of standard output.
	-p file
		Also write a quick png plot of entropy against position.
	-s seed
		Seed for the balancing sampler. Same seed, same table.
	-j n
		Junction residues trimmed from each end, normally 3.
	-l min, -m max
		Closed range of accepted sequence lengths, normally 7 to 14.
	-f n
		Field of a count row holding the sequence, counting from 0.
	-u tag, -a lo, -b hi
		The sharing thresholds. Tag u is unshared, tags lo to hi are
		shared.
	-n
		Do not balance group sizes. The table then reflects the raw
		pools.
	-t
		Print out timing information.
*/
package main
