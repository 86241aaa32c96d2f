// 19 Mar 2026

/*
Randrep writes a made-up clonotype count file. The rows have the same
shape as the real pre-aggregated files, an integer sharing tag, V and
J gene names and a CDR3 amino acid sequence. It is for exercising the
entropy tool and making inputs of any size for benchmarking. The
output is deterministic for a given seed.

Usage:

	randrep [flags] [outfile]

Given no output file, it writes to standard output.
*/
package main
