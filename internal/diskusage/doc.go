// Package diskusage provides depth-1 disk usage listings for a directory.
//
// A Provider returns raw "<size>\t<path>" lines for a directory and its
// immediate children. Command runs the external du utility, Walker computes
// the same listing in-process using fastwalk for parallel traversal.
// ParseLines converts such lines into ordered size entries.
package diskusage
