// Package foldersize computes the size of every immediate child of a directory.
//
// Files report their own size, directories the sum of all regular files
// beneath them. Subtrees are walked sequentially with fastwalk, symlinks are
// never followed and walk errors are logged instead of aborting the scan.
package foldersize
