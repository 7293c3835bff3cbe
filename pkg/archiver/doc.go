// Package archiver writes the SDK tarball and reads it back.
//
// Compress runs `tar czf` from the staging root so that every member of the
// archive sits under a single top-level directory named after the version.
// List reads a gzip-compressed tarball in process and is used to verify
// what a build produced.
package archiver
