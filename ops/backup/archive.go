package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mholt/archives"
)

// backupName is the object key of a backup taken at t.
func backupName(t time.Time) string {
	return fmt.Sprintf("lastclickd-backup-%s.tar.gz", t.UTC().Format("2006-01-02-15-04-05"))
}

// archiveDatadir writes the content of datadir to w as a gzipped tarball.
// The daemon should be stopped while the store files are read.
func archiveDatadir(ctx context.Context, datadir string, w io.Writer) error {
	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		datadir: "",
	})
	if err != nil {
		return fmt.Errorf("failed to prepare files for archiving: %w", err)
	}

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	if err := format.Archive(ctx, w, files); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}
