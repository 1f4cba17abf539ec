package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/mholt/archives"
	"github.com/stretchr/testify/require"
)

func TestArchiveDatadir(t *testing.T) {
	datadir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(datadir, "db"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(datadir, "db", "sqlite.db"), []byte("rounds"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(datadir, "state.json"), []byte("{}"), 0600))

	ctx := context.Background()
	buf := &bytes.Buffer{}
	require.NoError(t, archiveDatadir(ctx, datadir, buf))

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	names := make([]string, 0)
	err := format.Extract(ctx, buf, func(_ context.Context, f archives.FileInfo) error {
		if !f.IsDir() {
			names = append(names, f.NameInArchive)
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(names)
	require.Equal(t, []string{"db/sqlite.db", "state.json"}, names)
}

func TestBackupName(t *testing.T) {
	ts := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)
	require.Equal(t, "lastclickd-backup-2024-05-01-13-04-05.tar.gz", backupName(ts))
}
