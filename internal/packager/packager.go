// Where: cli/internal/packager/packager.go
// What: Deployment archive creation for compiled binaries.
// Why: Wrap one native executable into the fixed zip layout the provider expects.
package packager

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"github.com/moby/sys/atomicwriter"
	"github.com/poruru/sls-dart/cli/internal/meta"
)

const (
	// EntryMode is the permission mask stored on the bootstrap entry.
	EntryMode fs.FileMode = 0o755
	// ArchiveMode is the permission of the archive file itself.
	ArchiveMode fs.FileMode = 0o644
)

// Pack writes an archive at archivePath holding a single executable entry
// named bootstrap with the full contents of binaryPath. The archive replaces
// any previous file atomically, so readers never observe a partial write.
func Pack(binaryPath, archivePath string) error {
	payload, err := os.ReadFile(binaryPath)
	if err != nil {
		return fmt.Errorf("read binary: %w", err)
	}
	archive, err := Archive(payload)
	if err != nil {
		return err
	}
	if err := atomicwriter.WriteFile(archivePath, archive, ArchiveMode); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// Archive builds the zip bytes for payload. Entry timestamps are left at the
// zero value so identical payloads yield identical archives.
func Archive(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	header := &zip.FileHeader{
		Name:   meta.BinaryName,
		Method: zip.Deflate,
	}
	header.SetMode(EntryMode)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return nil, fmt.Errorf("write entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
