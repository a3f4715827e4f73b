// Package loader reads a single log file into memory, transparently decompressing it
// first if its name ends in ".gz".
package loader

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/samber/oops"
)

// Load reads path in full and returns its decompressed contents. Files named *.gz are
// piped through a gzip reader; everything else is read as-is.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.Wrapf(err, "open log file %q", path)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".gz") {
		buf, err := io.ReadAll(f)
		if err != nil {
			return nil, oops.Wrapf(err, "read log file %q", path)
		}
		return buf, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, oops.Wrapf(err, "open gzip stream %q", path)
	}
	defer gz.Close()

	buf, err := io.ReadAll(gz)
	if err != nil {
		return nil, oops.Wrapf(err, "decompress log file %q", path)
	}
	return buf, nil
}
