package environment

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// WithDotenv layers the entries of a dotenv file underneath lookup. Entries
// already present in lookup win, so the process environment always overrides
// the file. The process environment itself is never modified. A missing file
// is not an error; the original lookup is returned unchanged.
func WithDotenv(lookup LookupFunc, path string) (LookupFunc, error) {
	if lookup == nil {
		lookup = ProcessLookup()
	}
	entries, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := entries[key]
		return v, ok
	}, nil
}
