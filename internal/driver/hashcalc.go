package driver

import (
	"crypto/sha256"
	"strconv"

	"dialang/internal/source"
	"dialang/internal/token"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). parts are in a fixed order.
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey covers the file content and every option that changes the
// parse result.
func cacheKey(file *source.File, opts Options) Digest {
	return combineDigest(Digest(file.Hash),
		[]byte("v"+strconv.Itoa(int(diskCacheSchemaVersion))),
		[]byte("max="+strconv.Itoa(opts.MaxDiagnostics)),
		kindsKey("term", opts.SyncTerminators),
		kindsKey("start", opts.SyncStarters),
		[]byte("keep="+strconv.FormatBool(opts.KeepPlaceholders)),
	)
}

// kindsKey keeps nil and empty apart: nil selects the default terminators.
func kindsKey(name string, kinds []token.Kind) []byte {
	if kinds == nil {
		return []byte(name + "=default;")
	}
	b := []byte(name + "=[")
	for _, k := range kinds {
		b = strconv.AppendInt(b, int64(k), 10)
		b = append(b, ',')
	}
	return append(b, "];"...)
}
