package solver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/apexsigns/signcalc/internal/cache"
)

// ContentHash returns the SHA-256 hex digest of the canonical JSON
// encoding of v. Every number is rounded to six decimals first, the same
// quantization the solve cache applies to its keys, so float noise below
// the reporting precision never changes the digest. Object keys are
// re-encoded in sorted order, so the digest is independent of struct
// field order.
func ContentHash(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("content hash: %w", err)
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return "", fmt.Errorf("content hash: %w", err)
	}

	canonical, err := json.Marshal(quantizeTree(tree))
	if err != nil {
		return "", fmt.Errorf("content hash: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func quantizeTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for key, child := range t {
			t[key] = quantizeTree(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = quantizeTree(child)
		}
		return t
	case float64:
		return cache.Quantize(t)
	default:
		return v
	}
}
