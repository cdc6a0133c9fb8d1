package batch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ryanm101/titlematch/catalog"
)

// cacheKey derives the result cache key for a request. Every input that
// affects the response must be encoded here: the platform, the sorted
// deduplicated id set, and every filter field. Omitting a field would let
// differently-filtered requests share an entry.
func cacheKey(req *Request, ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	var b strings.Builder
	b.WriteString("batch|v1|")
	b.WriteString(string(req.Platform))
	b.WriteByte('|')
	b.WriteString(strings.Join(sorted, ","))
	fmt.Fprintf(&b, "|emu=%s|max=%d|nsfw=%t|min=%t",
		req.Filters.Emulator,
		normalizeMaxListings(req.Filters.MaxListingsPerGame),
		req.Filters.ShowNSFW,
		req.Filters.Minimal,
	)
	return b.String()
}

// normalizeMaxListings applies the default and clamps to the documented
// range so equivalent requests share a key.
func normalizeMaxListings(n int) int {
	if n < 1 {
		return catalog.DefaultMaxListings
	}
	if n > catalog.MaxListingsCap {
		return catalog.MaxListingsCap
	}
	return n
}
