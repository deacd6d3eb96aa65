package catalog

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v3"
)

// searchCache memoizes search results in a bounded local cache.
type searchCache struct {
	cache *ccache.Cache[[]SearchResult]
	ttl   time.Duration
}

func newSearchCache(ttl time.Duration) *searchCache {
	return &searchCache{
		cache: ccache.New(ccache.Configure[[]SearchResult]().MaxSize(1000)),
		ttl:   ttl,
	}
}

func (s *searchCache) get(key string) ([]SearchResult, bool) {
	item := s.cache.Get(key)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value(), true
}

func (s *searchCache) set(key string, results []SearchResult) {
	s.cache.Set(key, results, s.ttl)
}

// cacheKey hashes every criteria field so distinct searches never collide.
func (cr Criteria) cacheKey() string {
	keyParts := []string{
		fmt.Sprintf("city:%s", strings.ToLower(cr.City)),
		fmt.Sprintf("state:%s", strings.ToLower(cr.State)),
		fmt.Sprintf("country:%s", strings.ToLower(cr.Country)),
		fmt.Sprintf("guests:%d", cr.Guests),
	}
	if cr.Dates != nil {
		keyParts = append(keyParts,
			fmt.Sprintf("from:%d", cr.Dates.From.Unix()),
			fmt.Sprintf("to:%d", cr.Dates.To.Unix()),
		)
	}
	hash := md5.Sum([]byte(strings.Join(keyParts, "|")))
	return fmt.Sprintf("search:%x", hash)
}
