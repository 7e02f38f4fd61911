package config

import (
	"os"
	"slices"
	"strings"
)

// Origins lists the origins allowed to call the API. An empty list allows
// any origin.
type Origins struct {
	List []string
}

func NewOrigins() *Origins {
	var list []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			list = append(list, o)
		}
	}
	return &Origins{List: list}
}

func (o *Origins) Allowed(origin string) bool {
	return len(o.List) == 0 || slices.Contains(o.List, origin)
}
