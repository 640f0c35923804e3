// Package breadcrumb turns an app path into display labels, one per segment.
package breadcrumb

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Catalog looks up display names for dynamic path segments
type Catalog interface {
	Monument(ctx context.Context, id string) (string, bool, error)
	Blog(ctx context.Context, id int) (string, bool, error)
	State(ctx context.Context, key string) (string, bool, error)
	Tour(ctx context.Context, id string) (string, bool, error)
}

// Crumb is one resolved path segment
type Crumb struct {
	Segment string `json:"segment"`
	Label   string `json:"label"`
	Path    string `json:"path"`
	Last    bool   `json:"last"`
}

var segmentNames = map[string]string{
	"heritage":  "Heritage Sites",
	"culture":   "Indian Culture",
	"blog":      "Blog",
	"community": "Community",
	"contact":   "Contact Us",
	"quizzes":   "Knowledge Center",
	"tours":     "Learning Tours",
}

// Resolver maps path segments to labels
type Resolver struct {
	catalog Catalog
}

// NewResolver creates a resolver backed by catalog
func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve labels every segment of path in order. The root path has no crumbs.
func (r *Resolver) Resolve(ctx context.Context, path string) ([]Crumb, error) {
	segments := Segments(path)
	crumbs := make([]Crumb, 0, len(segments))

	current := ""
	for i, segment := range segments {
		current += "/" + segment

		label, err := r.label(ctx, segments, i)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", current, err)
		}

		crumbs = append(crumbs, Crumb{
			Segment: segment,
			Label:   label,
			Path:    current,
			Last:    i == len(segments)-1,
		})
	}

	return crumbs, nil
}

// Segments splits a path and drops empty segments
func Segments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *Resolver) label(ctx context.Context, segments []string, i int) (string, error) {
	segment := segments[i]
	label := segment
	if name, ok := segmentNames[segment]; ok {
		label = name
	}
	if i == 0 {
		return label, nil
	}

	var (
		name  string
		found bool
		err   error
	)
	switch segments[i-1] {
	case "site", "ar":
		name, found, err = r.catalog.Monument(ctx, segment)
	case "quiz":
		name, found, err = r.catalog.Monument(ctx, segment)
		if found {
			name += " Quiz"
		}
	case "blog":
		if id, ok := blogID(segment); ok {
			name, found, err = r.catalog.Blog(ctx, id)
		}
	case "state":
		name, found, err = r.catalog.State(ctx, segment)
	case "tours":
		name, found, err = r.catalog.Tour(ctx, segment)
	default:
		return label, nil
	}
	if err != nil {
		return "", err
	}
	if !found {
		return segment, nil
	}
	return name, nil
}

// blogID reads a numeric segment the way a number literal would parse, so
// "7", "7.0" and "0x7" are the same post and "seven" is not a post at all.
// Values outside the int64 range are not posts either.
func blogID(segment string) (int, bool) {
	s := strings.TrimSpace(segment)

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseInt(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return int(n), true
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}
