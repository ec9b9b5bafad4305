package mailchimp

import (
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"
)

// TimeLayout is the format the API uses for timestamps, always in GMT.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t the way the API expects it. The zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

// Sort directions.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

var sortDirections = sets.New(SortAsc, SortDesc)

// Page controls paging of list calls. Start is the page number (0 based) or
// the record offset depending on the method. A non-positive Limit selects the
// method's default; values above the method's ceiling are clamped.
type Page struct {
	Start int
	Limit int
}

func (p Page) start() int {
	if p.Start < 0 {
		return 0
	}
	return p.Start
}

func (p Page) limit(def, max int) int {
	return clampLimit(p.Limit, def, max)
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// normalizeField returns value lower-cased when it is one of allowed,
// otherwise def.
func normalizeField(value, def string, allowed sets.Set[string]) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if allowed.Has(v) {
		return v
	}
	return def
}

// normalizeDir returns ASC or DESC, falling back to def.
func normalizeDir(value, def string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	if sortDirections.Has(v) {
		return v
	}
	return def
}

func defaultString(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// boolOr returns *b, or def when b is nil.
func boolOr(b *bool, def bool) bool {
	return ptr.Deref(b, def)
}
