package journal

import (
	"strings"
	"time"
)

// Notes holds the free text written during each ACTS stage.
type Notes struct {
	Adoration    string `json:"adoration" yaml:"adoration"`
	Confession   string `json:"confession" yaml:"confession"`
	Thanksgiving string `json:"thanksgiving" yaml:"thanksgiving"`
	Supplication string `json:"supplication" yaml:"supplication"`
}

// Session is one completed guided-prayer run.
type Session struct {
	ID        string `json:"id" yaml:"id"`
	Date      string `json:"date" yaml:"date"`
	Duration  int    `json:"duration" yaml:"duration"`
	Notes     Notes  `json:"notes" yaml:"notes"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// Category is the closed set of prayer categories. Values are the display
// strings the app persists.
type Category string

const (
	CategoryPersonal Category = "Pessoal"
	CategoryWork     Category = "Trabalho"
	CategoryHealth   Category = "Saúde"
	CategoryFamily   Category = "Família"
	CategoryOther    Category = "Outros"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryPersonal, CategoryWork, CategoryHealth, CategoryFamily, CategoryOther}

var categoryNames = map[string]Category{
	"personal": CategoryPersonal,
	"work":     CategoryWork,
	"health":   CategoryHealth,
	"family":   CategoryFamily,
	"other":    CategoryOther,
}

// ParseCategory accepts a display string or English name. Empty input
// defaults to CategoryPersonal.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryPersonal, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	if c, ok := categoryNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	return "", invalid("category", "unknown category "+s)
}

// Prayer is a prayer request tracked by the user.
type Prayer struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	Category     Category   `json:"category" yaml:"category"`
	DateCreated  time.Time  `json:"dateCreated" yaml:"dateCreated"`
	IsAnswered   bool       `json:"isAnswered" yaml:"isAnswered"`
	AnsweredDate *time.Time `json:"answeredDate,omitempty" yaml:"answeredDate,omitempty"`
}

// Filter selects prayers by lifecycle state.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterAnswered Filter = "answered"
)

// ParseFilter validates a filter name. Empty input means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterAnswered:
		return f, nil
	}
	return "", invalid("filter", "filter must be all, active or answered")
}

func (f Filter) match(p Prayer) bool {
	switch f {
	case FilterActive:
		return !p.IsAnswered
	case FilterAnswered:
		return p.IsAnswered
	}
	return true
}
