// Package pagination carries page/limit query parameters and paginated results.
package pagination

import (
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
)

const (
	CodeInvalidPagination = "INVALID_PAGINATION"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params specifies which page of a listing is requested and how it is ordered.
type Params struct {
	// Page is the 1-based page number.
	Page int `query:"page" json:"page"`
	// Limit is the number of items per page.
	Limit int `query:"limit" json:"limit"`

	SortBy  string `query:"sort_by"  json:"sort_by,omitempty"`
	SortDir string `query:"sort_dir" json:"sort_dir,omitempty"`
}

// Config holds default pagination settings.
type Config struct {
	DefaultLimit int `yaml:"default_limit" default:"20"  validate:"min=1"`
	MaxLimit     int `yaml:"max_limit"     default:"100" validate:"min=1"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{DefaultLimit: 20, MaxLimit: 100}
}

// Validate checks that page and limit are positive and the sort direction is known.
func (p Params) Validate() error {
	fields := make(errx.M)
	if p.Page < 1 {
		fields["page"] = "Must be greater than or equal to 1"
	}
	if p.Limit < 1 {
		fields["limit"] = "Must be greater than or equal to 1"
	}
	if p.SortDir != "" && p.SortDir != SortAsc && p.SortDir != SortDesc {
		fields["sort_dir"] = "Must be one of: asc desc"
	}
	if len(fields) == 0 {
		return nil
	}

	return errx.New(
		"invalid pagination parameters",
		errx.WithCode(CodeInvalidPagination),
		errx.WithType(errx.T_Validation),
		errx.WithFields(fields),
	)
}

// Normalize applies defaults and caps limit at cfg.MaxLimit. After Normalize,
// Validate always succeeds.
func (p *Params) Normalize(cfg Config) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}

	p.SortBy = strings.TrimSpace(p.SortBy)
	p.SortDir = strings.ToLower(strings.TrimSpace(p.SortDir))
	if p.SortDir != SortDesc {
		p.SortDir = SortAsc
	}
}

// Offset returns the number of items preceding the requested page.
func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Descending reports whether results are ordered in descending direction.
func (p Params) Descending() bool {
	return p.SortDir == SortDesc
}

// OrderBy returns an SQL order clause for the sort key when it is in allowed,
// falling back to fallback otherwise.
func (p Params) OrderBy(fallback string, allowed ...string) string {
	for _, field := range allowed {
		if field == p.SortBy {
			return field + " " + strings.ToUpper(p.SortDir)
		}
	}
	return fallback
}

// FromMap builds Params from loosely typed input such as decoded query strings
// or JSON bodies. Unparseable numbers become zero and are fixed by Normalize.
func FromMap(m map[string]any) Params {
	return Params{
		Page:    cast.ToInt(m["page"]),
		Limit:   cast.ToInt(m["limit"]),
		SortBy:  cast.ToString(m["sort_by"]),
		SortDir: cast.ToString(m["sort_dir"]),
	}
}

func (p Params) String() string {
	s := fmt.Sprintf("page=%d limit=%d", p.Page, p.Limit)
	if p.SortBy != "" {
		s += fmt.Sprintf(" sort=%s:%s", p.SortBy, p.SortDir)
	}
	return s
}
