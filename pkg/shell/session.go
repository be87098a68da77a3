package shell

import (
	"context"
	"errors"

	"courseplanner/pkg/catalog"
	"courseplanner/pkg/loader"
	"courseplanner/pkg/report"
)

// ErrNotLoaded is returned by Session.RequireLoad before any load attempt.
var ErrNotLoaded = errors.New("no data loaded")

// Session is the state shared by one interactive run: the catalog and
// whether a load has been attempted. Loaded flips on the first attempt even
// if it fails, so an empty catalog is reported as such instead of as
// "nothing loaded yet".
type Session struct {
	Store    *catalog.Store
	Loaded   bool
	LastLoad loader.Result

	placeholder string
}

// NewSession returns a session with an empty catalog. placeholder is the
// name shown for unknown prerequisites; empty selects the default.
func NewSession(placeholder string) *Session {
	return &Session{Store: catalog.NewStore(), placeholder: placeholder}
}

// Load reads source into the session catalog. Successive loads add to the
// same catalog.
func (s *Session) Load(ctx context.Context, source string, opts ...loader.Option) (loader.Result, error) {
	s.Loaded = true
	res, err := loader.Load(ctx, source, s.Store, opts...)
	s.LastLoad = res
	return res, err
}

// RequireLoad returns ErrNotLoaded until Load has been called once.
func (s *Session) RequireLoad() error {
	if !s.Loaded {
		return ErrNotLoaded
	}
	return nil
}

// Reports returns a report service over the session catalog.
func (s *Session) Reports() *report.Service {
	return report.New(s.Store, s.placeholder)
}
