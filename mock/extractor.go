package mock

import "github.com/fwojciec/storescope"

var _ storescope.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of storescope.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*storescope.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*storescope.ExtractResult, error) {
	return e.ExtractFn(html)
}
