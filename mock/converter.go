package mock

import "github.com/fwojciec/storescope"

var _ storescope.Converter = (*Converter)(nil)

// Converter is a mock implementation of storescope.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
