package resolver_test

import (
	"errors"

	"go.trai.ch/zerr"
)

// metadata collects zerr metadata along the whole error chain.
func metadata(err error) map[string]any {
	out := make(map[string]any)
	for err != nil {
		var z *zerr.Error
		if !errors.As(err, &z) {
			break
		}
		for k, v := range z.Metadata() {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
		err = z.Unwrap()
	}
	return out
}
