package buffer

import (
	vberrors "github.com/vango-dev/viewbuf/internal/errors"
	"github.com/vango-dev/viewbuf/pkg/safetext"
)

// Sentinels for errors.Is. Returned errors carry more detail but match on
// code.
var (
	ErrTypeConversion = vberrors.New(vberrors.CodeTypeConversion)
	ErrStackUnderflow = vberrors.New(vberrors.CodeStackUnderflow)
	ErrSink           = vberrors.New(vberrors.CodeSinkFailure)
	ErrCaptureLost    = vberrors.New(vberrors.CodeCaptureLost)
)

func coerce(v any) (safetext.Text, error) {
	t, err := safetext.Coerce(v)
	if err != nil {
		return nil, vberrors.New(vberrors.CodeTypeConversion).
			WithDetailf("cannot render value of type %T", v).
			Wrap(err)
	}
	return t, nil
}

func underflow(detail string) error {
	return vberrors.New(vberrors.CodeStackUnderflow).WithDetail(detail)
}

func captureLost(depth, got int, cause error) error {
	e := vberrors.New(vberrors.CodeCaptureLost).
		WithDetailf("capture started at depth %d, block left depth %d without the capture frame", depth+1, got)
	if cause != nil {
		return e.Wrap(cause)
	}
	return e
}
