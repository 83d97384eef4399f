package window

import "errors"

// ErrUnknownType is returned by Parse for an unrecognized name.
var ErrUnknownType = errors.New("window: unknown type")
