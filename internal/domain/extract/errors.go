package extract

import "errors"

// ErrNoPayload signals that no candidate payload was found in the text.
var ErrNoPayload = errors.New("no structured payload found in body")
