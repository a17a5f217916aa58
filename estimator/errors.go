package estimator

import "errors"

// Structural failures. Sensor noise is absorbed by the sanitizer and never
// surfaces; these indicate a configuration/scan-size mismatch and abort the
// estimate for the offending scan only.
var (
	ErrIndexOutOfRange = errors.New("beam window outside scan bounds")
	ErrEmptyScan       = errors.New("empty scan")
)
