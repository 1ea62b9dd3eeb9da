package scene

import "errors"

// SelectionUnresolved is returned when a feature's reference_selection
// parameter names an object the scene does not currently contain,
// typically because an upstream feature was edited or removed and the
// name it used to produce no longer exists.
var SelectionUnresolved = errors.New("scene: selection does not resolve to an object")
