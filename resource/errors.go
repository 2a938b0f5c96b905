package resource

import "errors"

// ErrStalledCursor is returned when a page points back at a cursor the
// traversal already visited
var ErrStalledCursor = errors.New("pagination cursor did not advance")
