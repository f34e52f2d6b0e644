package store

import "github.com/Tedomi2525/My-project/internal/api"

// ErrNotFound is returned when the backend reports a missing record.
var ErrNotFound = api.ErrNotFound
