package catalog

import "errors"

var (
	ErrNotFound        = errors.New("catalog entry not found")
	ErrNotOwner        = errors.New("catalog entry is owned by another user")
	ErrBuiltin         = errors.New("built-in catalog entries cannot be modified")
	ErrNameRequired    = errors.New("a name is required")
	ErrMusclesRequired = errors.New("at least one muscle group is required")
)
