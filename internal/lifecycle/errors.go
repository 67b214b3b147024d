package lifecycle

import "errors"

var (
	errRegistryNil    = errors.New("registry is nil")
	errCoordinatorNil = errors.New("build coordinator is nil")
)
