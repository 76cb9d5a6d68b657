package registry

import "errors"

// Registry errors
var (
	ErrUnknownCapability     = errors.New("unknown capability")
	ErrUnknownObjectKind     = errors.New("unknown object kind")
	ErrUnknownFileHandler    = errors.New("unknown file handler")
	ErrHandlerEmptyName      = errors.New("file handler name cannot be empty")
	ErrHandlerEmptyExtension = errors.New("file handler extension cannot be empty")
	ErrHandlerNoValidator    = errors.New("file handler must have a validator")
	ErrHandlerNilImporter    = errors.New("file handler importer cannot be nil")
	ErrHandlerInvalidTarget  = errors.New("file handler importer targets an undeclared capability or object kind")
)
