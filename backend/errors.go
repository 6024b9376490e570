package backend

import "errors"

var (
	ErrNotInitialized       = errors.New("backend not initialized")
	ErrInvalidURI           = errors.New("invalid uri")
	ErrPipelineConstruction = errors.New("pipeline construction failed")
	ErrUnsupportedMedia     = errors.New("unsupported media")
	ErrNoPipeline           = errors.New("no pipeline")
)
