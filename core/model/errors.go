package model

import "errors"

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrSelfEdge     = errors.New("edge endpoints must differ")
)
