package application

import "errors"

var ErrNotFound = errors.New("not found")
var ErrBadRequest = errors.New("bad request")
var ErrUpstream = errors.New("upstream error")
var ErrPersistence = errors.New("persistence error")
