package pty

import "errors"

var errEIO = errors.New("input/output error")
