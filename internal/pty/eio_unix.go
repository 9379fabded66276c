//go:build !windows

package pty

import "syscall"

var errEIO error = syscall.EIO
