//go:build !windows

package pty

const supported = true
