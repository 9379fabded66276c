package pty

const supported = false
