// Package ui is a stack-based screen router for full-screen terminal menus.
//
// Core abstractions:
//   - View: one full-screen unit; Render plus optional lifecycle, input and hint hooks
//   - Manager: owns the terminal, the view registry and the navigation history
//   - History: names of views to return to with Back
//   - Frame: one rows x columns buffer written in a single write
//   - Footer: key hints packed into the last row
//
// A Manager dispatches input on one goroutine, strictly one chunk at a time.
// View hooks run to completion before the next chunk is delivered.
package ui
