// Package render lets an application replace the built-in video renderer.
//
// An application registers a Factory with the engine. For every view the
// engine sets up, the factory creates one Renderer, which the engine wraps
// in a Session:
//
//	Created --Initialize ok--> Initialized --Release--> Released
//	   |                                                   ^
//	   +--Initialize fails--> Failed ---------Release------+
//
// Frames reach the Renderer only while the session is Initialized. Calls
// made before a successful Initialize or after Release are rejected without
// touching the Renderer. When Initialize fails the engine keeps rendering
// the view with its built-in path.
package render
