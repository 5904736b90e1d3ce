// Package variantweaver renders variants of a template that contains
// tag-gated regions.
//
// A template marks regions with directives written between "#{" and "}":
//
//	def f():
//	    pass # TODO#{if(solved)}
//	    return 42#{end(solved)}
//
// Text is emitted only while every tag opened by an enclosing if(...) is in
// the caller's Settings. The directives are:
//
//	nop            does nothing
//	if(a, b, ...)  opens one block per tag, in order
//	end            closes the innermost block
//	end(a, ...)    closes the innermost open block of each named tag
//
// Any other directive, or a malformed one, fails the render with a typed
// error carrying the line and column.
package variantweaver

// Version is the release of the library and the CLI.
const Version = "0.3.0"
