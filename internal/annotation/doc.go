// Package annotation holds the worker annotation dataset the viewer renders.
//
// A Dataset is loaded once from a JSON document (local file or HTTP URL),
// validated, and treated as immutable for the rest of the session. The
// package also owns the closed set of activity codes together with their
// display colours and descriptions.
package annotation
