// Package pipeline holds the text stages around HTML conversion.
//
// It covers two concerns shared by the converters and the Markdown engine:
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Reference resolution (relative paths to file:// URLs under a root,
//     relative links against a base URL)
//
// The functions are pure and safe for concurrent use.
package pipeline
