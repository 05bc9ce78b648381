// Package errors provides structured, actionable error messages for gridcell.
//
// Every error carries a code that maps to a category, a short message, a
// longer explanation and a documentation link. Errors can point at a
// location in a configuration file and suggest a fix.
//
// # Error Categories
//
//   - config: gridcell.json / gridcell.yaml problems
//   - integration: a column names an unknown renderer or omits a required parameter
//   - source: row data could not be read or decoded
//   - server: preview server and WebSocket protocol problems
//   - cli: command-line usage problems
//
// # Usage
//
//	err := errors.New("E201").
//	    WithDetail(`column "stars" uses repeatIcon without rendererImage`).
//	    WithSuggestion(`Add "rendererImage": "star.png" to the column params`)
//
//	fmt.Println(err.Format())
package errors
