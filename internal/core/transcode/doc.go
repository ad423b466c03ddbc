// Package transcode turns a canonical compose document into equivalent
// single-shot container CLI commands.
//
// This package contains the functional core of the converter. All functions are
// pure (no I/O, no side effects): one call consumes one document.Document and one
// Config and returns command lines. Calls share no state and may run concurrently.
//
// # Components
//
//   - Mapping table: ordered catalog binding flag spellings to a ValueType and a path
//   - Value encoders: one encoding rule per ValueType (Encode)
//   - Builder: accumulates tokens for one command and renders it (NewBuilder)
//   - Emitter: networks, then volumes, then services (Commands, Convert)
//
// # Usage
//
//	doc, err := compose.Load(yamlText, compose.Options{})
//	out, err := transcode.Convert(doc, transcode.Config{Multiline: true})
package transcode
