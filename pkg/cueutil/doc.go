// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Term modules, the guide registry and the configuration file are all CUE
// documents validated against schemas embedded in the binary. They share the
// same 3-step flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed glossary_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[Module](
//	    schemaBytes,
//	    moduleBytes,
//	    "#TermModule",
//	    cueutil.WithFilename("kafka.glossary.cue"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//	return result.Value, nil
//
// ParseFS does the same for a file inside an fs.FS, checking the size limit
// before the file is read.
package cueutil
