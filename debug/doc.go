// Package debug holds debugging switches read from the environment at
// start up.
//
//   - JV_DEBUG_PARSE logs a summary of every parsed document.
//   - JV_DEBUG_LAZY logs when a container's child index is first built.
//   - JV_DEBUG_ENCODE logs every encoded value.
//   - JV_DEBUG_EVAL logs expression results.
//   - JV_DEBUG_MATCH logs pattern matching.
//
// Values are parsed with strconv.ParseBool.
package debug
