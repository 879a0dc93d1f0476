// Package glossary builds the bidirectional term index from a two-column
// table and answers lookups against it. It also reads glossary tables
// from CSV, TSV and "termA = termB" text files.
package glossary
