// Package lang defines the fixed set of glossary languages and the
// validated language pair a session is configured with.
package lang
