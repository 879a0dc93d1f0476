// Package anki exports a loaded glossary as an Anki package (.apkg) with
// a forward and a reverse card per term pair.
package anki
