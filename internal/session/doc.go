// Package session holds the state of one glossary viewer session and
// implements the user actions every front-end offers: loading a table,
// searching, clicking a listed term and filtering the list.
package session
