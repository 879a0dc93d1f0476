// Package models lists the OpenAI speech models and voices available to
// an API key.
package models
