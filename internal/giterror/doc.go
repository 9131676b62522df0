// Package giterror provides error inspection for failures talking to the
// GitHub REST API. It separates transport failures (the request never
// completed) and undecodable bodies from API error payloads, so callers
// never need string matching of their own.
package giterror
