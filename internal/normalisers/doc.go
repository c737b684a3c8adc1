// Package normalisers turns markup found in provider payloads into plain
// text suitable for display, embedding and prompting.
package normalisers
