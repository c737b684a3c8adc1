// Package html extracts readable text from HTML fragments. Feed
// descriptions and provider content often carry markup, scripts and
// entities that must not reach the index or the summariser.
package html
