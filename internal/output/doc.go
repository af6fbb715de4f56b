// Package output holds the presentation helpers that sit between a digit
// stream and its destination: fixed-width line wrapping and broken-pipe
// detection for consumers such as `head` that close early.
package output
