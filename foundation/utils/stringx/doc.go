// Package stringx provides the Unicode aware string helpers used by the
// console interpreter and its hosts.
package stringx
