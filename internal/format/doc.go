// Package format holds pure display formatting helpers: duration badges,
// step and status labels, and URL-derived titles. Nothing in here performs
// I/O or carries state.
package format
