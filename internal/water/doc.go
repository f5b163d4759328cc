// Package water simulates and shades an interactive ripple surface: a damped
// 2D wave equation on a double-buffered float grid, disturbed by pointer and
// scroll input once per display frame.
package water
