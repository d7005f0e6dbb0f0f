// Package allocator splits a weekly study-hour budget across subjects in
// proportion to their priority score and expands the result into a per-day
// schedule. Allocate is a pure function of its input.
package allocator
