// Package testutil provides shared helpers for odot's tests: lightweight
// assertions, filesystem fixtures, and isolated test environments with a
// source config directory and target vaults.
package testutil
