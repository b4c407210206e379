// Package repository contains the data access layer abstractions.
// Implementations live in subpackages (e.g. postgres) inside this directory;
// test doubles live in mocks.
package repository
