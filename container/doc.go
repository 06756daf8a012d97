// Package container sorts the sections of a zebin ELF image into the buckets
// the program decoder consumes, and decodes the IntelGT compatibility notes.
//
// Extract never interprets section contents beyond their type and name.
// ValidateCounts then enforces the singleton buckets, and DecodeNotes plus
// Notes.Validate gate the binary against a target device.
package container
