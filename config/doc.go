// Package config loads decoder options from an HCL file.
//
// The file has optional decoder, target and output blocks. Sizes may be
// written with the kib and mib helpers. File.Options turns the decoded file
// into zebin options; attributes that are not set keep the library defaults.
package config
