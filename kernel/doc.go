// Package kernel defines the decode targets: per-kernel descriptors and the
// program that owns them.
//
// A Descriptor starts with every cross-thread, surface-state and
// dynamic-state offset set to Undefined. Decoding fills in the offsets the
// binary names. Explicit arguments take one representation (pointer, image,
// sampler or value) on first typed access and keep it:
//
//	arg := d.Arg(0)
//	ptr, err := arg.AsPointer()
//	if err != nil {
//	    // argument 0 is already an image, sampler or value
//	}
//	ptr.Stateless = 0
package kernel
