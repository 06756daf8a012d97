package kernel

import (
	"strings"

	"github.com/wippyai/zebin/errors"
)

// ArgKind is the representation chosen for an explicit argument.
type ArgKind uint8

const (
	ArgKindUnknown ArgKind = iota
	ArgKindPointer
	ArgKindImage
	ArgKindSampler
	ArgKindValue
)

func (k ArgKind) String() string {
	switch k {
	case ArgKindPointer:
		return "pointer"
	case ArgKindImage:
		return "image"
	case ArgKindSampler:
		return "sampler"
	case ArgKindValue:
		return "value"
	}
	return "unknown"
}

// AddressQualifier is the OpenCL address space of an argument.
type AddressQualifier uint8

const (
	AddrUnknown AddressQualifier = iota
	AddrGlobal
	AddrLocal
	AddrPrivate
	AddrConstant
)

func (q AddressQualifier) String() string {
	switch q {
	case AddrGlobal:
		return "global"
	case AddrLocal:
		return "local"
	case AddrPrivate:
		return "private"
	case AddrConstant:
		return "constant"
	}
	return "unknown"
}

// AccessQualifier is the OpenCL access qualifier of an argument.
type AccessQualifier uint8

const (
	AccessUnknown AccessQualifier = iota
	AccessNone
	AccessReadOnly
	AccessWriteOnly
	AccessReadWrite
)

func (q AccessQualifier) String() string {
	switch q {
	case AccessNone:
		return "none"
	case AccessReadOnly:
		return "read_only"
	case AccessWriteOnly:
		return "write_only"
	case AccessReadWrite:
		return "read_write"
	}
	return "unknown"
}

// TypeQualifiers are the OpenCL type qualifiers of an argument.
type TypeQualifiers struct {
	Const    bool
	Volatile bool
	Restrict bool
	Pipe     bool
}

// Empty reports whether no qualifier is set.
func (q TypeQualifiers) Empty() bool {
	return q == TypeQualifiers{}
}

// ParseAddressQualifier maps a source-level address space spelling.
func ParseAddressQualifier(s string) AddressQualifier {
	switch strings.TrimPrefix(strings.TrimPrefix(s, "__"), "_") {
	case "global":
		return AddrGlobal
	case "local":
		return AddrLocal
	case "private", "not_specified", "":
		return AddrPrivate
	case "constant":
		return AddrConstant
	}
	return AddrUnknown
}

// ParseAccessQualifier maps a source-level access qualifier spelling.
func ParseAccessQualifier(s string) AccessQualifier {
	switch strings.TrimPrefix(strings.TrimPrefix(s, "__"), "_") {
	case "", "none", "NONE":
		return AccessNone
	case "read_only":
		return AccessReadOnly
	case "write_only":
		return AccessWriteOnly
	case "read_write":
		return AccessReadWrite
	}
	return AccessUnknown
}

// ParseTypeQualifiers reads a space separated qualifier list.
func ParseTypeQualifiers(s string) TypeQualifiers {
	var q TypeQualifiers
	for _, f := range strings.Fields(s) {
		switch f {
		case "const":
			q.Const = true
		case "volatile":
			q.Volatile = true
		case "restrict":
			q.Restrict = true
		case "pipe":
			q.Pipe = true
		}
	}
	return q
}

// ArgTraits are the source-level properties of an argument.
type ArgTraits struct {
	AddressQualifier AddressQualifier
	AccessQualifier  AccessQualifier
	TypeQualifiers   TypeQualifiers
	ArgByValSize     uint16
}

// ArgExtendedTypeInfo flags special argument flavours.
type ArgExtendedTypeInfo struct {
	IsAccelerator            bool
	HasVmeExtendedDescriptor bool
	IsMediaImage             bool
	IsMediaBlockImage        bool
	IsTransformable          bool
}

// ArgPointer is a buffer argument.
type ArgPointer struct {
	Bindful              SurfaceStateHeapOffset
	Stateless            CrossThreadDataOffset
	Bindless             CrossThreadDataOffset
	BufferOffset         CrossThreadDataOffset
	BufferSize           CrossThreadDataOffset
	SlmOffset            CrossThreadDataOffset
	RequiredSlmAlignment uint8
	PointerSize          uint8
	AccessedStateless    bool
}

// NewArgPointer returns a pointer with every location Undefined.
func NewArgPointer() ArgPointer {
	return ArgPointer{
		Bindful:      Undefined,
		Stateless:    Undefined,
		Bindless:     Undefined,
		BufferOffset: Undefined,
		BufferSize:   Undefined,
		SlmOffset:    Undefined,
	}
}

// ImageType is the dimensionality of an image argument.
type ImageType uint8

const (
	ImageTypeUnknown ImageType = iota
	ImageTypeBuffer
	ImageType1D
	ImageType1DArray
	ImageType2D
	ImageType2DArray
	ImageType3D
	ImageTypeCube
	ImageTypeCubeArray
	ImageType2DDepth
	ImageType2DArrayDepth
	ImageType2DMSAA
	ImageType2DMSAADepth
	ImageType2DArrayMSAA
	ImageType2DArrayMSAADepth
	ImageType2DMedia
	ImageType2DMediaBlock
)

var imageTypeNames = [...]string{
	"unknown", "buffer", "1d", "1d_array", "2d", "2d_array", "3d", "cube",
	"cube_array", "2d_depth", "2d_array_depth", "2d_msaa", "2d_msaa_depth",
	"2d_array_msaa", "2d_array_msaa_depth", "2d_media", "2d_media_block",
}

func (t ImageType) String() string {
	if int(t) < len(imageTypeNames) {
		return imageTypeNames[t]
	}
	return "unknown"
}

// ImageMetadataPayload locates the image properties patched into cross-thread data.
type ImageMetadataPayload struct {
	Width           CrossThreadDataOffset
	Height          CrossThreadDataOffset
	Depth           CrossThreadDataOffset
	ChannelDataType CrossThreadDataOffset
	ChannelOrder    CrossThreadDataOffset
	ArraySize       CrossThreadDataOffset
	NumSamples      CrossThreadDataOffset
	NumMipLevels    CrossThreadDataOffset
	FlatBaseOffset  CrossThreadDataOffset
	FlatWidth       CrossThreadDataOffset
	FlatHeight      CrossThreadDataOffset
	FlatPitch       CrossThreadDataOffset
}

// ArgImage is an image argument.
type ArgImage struct {
	Bindful   SurfaceStateHeapOffset
	Bindless  CrossThreadDataOffset
	ImageType ImageType
	Metadata  ImageMetadataPayload
}

// NewArgImage returns an image with every location Undefined.
func NewArgImage() ArgImage {
	u := Undefined
	return ArgImage{
		Bindful:  u,
		Bindless: u,
		Metadata: ImageMetadataPayload{u, u, u, u, u, u, u, u, u, u, u, u},
	}
}

// SamplerType is the hardware flavour of a sampler argument.
type SamplerType uint8

const (
	SamplerTypeUnknown SamplerType = iota
	SamplerTypeTexture
	SamplerType8x8
	SamplerType2DConvolve8x8
	SamplerTypeErode8x8
	SamplerTypeDilate8x8
	SamplerTypeMinMaxFilter8x8
	SamplerTypeCentroid8x8
	SamplerTypeBoolCentroid8x8
	SamplerTypeBoolSum8x8
	SamplerTypeVME
	SamplerTypeVE
	SamplerTypeVD
)

var samplerTypeNames = [...]string{
	"unknown", "texture", "8x8", "8x8_2dconvolve", "8x8_erode", "8x8_dilate",
	"8x8_minmaxfilter", "8x8_centroid", "8x8_bool_centroid", "8x8_bool_sum",
	"vme", "ve", "vd",
}

func (t SamplerType) String() string {
	if int(t) < len(samplerTypeNames) {
		return samplerTypeNames[t]
	}
	return "unknown"
}

// SamplerMetadataPayload locates the sampler properties patched into cross-thread data.
type SamplerMetadataPayload struct {
	AddressingMode   CrossThreadDataOffset
	NormalizedCoords CrossThreadDataOffset
	SnapWa           CrossThreadDataOffset
}

// ArgSampler is a sampler argument.
type ArgSampler struct {
	Bindful     DynamicStateHeapOffset
	Bindless    CrossThreadDataOffset
	Index       uint8
	SamplerType SamplerType
	Metadata    SamplerMetadataPayload
}

// NewArgSampler returns a sampler with every location Undefined.
func NewArgSampler() ArgSampler {
	u := Undefined
	return ArgSampler{
		Bindful:  u,
		Bindless: u,
		Metadata: SamplerMetadataPayload{u, u, u},
	}
}

// ValueElement is one contiguous piece of a by-value argument.
type ValueElement struct {
	Offset       CrossThreadDataOffset
	Size         uint16
	SourceOffset uint16
	IsPtr        bool
}

// ArgValue is a by-value argument, split into ordered elements.
type ArgValue struct {
	Elements []ValueElement
}

// ArgVme holds the cross-thread offsets of VME sampler parameters.
type ArgVme struct {
	MbBlockType    CrossThreadDataOffset
	SubpixelMode   CrossThreadDataOffset
	SadAdjustMode  CrossThreadDataOffset
	SearchPathType CrossThreadDataOffset
}

// NewArgVme returns a VME descriptor with every location Undefined.
func NewArgVme() *ArgVme {
	return &ArgVme{Undefined, Undefined, Undefined, Undefined}
}

// ArgDescriptor is one explicit kernel argument. Only the variant named by
// Kind is meaningful; the kind is fixed by the first typed access.
type ArgDescriptor struct {
	Kind     ArgKind
	Traits   ArgTraits
	Extended ArgExtendedTypeInfo

	Pointer ArgPointer
	Image   ArgImage
	Sampler ArgSampler
	Value   ArgValue
}

// Is reports whether the argument already has kind k.
func (a *ArgDescriptor) Is(k ArgKind) bool {
	return a.Kind == k
}

func (a *ArgDescriptor) claim(k ArgKind) error {
	switch a.Kind {
	case k:
		return nil
	case ArgKindUnknown:
		a.Kind = k
		switch k {
		case ArgKindPointer:
			a.Pointer = NewArgPointer()
		case ArgKindImage:
			a.Image = NewArgImage()
		case ArgKindSampler:
			a.Sampler = NewArgSampler()
		}
		return nil
	}
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Value(k.String()).
		Detail("argument already decoded as %s, cannot use it as %s", a.Kind, k).
		Build()
}

// AsPointer fixes the argument as a pointer and returns it.
func (a *ArgDescriptor) AsPointer() (*ArgPointer, error) {
	if err := a.claim(ArgKindPointer); err != nil {
		return nil, err
	}
	return &a.Pointer, nil
}

// AsImage fixes the argument as an image and returns it.
func (a *ArgDescriptor) AsImage() (*ArgImage, error) {
	if err := a.claim(ArgKindImage); err != nil {
		return nil, err
	}
	return &a.Image, nil
}

// AsSampler fixes the argument as a sampler and returns it.
func (a *ArgDescriptor) AsSampler() (*ArgSampler, error) {
	if err := a.claim(ArgKindSampler); err != nil {
		return nil, err
	}
	return &a.Sampler, nil
}

// AsValue fixes the argument as a by-value argument and returns it.
func (a *ArgDescriptor) AsValue() (*ArgValue, error) {
	if err := a.claim(ArgKindValue); err != nil {
		return nil, err
	}
	return &a.Value, nil
}
