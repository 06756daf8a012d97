package zeinfo

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/wippyai/zebin/errors"
)

// Version is a zeinfo schema version, written MAJOR.MINOR.
type Version struct {
	Major uint32
	Minor uint32
}

// DecoderVersion is the newest schema this decoder understands.
var DecoderVersion = Version{Major: 1, Minor: 52}

// Release that moved scratch sizing into execution_env and made
// per_thread_memory_buffers honour slot.
var scratchSlotVersion = Version{Major: 1, Minor: 38}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func (v Version) semver() string {
	return fmt.Sprintf("v%d.%d.0", v.Major, v.Minor)
}

// Compare returns -1, 0 or +1 as v is older than, equal to or newer than o.
func (v Version) Compare(o Version) int {
	return semver.Compare(v.semver(), o.semver())
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// ParseVersion reads a MAJOR.MINOR string. Surrounding quotes must already
// be stripped.
func ParseVersion(s string) (Version, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok || major == "" || minor == "" {
		return Version{}, invalidVersion(s)
	}
	ma, err := strconv.ParseUint(major, 10, 32)
	if err != nil {
		return Version{}, invalidVersion(s)
	}
	mi, err := strconv.ParseUint(minor, 10, 32)
	if err != nil {
		return Version{}, invalidVersion(s)
	}
	v := Version{Major: uint32(ma), Minor: uint32(mi)}
	if !semver.IsValid(v.semver()) {
		return Version{}, invalidVersion(s)
	}
	return v, nil
}

func invalidVersion(s string) error {
	return errors.New(errors.PhaseVersion, errors.KindInvalidData).
		Path(tagVersion).
		Value(s).
		Detail("Invalid version format - expected 'MAJOR.MINOR' string, got : %s", s).
		Build()
}

// Check compares a document version against the decoder. A different major
// version is unsupported; a newer minor version only warns.
func (v Version) Check(w *errors.Warnings) error {
	if semver.Major(v.semver()) != semver.Major(DecoderVersion.semver()) {
		return errors.New(errors.PhaseVersion, errors.KindUnsupportedVersion).
			Path(tagVersion).
			Value(v.String()).
			Detail("Unhandled major version : %d, decoder is at : %d", v.Major, DecoderVersion.Major).
			Build()
	}
	if v.Minor > DecoderVersion.Minor {
		w.Addf("Minor version : %d is newer than available in decoder : %d - some features may be skipped", v.Minor, DecoderVersion.Minor)
	}
	return nil
}
