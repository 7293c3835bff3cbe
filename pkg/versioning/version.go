package versioning

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/arthur-debert/sdkpack/pkg/errors"
	"github.com/arthur-debert/sdkpack/pkg/logging"
)

// DefaultBuildNumber is used when the build number variable is unset
const DefaultBuildNumber = "0"

// Version identifies one SDK build
type Version struct {
	Prefix   string
	Major    int
	Minor    int
	Revision int
	Build    string
}

// String renders the version as a directory and archive member name,
// e.g. native_client_sdk_0_1_1234_56.
func (v Version) String() string {
	return fmt.Sprintf("%s_%d_%d_%d_%s", v.Prefix, v.Major, v.Minor, v.Revision, v.Build)
}

var svnRevisionPattern = regexp.MustCompile(`Revision: ([0-9]+)`)

// ParseSVNRevision extracts the revision from `svn info` output. A
// revision too large for an int is an error of its own, logged at warn.
func ParseSVNRevision(info string) (int, error) {
	m := svnRevisionPattern.FindStringSubmatch(info)
	if m == nil {
		return 0, errors.New(errors.ErrRevision, "no Revision line in svn info output")
	}
	rev, err := strconv.Atoi(m[1])
	if err != nil {
		logger := logging.GetLogger("versioning")
		logger.Warn().
			Str("revision", m[1]).
			Msg("svn revision is out of range, ignoring it")
		return 0, errors.Wrapf(err, errors.ErrRevision, "svn revision %s is out of range", m[1]).
			WithDetail("revision", m[1])
	}
	return rev, nil
}

// BuildNumber reads the build number from the named variable, falling back
// to DefaultBuildNumber when it is unset or empty.
func BuildNumber(getenv func(string) string, name string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	if name == "" {
		return DefaultBuildNumber
	}
	if v := getenv(name); v != "" {
		return v
	}
	return DefaultBuildNumber
}
