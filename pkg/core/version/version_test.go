package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionFormat(t *testing.T) {
	if !semverRegex.MatchString(Version) {
		t.Errorf("Version %q does not match semver format (x.y.z)", Version)
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Get().Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("Get().GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.Protocol != Protocol {
		t.Errorf("Get().Protocol = %q, want %q", info.Protocol, Protocol)
	}
	if !strings.HasPrefix(info.String(), "hcmd "+Version) {
		t.Errorf("String() = %q, want prefix %q", info.String(), "hcmd "+Version)
	}
}
