package ocorren

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed layouts/*.json
var layoutFS embed.FS

// LayoutVersion identifies one generation of the OCORREN file format.
type LayoutVersion int

const (
	VersionAuto LayoutVersion = iota // Detect from the file's record types.
	Version31                        // OCORREN 3.1, 120-column records.
	Version50                        // OCORREN 5.0, 250-column records.
)

type versionInfo struct {
	name     string
	file     string
	required []string
}

var versionTable = map[LayoutVersion]versionInfo{
	Version31: {name: "3.1", file: "layouts/ocorren_31.json", required: []string{"000", "340", "341", "342"}},
	Version50: {name: "5.0", file: "layouts/ocorren_50.json", required: []string{"000", "540", "541", "542", "543", "544", "545", "549"}},
}

// detection priority
var versionOrder = []LayoutVersion{Version31, Version50}

func (v LayoutVersion) String() string {
	if v == VersionAuto {
		return "auto"
	}
	if info, ok := versionTable[v]; ok {
		return info.name
	}
	return fmt.Sprintf("LayoutVersion(%d)", int(v))
}

// RequiredRecordTypes lists the tags a file must contain to be detected as v.
func (v LayoutVersion) RequiredRecordTypes() []string {
	return append([]string(nil), versionTable[v].required...)
}

// Versions returns the known versions in detection priority.
func Versions() []LayoutVersion { return append([]LayoutVersion(nil), versionOrder...) }

// ParseVersion accepts "auto" (or ""), "3.1"/"31" and "5.0"/"50", optionally
// prefixed with "ocorren-" or "v".
func ParseVersion(s string) (LayoutVersion, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.TrimPrefix(t, "ocorren-")
	t = strings.TrimPrefix(t, "v")
	switch t {
	case "", "auto":
		return VersionAuto, nil
	case "3.1", "31":
		return Version31, nil
	case "5.0", "50", "5":
		return Version50, nil
	}
	return VersionAuto, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}

// LoadVersion loads the embedded layout of v.
func LoadVersion(v LayoutVersion) (*LayoutRegistry, error) {
	info, ok := versionTable[v]
	if !ok {
		return nil, &LoadError{Source: v.String(), Err: ErrUnknownVersion}
	}
	reg, err := LoadFS(layoutFS, info.file)
	if err != nil {
		return nil, err
	}
	reg.name = "ocorren-" + info.name
	return reg, nil
}

// LayoutDocument returns the raw embedded layout document of v.
func LayoutDocument(v LayoutVersion) ([]byte, error) {
	info, ok := versionTable[v]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownVersion, v)
	}
	return fs.ReadFile(layoutFS, info.file)
}
