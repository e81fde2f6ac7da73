package commit

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var ErrNoTags = errors.New("commit: no release tags found")

// ordinalRE matches the sortable key embedded in a release tag name. Extra
// leading zeros are disallowed so two spellings can't name one release.
var ordinalRE = regexp.MustCompile(`^(0|[1-9]\d*)$`)

var errInvalidTag = errors.New("invalid release tag")

// ReleaseTag is a parsed release marker tag. Tags order by Ordinal, never
// by creation-time metadata, which can be missing or forged.
type ReleaseTag struct {
	Name    string
	Ordinal uint64
}

// ParseReleaseTag parses a tag name of the form <prefix><ordinal>.
func ParseReleaseTag(prefix, name string) (ReleaseTag, error) {
	if !strings.HasPrefix(name, prefix) {
		return ReleaseTag{}, fmt.Errorf("%w: %q has no prefix %q", errInvalidTag, name, prefix)
	}
	key := strings.TrimPrefix(name, prefix)
	if !ordinalRE.MatchString(key) {
		return ReleaseTag{}, fmt.Errorf("%w: %q has a malformed ordinal", errInvalidTag, name)
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return ReleaseTag{}, fmt.Errorf("%w: %q: %v", errInvalidTag, name, err)
	}
	return ReleaseTag{Name: name, Ordinal: n}, nil
}

// ParseReleaseTags extracts release tags from raw tag names, skipping
// anything that doesn't follow the naming convention, sorted oldest first.
func ParseReleaseTags(prefix string, tags []string) []ReleaseTag {
	var res []ReleaseTag
	for _, name := range tags {
		t, err := ParseReleaseTag(prefix, name)
		if err != nil {
			continue
		}
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Ordinal != res[j].Ordinal {
			return res[i].Ordinal < res[j].Ordinal
		}
		return res[i].Name < res[j].Name
	})
	return res
}

// LatestReleaseTag returns the most recent release tag by embedded ordinal.
func LatestReleaseTag(prefix string, tags []string) (ReleaseTag, error) {
	parsed := ParseReleaseTags(prefix, tags)
	if len(parsed) == 0 {
		return ReleaseTag{}, ErrNoTags
	}
	return parsed[len(parsed)-1], nil
}

// PreviousReleaseTag returns the next-most-recent release tag before the
// latest one. ErrNoTags means there is no predecessor to diff against.
func PreviousReleaseTag(prefix string, tags []string) (ReleaseTag, error) {
	parsed := ParseReleaseTags(prefix, tags)
	if len(parsed) < 2 {
		return ReleaseTag{}, ErrNoTags
	}
	return parsed[len(parsed)-2], nil
}

// NextReleaseTag names the marker tag following t.
func NextReleaseTag(prefix string, t ReleaseTag) string {
	return fmt.Sprintf("%s%d", prefix, t.Ordinal+1)
}

// TagGlob is the query for listing candidate release tags.
func TagGlob(prefix string) string {
	return prefix + "*"
}
