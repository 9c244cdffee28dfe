package story

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var storyURLPattern = regexp.MustCompile(`^https?://(?:www\.)?fimfiction\.net/story/(\d+)`)

// ParseID accepts a bare story id or a story URL such as
// https://www.fimfiction.net/story/1234/some-title.
func ParseID(value string) (ID, error) {
	value = strings.TrimSpace(value)
	digits := value
	if m := storyURLPattern.FindStringSubmatch(value); m != nil {
		digits = m[1]
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%q is not a story id or a Fimfiction story url", value)
	}
	return ID(n), nil
}

// ParseIDs parses every argument, stopping at the first invalid one.
func ParseIDs(values []string) ([]ID, error) {
	ids := make([]ID, 0, len(values))
	for _, value := range values {
		id, err := ParseID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
