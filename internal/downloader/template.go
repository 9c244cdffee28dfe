package downloader

import (
	"regexp"
	"strconv"

	"fictrack/internal/story"
	"fictrack/internal/textutil"
)

var templateVar = regexp.MustCompile(`\$(?:\{(\w+)\}|(\w+))`)

// ExpandTemplate substitutes $NAME and ${NAME} references with vars. Names
// missing from vars are left exactly as written.
func ExpandTemplate(template string, vars map[string]string) string {
	return templateVar.ReplaceAllStringFunc(template, func(match string) string {
		sub := templateVar.FindStringSubmatch(match)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// TemplateVars returns the variables available to exec templates for s.
func (c *Client) TemplateVars(s story.Story) map[string]string {
	return map[string]string{
		"ID":               s.ID.String(),
		"TITLE":            textutil.SanitizeFileName(s.Title),
		"AUTHOR":           textutil.SanitizeFileName(s.Author),
		"CHAPTERS":         strconv.FormatUint(s.ChapterCount, 10),
		"WORDS":            strconv.FormatUint(s.Words, 10),
		"UPDATE_TIMESTAMP": strconv.FormatInt(s.UpdatedAt.Unix(), 10),
		"URL":              s.URL(),
		"DOWNLOAD_URL":     c.api.DownloadURL(s.ID, c.format),
		"DOWNLOAD_DIR":     c.downloadDir,
		"FORMAT":           string(c.format),
	}
}
