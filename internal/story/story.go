package story

import (
	"fmt"
	"strconv"
	"time"
)

// ID identifies a story on Fimfiction. It never changes once assigned.
type ID uint32

// String renders the id in decimal.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

const baseURL = "https://www.fimfiction.net"

// Story is the tracked snapshot of a remote story.
type Story struct {
	ID           ID
	Title        string
	Author       string
	ChapterCount uint64
	Words        uint64
	UpdatedAt    time.Time
	Status       Status
}

// URL returns the public page of the story.
func (s Story) URL() string {
	return fmt.Sprintf("%s/story/%d", baseURL, s.ID)
}

// DownloadURL returns the direct download link for the story in format.
func (s Story) DownloadURL(format Format) string {
	return DownloadURLFor(baseURL, s.ID, format)
}

// DownloadURLFor builds the download link against an arbitrary site root.
func DownloadURLFor(root string, id ID, format Format) string {
	return fmt.Sprintf("%s/story/download/%d/%s", root, id, format)
}

// Format is a download format offered by Fimfiction.
type Format string

const (
	FormatHTML Format = "html"
	FormatEPUB Format = "epub"
	FormatTXT  Format = "txt"
)

// ParseFormat accepts the lowercase format names.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatHTML, FormatEPUB, FormatTXT:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unknown download format %q (want html, epub or txt)", value)
	}
}
