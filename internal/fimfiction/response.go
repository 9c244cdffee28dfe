package fimfiction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"fictrack/internal/story"
)

// Author is the author block of a story response.
type Author struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// Chapter is a single chapter entry of a story response.
type Chapter struct {
	ID           uint32 `json:"id"`
	Title        string `json:"title"`
	Words        uint64 `json:"words"`
	Views        uint32 `json:"views"`
	Link         string `json:"link"`
	DateModified int64  `json:"date_modified"`
}

// StoryResponse is the story payload returned by api/story.php.
type StoryResponse struct {
	ID               story.ID     `json:"id"`
	Title            string       `json:"title"`
	URL              string       `json:"url"`
	ShortDescription string       `json:"short_description"`
	Description      string       `json:"description"`
	DateModified     int64        `json:"date_modified"`
	Image            *string      `json:"image"`
	FullImage        *string      `json:"full_image"`
	Views            uint32       `json:"views"`
	TotalViews       uint32       `json:"total_views"`
	Words            uint64       `json:"words"`
	ChapterCount     uint64       `json:"chapter_count"`
	Comments         uint32       `json:"comments"`
	Author           Author       `json:"author"`
	Status           story.Status `json:"status"`
	ContentRating    Rating       `json:"content_rating"`
	Likes            Vote         `json:"likes"`
	Dislikes         Vote         `json:"dislikes"`
	Chapters         []Chapter    `json:"chapters"`
}

// Story converts the response into the tracked snapshot.
func (r StoryResponse) Story() story.Story {
	return story.Story{
		ID:           r.ID,
		Title:        r.Title,
		Author:       r.Author.Name,
		ChapterCount: r.ChapterCount,
		Words:        r.Words,
		UpdatedAt:    time.Unix(r.DateModified, 0).UTC(),
		Status:       r.Status,
	}
}

// envelope is either {"story": ...} or {"error": "..."}.
type envelope struct {
	Story *StoryResponse `json:"story"`
	Error *string        `json:"error"`
}

// Vote is a like or dislike counter. Fimfiction sends a negative number when
// voting is disabled on the story.
type Vote struct {
	count    uint32
	disabled bool
}

// NewVote builds an enabled counter.
func NewVote(count uint32) Vote { return Vote{count: count} }

// Count returns the counter and whether votes are enabled.
func (v Vote) Count() (uint32, bool) { return v.count, !v.disabled }

func (v *Vote) UnmarshalJSON(data []byte) error {
	n, err := strconv.ParseInt(string(bytes.TrimSpace(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("vote: want an integer, got %s", data)
	}
	switch {
	case n < 0:
		*v = Vote{disabled: true}
	case n > math.MaxUint32:
		return fmt.Errorf("vote: %d out of range", n)
	default:
		*v = Vote{count: uint32(n)}
	}
	return nil
}

// Rating is the content rating of a story.
type Rating uint8

const (
	RatingEveryone Rating = iota
	RatingTeen
	RatingMature
)

var ratingNames = map[Rating]string{
	RatingEveryone: "Everyone",
	RatingTeen:     "Teen",
	RatingMature:   "Mature",
}

func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return "Rating(" + strconv.Itoa(int(r)) + ")"
}

// UnmarshalJSON accepts 0..2 or the rating name.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		for rating, label := range ratingNames {
			if label == name {
				*r = rating
				return nil
			}
		}
		return fmt.Errorf("invalid content rating %q", name)
	}
	n, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil || n > uint64(RatingMature) {
		return fmt.Errorf("invalid content rating %s: want an integer between 0 and 2", data)
	}
	*r = Rating(n)
	return nil
}
