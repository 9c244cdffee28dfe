package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"fictrack/internal/story"
)

// storyColumn is one column of the list table.
type storyColumn struct {
	header string
	align  text.Align
	cell   func(story.Story) string
}

var storyColumns = []storyColumn{
	{"ID", text.AlignRight, func(s story.Story) string { return s.ID.String() }},
	{"Title", text.AlignLeft, func(s story.Story) string { return s.Title }},
	{"Author", text.AlignLeft, func(s story.Story) string { return s.Author }},
	{"Chapters", text.AlignRight, func(s story.Story) string { return strconv.FormatUint(s.ChapterCount, 10) }},
	{"Words", text.AlignRight, func(s story.Story) string { return humanize.Comma(int64(s.Words)) }},
	{"Updated", text.AlignLeft, func(s story.Story) string { return humanize.Time(s.UpdatedAt) }},
	{"Status", text.AlignLeft, func(s story.Story) string { return s.Status.String() }},
}

func renderStoryTable(stories []story.Story) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(storyColumns))
	configs := make([]table.ColumnConfig, len(storyColumns))
	for i, col := range storyColumns {
		header[i] = col.header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: col.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, s := range stories {
		row := make(table.Row, len(storyColumns))
		for i, col := range storyColumns {
			row[i] = col.cell(s)
		}
		tw.AppendRow(row)
	}
	if len(stories) > 1 {
		tw.AppendFooter(table.Row{"", strconv.Itoa(len(stories)) + " stories"})
	}
	return tw.Render()
}
