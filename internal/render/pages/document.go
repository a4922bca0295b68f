// Package pages lays the report view model out as an ordered tree of
// pages and blocks. The tree is JSON-serialisable and is what the PDF
// renderer draws.
package pages

import (
	"github.com/bryanwahyu/schouw/internal/render"
)

type Kind string

const (
	KindTitle     Kind = "title"
	KindKeyValue  Kind = "keyValue"
	KindPills     Kind = "pills"
	KindCallout   Kind = "callout"
	KindChecklist Kind = "checklistTable"
	KindPhotoGrid Kind = "photoGrid"
	KindParagraph Kind = "paragraph"
	KindItem      Kind = "item"
	KindList      Kind = "list"
	KindLinks     Kind = "links"
)

// Pair is one label/value line. Tone colours the value.
type Pair struct {
	Label string      `json:"label"`
	Value string      `json:"value"`
	Tone  render.Tone `json:"tone,omitempty"`
}

type Pill struct {
	Label string      `json:"label"`
	Tone  render.Tone `json:"tone"`
}

type Link struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Notes []string `json:"notes,omitempty"`
}

// Block is a tagged union; Kind decides which fields are set.
type Block struct {
	Kind    Kind                  `json:"kind"`
	Text    string                `json:"text,omitempty"`
	Level   int                   `json:"level,omitempty"`
	Title   string                `json:"title,omitempty"`
	Tone    render.Tone           `json:"tone,omitempty"`
	Columns int                   `json:"columns,omitempty"`
	Pairs   []Pair                `json:"pairs,omitempty"`
	Pills   []Pill                `json:"pills,omitempty"`
	Rows    []render.ChecklistRow `json:"rows,omitempty"`
	Photos  []render.Photo        `json:"photos,omitempty"`
	Items   []string              `json:"items,omitempty"`
	Links   []Link                `json:"links,omitempty"`
}

type Page struct {
	Name   string  `json:"name"`
	Blocks []Block `json:"blocks"`
	Footer string  `json:"footer"`
}

type Document struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Subject  string `json:"subject"`
	Keywords string `json:"keywords"`
	Pages    []Page `json:"pages"`
}

func Title(text string, level int) Block {
	return Block{Kind: KindTitle, Text: text, Level: level}
}

// KeyValues is a label/value list in one or two columns.
func KeyValues(columns int, pairs ...Pair) Block {
	if columns != 2 {
		columns = 1
	}
	return Block{Kind: KindKeyValue, Columns: columns, Pairs: pairs}
}

func Pills(pills ...Pill) Block {
	return Block{Kind: KindPills, Pills: pills}
}

func Callout(tone render.Tone, title, text string) Block {
	return Block{Kind: KindCallout, Tone: tone, Title: title, Text: text}
}

func ChecklistTable(rows []render.ChecklistRow) Block {
	return Block{Kind: KindChecklist, Rows: rows}
}

func PhotoGrid(columns int, photos []render.Photo) Block {
	return Block{Kind: KindPhotoGrid, Columns: columns, Photos: photos}
}

func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// Item is a finding, risk or action card.
func Item(title, text string, pills []Pill, meta ...Pair) Block {
	return Block{Kind: KindItem, Title: title, Text: text, Pills: pills, Pairs: meta}
}

func List(items ...string) Block {
	return Block{Kind: KindList, Items: items}
}

func Links(links ...Link) Block {
	return Block{Kind: KindLinks, Links: links}
}
