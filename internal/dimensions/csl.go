// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dimensions

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// CSLItem is a bibliographic entry in CSL-YAML form, readable by Pandoc
// and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
}

// CSLName is a person's name.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate uses CSL date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the response's records as a CSL-YAML list to w.
func FormatCSL(resp *Response, w io.Writer) error {
	items := make([]CSLItem, 0)
	if resp != nil {
		for _, rec := range resp.Records {
			items = append(items, toCSLItem(rec))
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(rec map[string]any) CSLItem {
	item := CSLItem{
		ID:    str(rec["id"]),
		Type:  cslType(str(rec["type"])),
		Title: str(rec["title"]),
		DOI:   str(rec["doi"]),
	}
	if journal, ok := rec["journal"].(map[string]any); ok {
		item.ContainerTitle = str(journal["title"])
	}
	if authors, ok := rec["authors"].([]any); ok {
		for _, a := range authors {
			if obj, ok := a.(map[string]any); ok {
				if name := cslName(obj); name != (CSLName{}) {
					item.Author = append(item.Author, name)
				}
			}
		}
	}
	if year := intValue(rec["year"]); year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	return item
}

// cslType maps Dimensions publication types onto CSL item types.
func cslType(t string) string {
	switch t {
	case "chapter":
		return "chapter"
	case "book", "monograph":
		return "book"
	case "proceeding":
		return "paper-conference"
	case "preprint":
		return "manuscript"
	default:
		return "article-journal"
	}
}

func cslName(a map[string]any) CSLName {
	family := strings.TrimSpace(str(a["last_name"]))
	given := strings.TrimSpace(str(a["first_name"]))
	if family != "" {
		return CSLName{Family: family, Given: given}
	}
	if given != "" {
		return CSLName{Literal: given}
	}
	return CSLName{}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(x)
		return n
	}
	return 0
}
