package dak

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Page is one narrative page declared in the sushi-config pages block
type Page struct {
	// Filename is the page source file, e.g. "index.md"
	Filename string `json:"filename"`
	// Title is the declared title, empty when the block gives none
	Title string `json:"title"`
	// Children are nested pages
	Children []Page `json:"children,omitempty"`
}

// PageList returns the pages declared by the configuration in
// document order. The pages block is a mapping of filename to either
// null or a mapping holding a title and nested pages:
//
//	pages:
//	  index.md:
//	    title: Home
//	    detail.md:
//	      title: Detail
//	  changes.md:
func (c *SushiConfig) PageList() ([]Page, error) {
	if c.Pages.Kind == 0 {
		return nil, nil
	}
	if c.Pages.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("pages block must be a mapping")
	}
	return parsePages(&c.Pages)
}

// parsePages walks a mapping of filename -> page body. Mapping nodes
// hold key/value pairs as alternating content entries.
func parsePages(node *yaml.Node) ([]Page, error) {
	var pages []Page

	for i := 0; i+1 < len(node.Content); i += 2 {
		page, err := parsePage(node.Content[i], node.Content[i+1])
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, nil
}

func parsePage(key, value *yaml.Node) (Page, error) {
	page := Page{Filename: key.Value}

	if value.Kind != yaml.MappingNode {
		return page, nil
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		childKey := value.Content[i]
		childValue := value.Content[i+1]

		if childKey.Value == "title" {
			page.Title = childValue.Value
			continue
		}

		// Any key other than title is a nested page
		child, err := parsePage(childKey, childValue)
		if err != nil {
			return Page{}, err
		}
		page.Children = append(page.Children, child)
	}

	return page, nil
}
