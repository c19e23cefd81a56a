package xmlcodec

import (
	"strings"

	"github.com/beevik/etree"
)

// findAll returns every descendant of el with the given local name, in
// document order.
func findAll(el *etree.Element, name string) []*etree.Element {
	var found []*etree.Element
	for _, child := range el.ChildElements() {
		if localName(child) == name {
			found = append(found, child)
		}
		found = append(found, findAll(child, name)...)
	}
	return found
}

// localName strips any namespace prefix.
func localName(el *etree.Element) string {
	if i := strings.LastIndexByte(el.Tag, ':'); i >= 0 {
		return el.Tag[i+1:]
	}
	return el.Tag
}

// removeWhitespaceNodes drops text nodes made only of whitespace.
func removeWhitespaceNodes(el *etree.Element) {
	var newChildren []etree.Token
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.Element:
			removeWhitespaceNodes(c)
			newChildren = append(newChildren, c)
		case *etree.CharData:
			if strings.TrimSpace(c.Data) != "" {
				newChildren = append(newChildren, c)
			}
		case *etree.ProcInst, *etree.Comment:
			// not part of the canonical payload
		default:
			newChildren = append(newChildren, c)
		}
	}
	el.Child = newChildren
}
