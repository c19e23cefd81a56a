package xmlcodec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"

	"github.com/lb-conn/ekaer/domain/schema"
)

const redactedText = "***"

// SensitiveElements are blanked by Redact.
var SensitiveElements = []string{"passwordHash", "requestSignature"}

// Canonicalize returns the Exclusive C14N form of an XML document with
// whitespace-only text nodes dropped, so that equal payloads compare equal
// regardless of formatting.
func Canonicalize(data []byte) ([]byte, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}
	return canonicalizeElement(root)
}

// Redact blanks the text of every element whose local name is listed in
// names (SensitiveElements when empty) and returns the canonical form.
// It is used before request and response bodies are logged.
func Redact(data []byte, names ...string) ([]byte, error) {
	if len(names) == 0 {
		names = SensitiveElements
	}
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		for _, el := range findAll(root, name) {
			el.SetText(redactedText)
		}
	}
	return canonicalizeElement(root)
}

// ExtractResult looks for the first result block in an arbitrary body,
// typically the error document of a non-200 response.
func ExtractResult(data []byte) (schema.Result, bool) {
	root, err := parseRoot(data)
	if err != nil {
		return schema.Result{}, false
	}
	var block *etree.Element
	if root.Tag == "result" {
		block = root
	} else if found := findAll(root, "result"); len(found) > 0 {
		block = found[0]
	}
	if block == nil {
		return schema.Result{}, false
	}
	result := schema.Result{
		FuncCode:   schema.FunctionCode(childText(block, "funcCode")),
		ReasonCode: childText(block, "reasonCode"),
		Msg:        childText(block, "msg"),
	}
	if result.FuncCode == "" && result.Msg == "" {
		return schema.Result{}, false
	}
	return result, true
}

func parseRoot(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("empty XML document")
	}
	return root, nil
}

func canonicalizeElement(root *etree.Element) ([]byte, error) {
	rootCopy := root.Copy()
	removeWhitespaceNodes(rootCopy)
	canon := dsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList("")
	out, err := canon.Canonicalize(rootCopy)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize %s: %w", root.Tag, err)
	}
	return out, nil
}

func childText(el *etree.Element, name string) string {
	for _, child := range el.ChildElements() {
		if localName(child) == name {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}
