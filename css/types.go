package css

import "strings"

// Declaration is a single "property: value" pair in source form.
type Declaration struct {
	Property  string // lowercased property name, custom properties keep leading "--"
	Value     string // value with whitespace collapsed, without "!important"
	Important bool
}

// Block holds content of anything enclosed in braces: declarations and nested
// rules in source order.
type Block struct {
	Declarations []Declaration
	Items        []Item
}

// Item is a single entry of a block. Exactly one of Rule, AtRule or Import is
// non-nil.
type Item struct {
	Rule   *Rule
	AtRule *AtRule
	Import *string
}

// Rule is a qualified rule: selector list and its block.
type Rule struct {
	Selectors []string
	Block
}

// AtRule is any @-rule. Conditional group rules (@media, @supports,
// @container, @layer) and @font-face carry block content, statement rules
// (@charset, @namespace) have empty one.
type AtRule struct {
	Name    string // with leading "@", lowercased
	Prelude string
	Block
}

// Stylesheet is parsed style sheet.
type Stylesheet struct {
	Block
}

// Walk calls fn for every declaration in document order descending into
// nested rules and @-rule blocks.
func (s *Stylesheet) Walk(fn func(d Declaration)) {
	walkBlock(&s.Block, fn)
}

func walkBlock(b *Block, fn func(d Declaration)) {
	for _, d := range b.Declarations {
		fn(d)
	}
	for _, it := range b.Items {
		switch {
		case it.Rule != nil:
			walkBlock(&it.Rule.Block, fn)
		case it.AtRule != nil:
			walkBlock(&it.AtRule.Block, fn)
		}
	}
}

// Values returns values of all declarations of the property in document
// order.
func (s *Stylesheet) Values(property string) []string {
	property = strings.ToLower(property)
	var values []string
	s.Walk(func(d Declaration) {
		if d.Property == property {
			values = append(values, d.Value)
		}
	})
	return values
}

// Imports returns all @import URLs in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, it := range s.Items {
		if it.Import != nil {
			urls = append(urls, *it.Import)
		}
	}
	return urls
}
