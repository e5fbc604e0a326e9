package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ErrMalformed is returned (wrapped) when style sheet grammar cannot be
// followed. Stylesheet returned together with it holds everything parsed
// before the problem.
var ErrMalformed = errors.New("malformed style sheet")

// Parser parses CSS style sheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

type walker struct {
	p    *css.Parser
	log  *zap.Logger
	done bool
	err  error
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	w := &walker{
		p:   css.NewParser(parse.NewInput(bytes.NewReader(data)), false),
		log: p.log,
	}

	sheet := &Stylesheet{}
	w.block(&sheet.Block, css.ErrorGrammar)
	if w.err != nil {
		p.log.Debug("CSS parse error", zap.Error(w.err))
		return sheet, w.err
	}
	return sheet, nil
}

// block reads grammar units into b until the closing grammar or end of input.
func (w *walker) block(b *Block, end css.GrammarType) {
	var pending []string

	for !w.done {
		gt, _, data := w.p.Next()

		switch gt {
		case css.ErrorGrammar:
			w.done = true
			if err := w.p.Err(); err != nil && !errors.Is(err, io.EOF) {
				w.err = fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			return

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if end == css.ErrorGrammar {
				w.log.Debug("Unbalanced block end", zap.String("grammar", gt.String()))
				continue
			}
			return

		case css.BeginAtRuleGrammar:
			ar := &AtRule{
				Name:    strings.ToLower(string(data)),
				Prelude: joinTokens(w.p.Values()),
			}
			w.block(&ar.Block, css.EndAtRuleGrammar)
			b.Items = append(b.Items, Item{AtRule: ar})

		case css.AtRuleGrammar:
			name := strings.ToLower(string(data))
			if name == "@import" {
				if url := extractImportURL(w.p.Values()); url != "" {
					b.Items = append(b.Items, Item{Import: &url})
				}
				continue
			}
			b.Items = append(b.Items, Item{AtRule: &AtRule{Name: name, Prelude: joinTokens(w.p.Values())}})

		case css.QualifiedRuleGrammar, css.BeginRulesetGrammar:
			if bareDeclarations(w.p.Values()) {
				// style attribute text preceding a rule, no selector looks like this
				w.done = true
				w.err = fmt.Errorf("%w: declarations outside of any rule", ErrMalformed)
				return
			}
			if gt == css.QualifiedRuleGrammar {
				// one selector of the comma separated list, the last one comes
				// with the ruleset itself
				pending = append(pending, splitSelectors(data, w.p.Values())...)
				continue
			}
			r := &Rule{Selectors: append(pending, splitSelectors(data, w.p.Values())...)}
			pending = nil
			w.block(&r.Block, css.EndRulesetGrammar)
			b.Items = append(b.Items, Item{Rule: r})

		case css.DeclarationGrammar:
			if d, ok := declaration(data, w.p.Values()); ok {
				b.Declarations = append(b.Declarations, d)
			}

		case css.CustomPropertyGrammar:
			b.Declarations = append(b.Declarations, Declaration{
				Property: string(data),
				Value:    strings.TrimSpace(joinTokens(w.p.Values())),
			})
		}
	}
}

func declaration(name []byte, tokens []css.Token) (Declaration, bool) {
	d := Declaration{Property: strings.ToLower(strings.TrimSpace(string(name)))}
	if len(d.Property) == 0 {
		return d, false
	}

	// drop trailing "! important"
	last := len(tokens) - 1
	for last >= 0 && tokens[last].TokenType == css.WhitespaceToken {
		last--
	}
	if last >= 1 && tokens[last].TokenType == css.IdentToken && strings.EqualFold(string(tokens[last].Data), "important") {
		bang := last - 1
		for bang >= 0 && tokens[bang].TokenType == css.WhitespaceToken {
			bang--
		}
		if bang >= 0 && tokens[bang].TokenType == css.DelimToken && string(tokens[bang].Data) == "!" {
			d.Important = true
			tokens = tokens[:bang]
		}
	}

	d.Value = joinTokens(tokens)
	return d, len(d.Value) > 0
}

// bareDeclarations reports whether rule prelude is in fact a run of
// "property: value" pairs. Selectors never contain semicolons, and a
// pseudo-class colon is always followed by a name or a function.
func bareDeclarations(tokens []css.Token) bool {
	for i, t := range tokens {
		switch t.TokenType {
		case css.SemicolonToken:
			return true
		case css.ColonToken:
			if i+1 == len(tokens) {
				return true
			}
			switch tokens[i+1].TokenType {
			case css.IdentToken, css.FunctionToken, css.ColonToken:
			default:
				return true
			}
		}
	}
	return false
}

// joinTokens rebuilds source text from tokens collapsing whitespace runs into
// a single space.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

// splitSelectors extracts selector strings from token data.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(bytes.TrimSpace(bytes.TrimSuffix(bytes.TrimSpace(data), []byte("{"))))
	sb.WriteString(joinTokens(values))

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// unquote removes matching surrounding quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
