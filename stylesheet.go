package tcemlint

import (
	"fmt"
	"os"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/tcemlint/internal/pyramid"
)

// ClassOccurrence is a single class selector inside a stylesheet rule.
type ClassOccurrence struct {
	Name   string
	File   string
	Line   int
	Column int

	// Compound lists every class in the same compound selector, including
	// classes inherited from a Less parent via "&" and the class itself.
	Compound []string

	// Pseudo holds pseudo-classes attached to the compound (":hover").
	Pseudo []string

	// Declarations counts style declarations directly inside the rule's
	// block. Nested rules do not count toward their parent.
	Declarations int
}

// Stylesheet is the parse result for one CSS/Less file.
type Stylesheet struct {
	File    string
	Layer   pyramid.Layer
	Classes []ClassOccurrence
}

// token is one lexed CSS token with its byte offset.
type token struct {
	tt     css.TokenType
	text   string
	offset int
}

// sheetParser walks the token stream and collects class occurrences.
type sheetParser struct {
	tokens  []token
	pos     int
	file    string
	content string
	out     []ClassOccurrence
}

// ParseStylesheetFile reads and parses a single CSS/Less file.
func ParseStylesheetFile(path string, layer pyramid.Layer) (*Stylesheet, error) {
	// #nosec G304 - path comes from configured glob patterns
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseStylesheet(string(content), path, layer), nil
}

// ParseStylesheet parses stylesheet content. Less nesting and parent
// references ("&") are resolved so compound selectors carry the classes
// they would have after expansion.
func ParseStylesheet(content, filename string, layer pyramid.Layer) *Stylesheet {
	p := &sheetParser{
		tokens:  lexAll(content),
		file:    filename,
		content: content,
	}
	p.parseBlock(nil)

	return &Stylesheet{File: filename, Layer: layer, Classes: p.out}
}

// lexAll tokenizes the whole input, dropping comments.
func lexAll(content string) []token {
	input := parse.NewInputString(content)
	lexer := css.NewLexer(input)

	var tokens []token
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal - just stop
			break
		}
		if tt == css.CommentToken {
			continue
		}
		end := input.Offset()
		tokens = append(tokens, token{tt: tt, text: string(text), offset: end - len(text)})
	}
	return tokens
}

// parseBlock consumes statements until the matching right brace or EOF and
// returns the number of style declarations directly inside the block.
// parentCompound is the compound selector of the enclosing rule, merged
// into nested selectors that reference "&".
func (p *sheetParser) parseBlock(parentCompound []string) int {
	declarations := 0

	for p.pos < len(p.tokens) {
		start := p.pos
		terminator := p.scanStatement()

		switch terminator {
		case css.RightBraceToken:
			prelude := p.tokens[start : p.pos-1]
			// A trailing declaration may omit its semicolon.
			if isDeclaration(prelude) {
				declarations++
			}
			return declarations

		case css.SemicolonToken:
			prelude := p.tokens[start : p.pos-1]
			if isDeclaration(prelude) {
				declarations++
			}

		case css.LeftBraceToken:
			prelude := p.tokens[start : p.pos-1]
			p.parseRuleBlock(prelude, parentCompound)

		default: // EOF
			prelude := p.tokens[start:p.pos]
			if isDeclaration(prelude) {
				declarations++
			}
			return declarations
		}
	}
	return declarations
}

// scanStatement advances past the next statement terminator and returns it.
// The terminator itself is consumed.
func (p *sheetParser) scanStatement() css.TokenType {
	for p.pos < len(p.tokens) {
		tt := p.tokens[p.pos].tt
		p.pos++
		switch tt {
		case css.LeftBraceToken, css.SemicolonToken, css.RightBraceToken:
			return tt
		}
	}
	return css.ErrorToken
}

// parseRuleBlock handles a prelude followed by "{": either an at-rule
// group, a skippable at-rule, or a style rule with selectors.
func (p *sheetParser) parseRuleBlock(prelude []token, parentCompound []string) {
	prelude = trimSpace(prelude)

	if len(prelude) > 0 && prelude[0].tt == css.AtKeywordToken {
		switch prelude[0].text {
		case "@media", "@supports", "@layer":
			// Conditional groups wrap ordinary rules.
			p.parseBlock(parentCompound)
		default:
			// @keyframes, @font-face and friends hold no class selectors.
			p.skipBlock()
		}
		return
	}

	compounds := p.extractCompounds(prelude, parentCompound)

	// Nested rules inherit the first selector group's compound.
	inherited := parentCompound
	if len(compounds) > 0 {
		inherited = compounds[0].classes
	}

	firstOccurrence := len(p.out)
	for _, c := range compounds {
		for i, name := range c.classes {
			if i < len(c.offsets) && c.offsets[i] >= 0 {
				line, col := lineCol(p.content, c.offsets[i])
				p.out = append(p.out, ClassOccurrence{
					Name:     name,
					File:     p.file,
					Line:     line,
					Column:   col,
					Compound: c.classes,
					Pseudo:   c.pseudo,
				})
			}
		}
	}

	declarations := p.parseBlock(inherited)
	for i := firstOccurrence; i < len(p.out); i++ {
		p.out[i].Declarations = declarations
	}
}

// skipBlock consumes a balanced block without interpreting it.
func (p *sheetParser) skipBlock() {
	depth := 1
	for p.pos < len(p.tokens) && depth > 0 {
		switch p.tokens[p.pos].tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
		}
		p.pos++
	}
}

// compound is one compound selector within a selector group.
type compound struct {
	classes []string // all classes, parent classes first when "&" is used
	offsets []int    // byte offset per class; -1 for inherited classes
	pseudo  []string
}

// extractCompounds splits a selector prelude into compound selectors.
// Combinators and whitespace end a compound; commas end a selector group.
func (p *sheetParser) extractCompounds(prelude []token, parentCompound []string) []compound {
	var result []compound
	var cur compound
	hasAmp := false

	flush := func() {
		if hasAmp {
			// &.isActive inherits the parent rule's classes.
			merged := compound{pseudo: cur.pseudo}
			for _, name := range parentCompound {
				merged.classes = append(merged.classes, name)
				merged.offsets = append(merged.offsets, -1)
			}
			merged.classes = append(merged.classes, cur.classes...)
			merged.offsets = append(merged.offsets, cur.offsets...)
			cur = merged
		}
		if len(cur.classes) > 0 {
			result = append(result, cur)
		}
		cur = compound{}
		hasAmp = false
	}

	for i := 0; i < len(prelude); i++ {
		t := prelude[i]
		switch {
		case t.tt == css.WhitespaceToken, t.tt == css.CommaToken:
			flush()

		case t.tt == css.DelimToken && t.text == "&":
			hasAmp = true

		case t.tt == css.DelimToken && (t.text == ">" || t.text == "+" || t.text == "~"):
			flush()

		case t.tt == css.DelimToken && t.text == ".":
			// ".name(" lexes as a FunctionToken: a Less mixin, not a
			// selector, so only a plain identifier counts as a class.
			if i+1 < len(prelude) && prelude[i+1].tt == css.IdentToken {
				cur.classes = append(cur.classes, prelude[i+1].text)
				cur.offsets = append(cur.offsets, t.offset)
				i++
			}

		case t.tt == css.ColonToken:
			if i+1 < len(prelude) && prelude[i+1].tt == css.IdentToken {
				cur.pseudo = append(cur.pseudo, ":"+prelude[i+1].text)
				i++
			}
		}
	}
	flush()

	return result
}

// isDeclaration reports whether a statement prelude is a style declaration:
// an identifier property followed by a colon. Less variables (@var: ...)
// and mixin invocations do not count.
func isDeclaration(prelude []token) bool {
	prelude = trimSpace(prelude)
	if len(prelude) < 2 || prelude[0].tt != css.IdentToken {
		return false
	}
	for _, t := range prelude[1:] {
		switch t.tt {
		case css.ColonToken:
			return true
		case css.WhitespaceToken:
			continue
		default:
			return false
		}
	}
	return false
}

// trimSpace strips leading and trailing whitespace tokens.
func trimSpace(tokens []token) []token {
	for len(tokens) > 0 && tokens[0].tt == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].tt == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// lineCol converts a byte offset to a 1-based line and column.
func lineCol(content string, offset int) (line, col int) {
	if offset > len(content) {
		offset = len(content)
	}
	line, col = 1, 1
	for _, b := range []byte(content[:offset]) {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
