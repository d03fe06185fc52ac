// Copyright (c) 2018-2019, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package ast

import (
	"fmt"
	"os"
	"strings"

	"github.com/danos/yang-compiler/internal/token"
)

// SyntaxError is a grammar-level parse failure. It always carries a
// source position so every error surfaces file/line/column.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type parser struct {
	lex     *token.Lexer
	file    string
	peeked  *token.Item
	lastPos token.Pos
}

func (p *parser) next() token.Item {
	var it token.Item
	if p.peeked != nil {
		it = *p.peeked
		p.peeked = nil
	} else {
		it = p.lex.NextItem()
	}
	p.lastPos = it.Pos
	return it
}

// nextSignificant skips separator tokens.
func (p *parser) nextSignificant() token.Item {
	for {
		it := p.next()
		if it.Type != token.ItemSep {
			return it
		}
	}
}

func (p *parser) peekSignificant() token.Item {
	it := p.nextSignificant()
	p.peeked = &it
	return it
}

func (p *parser) position(pos token.Pos) Position {
	line, col := p.lex.LineAndColumn(pos)
	return Position{File: p.file, Line: line, Col: col}
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) error {
	return &SyntaxError{Pos: p.position(pos), Msg: fmt.Sprintf(format, args...)}
}

// Parse parses YANG module source text into a concrete syntax tree rooted
// at the single top-level statement (module or submodule). name is used
// only for error messages / Position.File.
func Parse(name, input string) (*Statement, error) {
	p := &parser{lex: token.New(name, input), file: name}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	it := p.nextSignificant()
	switch it.Type {
	case token.ItemEOF:
		return stmt, nil
	case token.ItemError:
		return nil, p.errorf(it.Pos, "%s", it.Val)
	default:
		return nil, p.errorf(it.Pos, "mismatched input '%s' expecting <EOF>", it.Val)
	}
}

// ParseFile reads path and parses it as a single YANG module or submodule.
func ParseFile(path string) (*Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(data))
}

func (p *parser) parseStatement() (*Statement, error) {
	kwItem := p.nextSignificant()
	switch kwItem.Type {
	case token.ItemError:
		return nil, p.errorf(kwItem.Pos, "%s", kwItem.Val)
	case token.ItemEOF:
		return nil, p.errorf(kwItem.Pos, "mismatched input '<EOF>' expecting a statement keyword")
	case token.ItemRightBrace:
		return nil, p.errorf(kwItem.Pos, "mismatched input '}' expecting a statement keyword")
	case token.ItemString:
		// fine
	default:
		return nil, p.errorf(kwItem.Pos, "mismatched input '%s' expecting a statement keyword", kwItem.Val)
	}

	prefix, keyword := splitPrefix(kwItem.Val)
	stmt := &Statement{
		Prefix:  prefix,
		Keyword: keyword,
		Pos:     p.position(kwItem.Pos),
	}

	// Optional argument.
	next := p.peekSignificant()
	if next.Type == token.ItemString || next.Type == token.ItemQuote {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		stmt.Argument = arg
		stmt.HasArgument = true
		next = p.peekSignificant()
	}

	switch next.Type {
	case token.ItemSemiColon:
		p.next()
		return stmt, nil
	case token.ItemLeftBrace:
		p.next()
		for {
			la := p.peekSignificant()
			if la.Type == token.ItemRightBrace {
				p.next()
				return stmt, nil
			}
			child, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			stmt.Children = append(stmt.Children, child)
		}
	case token.ItemError:
		return nil, p.errorf(next.Pos, "%s", next.Val)
	case token.ItemEOF:
		return nil, p.errorf(next.Pos, "mismatched input '<EOF>' expecting '{' or ';'")
	default:
		return nil, p.errorf(next.Pos, "mismatched input '%s' expecting '{' or ';'", next.Val)
	}
}

func splitPrefix(s string) (prefix, keyword string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// parseArgument consumes one or more quoted/bare strings joined by '+'
// and returns the concatenated, unescaped argument value.
func (p *parser) parseArgument() (string, error) {
	var b strings.Builder
	for {
		it := p.nextSignificant()
		switch it.Type {
		case token.ItemQuote:
			qt := it.Val
			content := p.next() // ItemString (may be empty-string sentinel)
			var raw string
			if content.Type == token.ItemString {
				raw = content.Val
				p.next() // closing ItemQuote
			} else if content.Type == token.ItemQuote {
				raw = ""
				p.peeked = &content
				p.next()
			} else {
				return "", p.errorf(content.Pos, "unterminated quoted string")
			}
			unquoted, err := unquote(qt, raw, content.Pos, p)
			if err != nil {
				return "", err
			}
			b.WriteString(unquoted)
		case token.ItemString:
			b.WriteString(it.Val)
		case token.ItemError:
			return "", p.errorf(it.Pos, "%s", it.Val)
		default:
			return "", p.errorf(it.Pos, "mismatched input '%s' expecting an argument", it.Val)
		}

		la := p.peekSignificant()
		if la.Type == token.ItemPlus {
			p.next()
			continue
		}
		return b.String(), nil
	}
}

// unquote processes escapes for double-quoted strings and strips the
// per-line indentation introduced purely for source formatting, per
// RFC 7950 section 6.1.3.
func unquote(qt, raw string, pos token.Pos, p *parser) (string, error) {
	col := 0
	if p != nil {
		_, c := p.lex.LineAndColumn(pos)
		col = c - 1
	}

	var unescaped strings.Builder
	if qt == "'" {
		unescaped.WriteString(raw)
	} else {
		for i := 0; i < len(raw); i++ {
			c := raw[i]
			if c != '\\' {
				unescaped.WriteByte(c)
				continue
			}
			i++
			if i >= len(raw) {
				return "", p.errorf(pos, "unterminated escape sequence")
			}
			switch raw[i] {
			case 'n':
				unescaped.WriteByte('\n')
			case 't':
				unescaped.WriteByte('\t')
			case '"':
				unescaped.WriteByte('"')
			case '\\':
				unescaped.WriteByte('\\')
			default:
				unescaped.WriteByte('\\')
				unescaped.WriteByte(raw[i])
			}
		}
	}

	return stripIndentation(unescaped.String(), col), nil
}

// stripIndentation removes, from every continuation line of a multi-line
// quoted string, up to `col` leading whitespace characters -- the
// indentation contributed by the source file's nesting, not by the
// string's content (RFC 7950 6.1.3).
func stripIndentation(s string, col int) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = trimLeadingWhitespace(lines[i], col)
	}
	return strings.Join(lines, "\n")
}

func trimLeadingWhitespace(s string, max int) string {
	n := 0
	for n < len(s) && n < max && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return s[n:]
}
