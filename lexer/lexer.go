// Package lexer implements Nilan's scanner: source text in, one token at a
// time out. Unlike an eager "tokenize everything up front" scanner, NextToken
// is pulled on demand by the compiler's single-pass Pratt parser, which never
// materializes a full token vector.
package lexer

import (
	"nilan/token"
)

func isLetter(char rune) bool {
	return 'a' <= char && char <= 'z' || 'A' <= char && char <= 'Z' || char == '_'
}

func isDigit(char rune) bool {
	return '0' <= char && char <= '9'
}

// Lexer is a single-pass scanner over a rune slice. It keeps just enough
// state to produce the next token: the current lexeme's start and current
// read position, and the line counter used for diagnostics.
type Lexer struct {
	characters []rune
	totalChars int

	start       int // index where the current token's lexeme begins
	position    int // index of currentChar
	currentChar rune

	line int
}

// New initializes a Lexer over the given source text.
func New(input string) *Lexer {
	lexer := &Lexer{
		characters: []rune(input),
		line:       1,
	}
	lexer.totalChars = len(lexer.characters)
	lexer.readChar()
	return lexer
}

// isFinished reports whether the scanner has consumed the entire input.
// readChar sets currentChar to rune(0) exactly once input runs out, and it
// stays rune(0) on every subsequent call, so that is the one reliable
// end-of-input signal — position alone reaches the end one character before
// currentChar does, which would cut the last real character off of
// multi-character scans (identifiers, numbers, strings).
func (lexer *Lexer) isFinished() bool {
	return lexer.currentChar == rune(0)
}

// readChar advances the lexer by one character, loading the new current
// character (or rune(0) at end of input).
func (lexer *Lexer) readChar() {
	if lexer.position >= lexer.totalChars {
		lexer.currentChar = rune(0)
	} else {
		lexer.currentChar = lexer.characters[lexer.position]
	}
	lexer.position++
}

// peek returns the current character without consuming it.
func (lexer *Lexer) peek() rune {
	return lexer.currentChar
}

// peekNext returns the character after the current one without consuming
// anything.
func (lexer *Lexer) peekNext() rune {
	if lexer.position >= lexer.totalChars {
		return rune(0)
	}
	return lexer.characters[lexer.position]
}

// isMatch consumes the current character and reports true if it equals
// expected; otherwise the lexer is left unchanged.
func (lexer *Lexer) isMatch(expected rune) bool {
	if lexer.isFinished() || lexer.currentChar != expected {
		return false
	}
	lexer.readChar()
	return true
}

func (lexer *Lexer) skipWhiteSpaceAndComments() {
	for {
		switch lexer.currentChar {
		case ' ', '\r', '\t':
			lexer.readChar()
		case '\n':
			lexer.line++
			lexer.readChar()
		case '/':
			if lexer.peekNext() == '/' {
				for lexer.currentChar != '\n' && !lexer.isFinished() {
					lexer.readChar()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (lexer *Lexer) makeToken(tokenType token.TokenType) token.Token {
	lexeme := string(lexer.characters[lexer.start : lexer.position-1])
	return token.New(tokenType, lexeme, lexer.line)
}

// number scans a decimal float literal: digits, optionally followed by a
// single '.' and more digits. A leading '.' is never reached from here — the
// caller only dispatches into number() on a leading digit — so "." alone is
// handled at the call site as a compile error, per spec.
func (lexer *Lexer) number() token.Token {
	for isDigit(lexer.currentChar) {
		lexer.readChar()
	}
	if lexer.currentChar == '.' && isDigit(lexer.peekNext()) {
		lexer.readChar() // consume '.'
		for isDigit(lexer.currentChar) {
			lexer.readChar()
		}
	}
	return lexer.makeToken(token.NUMBER)
}

func (lexer *Lexer) identifier() token.Token {
	for isLetter(lexer.currentChar) || isDigit(lexer.currentChar) {
		lexer.readChar()
	}
	lexeme := string(lexer.characters[lexer.start : lexer.position-1])
	tokenType, ok := token.KeyWords[lexeme]
	if !ok {
		tokenType = token.IDENTIFIER
	}
	return token.New(tokenType, lexeme, lexer.line)
}

// string scans a string literal. Newlines are permitted inside (and counted
// towards line tracking); an unterminated string yields an ERROR token
// reported at the line the string began on.
func (lexer *Lexer) string() token.Token {
	startLine := lexer.line
	for lexer.currentChar != '"' && !lexer.isFinished() {
		if lexer.currentChar == '\n' {
			lexer.line++
		}
		lexer.readChar()
	}
	if lexer.isFinished() {
		return token.NewError("Unterminated string.", startLine)
	}
	lexer.readChar() // consume closing '"'
	// exclude the surrounding quotes from the lexeme
	value := string(lexer.characters[lexer.start+1 : lexer.position-2])
	return token.New(token.STRING, value, startLine)
}

// NextToken scans and returns the next token from the input, advancing past
// it. The final token returned for any input is always EOF.
func (lexer *Lexer) NextToken() token.Token {
	lexer.skipWhiteSpaceAndComments()

	lexer.start = lexer.position - 1
	if lexer.isFinished() {
		return token.New(token.EOF, "", lexer.line)
	}

	char := lexer.currentChar
	lexer.readChar()

	if isLetter(char) {
		return lexer.identifier()
	}
	if isDigit(char) {
		return lexer.number()
	}

	switch char {
	case '(':
		return lexer.makeToken(token.LPA)
	case ')':
		return lexer.makeToken(token.RPA)
	case '{':
		return lexer.makeToken(token.LCUR)
	case '}':
		return lexer.makeToken(token.RCUR)
	case ';':
		return lexer.makeToken(token.SEMICOLON)
	case ',':
		return lexer.makeToken(token.COMMA)
	case '.':
		return lexer.makeToken(token.DOT)
	case '-':
		return lexer.makeToken(token.SUB)
	case '+':
		return lexer.makeToken(token.ADD)
	case '/':
		return lexer.makeToken(token.DIV)
	case '*':
		return lexer.makeToken(token.MULT)
	case '!':
		if lexer.isMatch('=') {
			return lexer.makeToken(token.NOT_EQUAL)
		}
		return lexer.makeToken(token.BANG)
	case '=':
		if lexer.isMatch('=') {
			return lexer.makeToken(token.EQUAL_EQUAL)
		}
		return lexer.makeToken(token.ASSIGN)
	case '<':
		if lexer.isMatch('=') {
			return lexer.makeToken(token.LESS_EQUAL)
		}
		return lexer.makeToken(token.LESS)
	case '>':
		if lexer.isMatch('=') {
			return lexer.makeToken(token.LARGER_EQUAL)
		}
		return lexer.makeToken(token.LARGER)
	case '"':
		return lexer.string()
	}

	return token.NewError("Unexpected character.", lexer.line)
}
