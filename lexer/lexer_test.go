package lexer

import (
	"nilan/token"
	"testing"
)

func scanAll(source string) []token.Token {
	lex := New(source)
	var tokens []token.Token
	for {
		tok := lex.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func assertTypes(t *testing.T, tokens []token.Token, want []token.TokenType) {
	t.Helper()
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok.Type != want[i] {
			t.Errorf("token %d: got type %v, want %v (lexeme %q)", i, tok.Type, want[i], tok.Lexeme)
		}
	}
}

func TestOperators(t *testing.T) {
	tokens := scanAll("==/=*+>-<!=<=>=!!")
	assertTypes(t, tokens, []token.TokenType{
		token.EQUAL_EQUAL, token.DIV, token.ASSIGN, token.MULT, token.ADD,
		token.LARGER, token.SUB, token.LESS, token.NOT_EQUAL, token.LESS_EQUAL,
		token.LARGER_EQUAL, token.BANG, token.BANG, token.EOF,
	})
}

func TestPunctuation(t *testing.T) {
	tokens := scanAll("(){}**;+!=<=")
	assertTypes(t, tokens, []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.MULT, token.MULT,
		token.SEMICOLON, token.ADD, token.NOT_EQUAL, token.LESS_EQUAL, token.EOF,
	})
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := scanAll("var x = foo and true or nil")
	assertTypes(t, tokens, []token.TokenType{
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER,
		token.AND, token.TRUE, token.OR, token.NIL, token.EOF,
	})
	if tokens[1].Lexeme != "x" || tokens[3].Lexeme != "foo" {
		t.Errorf("identifier lexemes not preserved: %v", tokens)
	}
}

func TestNumbers(t *testing.T) {
	tokens := scanAll("123 3.14 0")
	assertTypes(t, tokens, []token.TokenType{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF})
	lexemes := []string{"123", "3.14", "0"}
	for i, want := range lexemes {
		if tokens[i].Lexeme != want {
			t.Errorf("number %d lexeme = %q, want %q", i, tokens[i].Lexeme, want)
		}
	}
}

func TestLeadingDotIsNotANumber(t *testing.T) {
	tokens := scanAll(".5")
	assertTypes(t, tokens, []token.TokenType{token.DOT, token.NUMBER, token.EOF})
}

func TestStringLiteral(t *testing.T) {
	tokens := scanAll(`"hello world"`)
	assertTypes(t, tokens, []token.TokenType{token.STRING, token.EOF})
	if tokens[0].Lexeme != "hello world" {
		t.Errorf("string lexeme = %q, want %q", tokens[0].Lexeme, "hello world")
	}
}

func TestEmptyStringLiteral(t *testing.T) {
	tokens := scanAll(`""`)
	assertTypes(t, tokens, []token.TokenType{token.STRING, token.EOF})
	if tokens[0].Lexeme != "" {
		t.Errorf("string lexeme = %q, want empty", tokens[0].Lexeme)
	}
}

func TestStringLiteralSpansNewlines(t *testing.T) {
	lex := New("\"a\nb\"\nprint 1;")
	str := lex.NextToken()
	if str.Type != token.STRING || str.Lexeme != "a\nb" {
		t.Fatalf("got %v, want STRING 'a\\nb'", str)
	}
	next := lex.NextToken()
	if next.Type != token.PRINT || next.Line != 3 {
		t.Errorf("print token = %v, want PRINT on line 3", next)
	}
}

func TestUnterminatedString(t *testing.T) {
	tok := New(`"never closed`).NextToken()
	if tok.Type != token.ERROR || tok.Lexeme != "Unterminated string." {
		t.Errorf("got %v, want ERROR 'Unterminated string.'", tok)
	}
}

func TestLineComment(t *testing.T) {
	tokens := scanAll("1 // a comment\n2")
	assertTypes(t, tokens, []token.TokenType{token.NUMBER, token.NUMBER, token.EOF})
	if tokens[1].Line != 2 {
		t.Errorf("token after comment on line %d, want 2", tokens[1].Line)
	}
}

func TestLineTracking(t *testing.T) {
	tokens := scanAll("1\n2\n3")
	for i, want := range []int{1, 2, 3} {
		if tokens[i].Line != want {
			t.Errorf("token %d on line %d, want %d", i, tokens[i].Line, want)
		}
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tok := New("$").NextToken()
	if tok.Type != token.ERROR || tok.Lexeme != "Unexpected character." {
		t.Errorf("got %v, want ERROR 'Unexpected character.'", tok)
	}
}
