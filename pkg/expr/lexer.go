package expr

type tokenType int

const (
	// Special tokens
	tokenIllegal tokenType = iota
	tokenEOF

	// Literals
	tokenIdent  // attribute references
	tokenInt    // integers
	tokenFloat  // floating point numbers
	tokenString // string literals

	// Keywords
	tokenTrue
	tokenFalse

	// Operators
	tokenEq    // ==
	tokenNotEq // !=
	tokenLT    // <
	tokenGT    // >
	tokenLTE   // <=
	tokenGTE   // >=
	tokenAnd   // &&
	tokenOr    // ||
	tokenNot   // !

	// Delimiters
	tokenLParen // (
	tokenRParen // )
)

func (t tokenType) String() string {
	switch t {
	case tokenIllegal:
		return "ILLEGAL"
	case tokenEOF:
		return "EOF"
	case tokenIdent:
		return "IDENT"
	case tokenInt:
		return "INT"
	case tokenFloat:
		return "FLOAT"
	case tokenString:
		return "STRING"
	case tokenTrue:
		return "true"
	case tokenFalse:
		return "false"
	case tokenEq:
		return "=="
	case tokenNotEq:
		return "!="
	case tokenLT:
		return "<"
	case tokenGT:
		return ">"
	case tokenLTE:
		return "<="
	case tokenGTE:
		return ">="
	case tokenAnd:
		return "&&"
	case tokenOr:
		return "||"
	case tokenNot:
		return "!"
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	default:
		return "UNKNOWN"
	}
}

type token struct {
	typ      tokenType
	literal  string
	position int
}

var keywords = map[string]tokenType{
	"true":  tokenTrue,
	"false": tokenFalse,
}

type lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *lexer) nextToken() token {
	l.skipWhitespace()

	tok := token{position: l.position}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok.typ, tok.literal = tokenEq, "=="
		} else {
			tok.typ, tok.literal = tokenIllegal, string(l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok.typ, tok.literal = tokenNotEq, "!="
		} else {
			tok.typ, tok.literal = tokenNot, "!"
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok.typ, tok.literal = tokenLTE, "<="
		} else {
			tok.typ, tok.literal = tokenLT, "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.typ, tok.literal = tokenGTE, ">="
		} else {
			tok.typ, tok.literal = tokenGT, ">"
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok.typ, tok.literal = tokenAnd, "&&"
		} else {
			tok.typ, tok.literal = tokenIllegal, string(l.ch)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok.typ, tok.literal = tokenOr, "||"
		} else {
			tok.typ, tok.literal = tokenIllegal, string(l.ch)
		}
	case '(':
		tok.typ, tok.literal = tokenLParen, "("
	case ')':
		tok.typ, tok.literal = tokenRParen, ")"
	case '"':
		literal, terminated := l.readString()
		if !terminated {
			tok.typ, tok.literal = tokenIllegal, literal
			break
		}
		tok.typ, tok.literal = tokenString, literal
	case 0:
		tok.typ, tok.literal = tokenEOF, ""
	default:
		if isLetter(l.ch) {
			tok.literal = l.readIdentifier()
			tok.typ = lookupIdent(tok.literal)
			return tok
		}
		if isDigit(l.ch) {
			tok.typ, tok.literal = l.readNumber()
			return tok
		}
		tok.typ, tok.literal = tokenIllegal, string(l.ch)
	}

	l.readChar()
	return tok
}

func (l *lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *lexer) readNumber() (tokenType, string) {
	position := l.position
	typ := tokenInt

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = tokenFloat
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return typ, l.input[position:l.position]
}

func (l *lexer) readString() (string, bool) {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' {
			return l.input[position:l.position], true
		}
		if l.ch == 0 {
			return l.input[position:l.position], false
		}
	}
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func lookupIdent(ident string) tokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return tokenIdent
}
