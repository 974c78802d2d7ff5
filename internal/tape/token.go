package tape

// TokenType represents the type of a token in a .tape file
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Symbols
	TOKEN_AT TokenType = "AT"

	// Commands - Grid
	TOKEN_SIZE  TokenType = "Size"
	TOKEN_WRITE TokenType = "Write"

	// Commands - Pointer
	TOKEN_DOWN TokenType = "Down"
	TOKEN_MOVE TokenType = "Move"
	TOKEN_UP   TokenType = "Up"
	TOKEN_TAP  TokenType = "Tap"

	// Commands - Touch
	TOKEN_SWIPE TokenType = "Swipe"
	TOKEN_LEFT  TokenType = "Left"
	TOKEN_RIGHT TokenType = "Right"

	// Commands - Keyboard
	TOKEN_TYPE      TokenType = "Type"
	TOKEN_BACKSPACE TokenType = "Backspace"
	TOKEN_SUBMIT    TokenType = "Submit"
	TOKEN_CANCEL    TokenType = "Cancel"

	// Commands - Time
	TOKEN_SLEEP TokenType = "Sleep"
	TOKEN_TICK  TokenType = "Tick"
	TOKEN_WAIT  TokenType = "Wait"

	// Commands - Output and settings
	TOKEN_PRINT  TokenType = "Print"
	TOKEN_SET    TokenType = "Set"
	TOKEN_OUTPUT TokenType = "Output"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type starts a command
func (tt TokenType) IsCommand() bool {
	switch tt {
	case TOKEN_SIZE, TOKEN_WRITE,
		TOKEN_DOWN, TOKEN_MOVE, TOKEN_UP, TOKEN_TAP,
		TOKEN_SWIPE,
		TOKEN_TYPE, TOKEN_BACKSPACE, TOKEN_SUBMIT, TOKEN_CANCEL,
		TOKEN_SLEEP, TOKEN_TICK, TOKEN_WAIT,
		TOKEN_PRINT, TOKEN_SET, TOKEN_OUTPUT:
		return true
	}
	return false
}

// IsDirection returns true if the token names a swipe direction
func (tt TokenType) IsDirection() bool {
	switch tt {
	case TOKEN_UP, TOKEN_DOWN, TOKEN_LEFT, TOKEN_RIGHT:
		return true
	}
	return false
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	// Grid
	"Size":  TOKEN_SIZE,
	"Write": TOKEN_WRITE,

	// Pointer
	"Down": TOKEN_DOWN,
	"Move": TOKEN_MOVE,
	"Up":   TOKEN_UP,
	"Tap":  TOKEN_TAP,

	// Touch
	"Swipe": TOKEN_SWIPE,
	"Left":  TOKEN_LEFT,
	"Right": TOKEN_RIGHT,

	// Keyboard
	"Type":      TOKEN_TYPE,
	"Backspace": TOKEN_BACKSPACE,
	"Submit":    TOKEN_SUBMIT,
	"Cancel":    TOKEN_CANCEL,

	// Time
	"Sleep": TOKEN_SLEEP,
	"Tick":  TOKEN_TICK,
	"Wait":  TOKEN_WAIT,

	// Output and settings
	"Print":  TOKEN_PRINT,
	"Set":    TOKEN_SET,
	"Output": TOKEN_OUTPUT,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
