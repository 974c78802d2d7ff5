package tape

import (
	"testing"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "Type command",
			input:    `Type "hello"`,
			expected: []TokenType{TOKEN_TYPE, TOKEN_STRING, TOKEN_EOF},
		},
		{
			name:     "Sleep command",
			input:    `Sleep 500ms`,
			expected: []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Pointer command",
			input:    `Down 3 1`,
			expected: []TokenType{TOKEN_DOWN, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Swipe with distance",
			input:    `Swipe Left 4`,
			expected: []TokenType{TOKEN_SWIPE, TOKEN_LEFT, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Set command",
			input:    `Set LongPress 750ms`,
			expected: []TokenType{TOKEN_SET, TOKEN_IDENTIFIER, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Backtick is not a quote",
			input:    "Type `hi`",
			expected: []TokenType{TOKEN_TYPE, TOKEN_ILLEGAL, TOKEN_IDENTIFIER, TOKEN_ILLEGAL, TOKEN_EOF},
		},
		{
			name:     "Illegal character",
			input:    `Tap 1 ; 2`,
			expected: []TokenType{TOKEN_TAP, TOKEN_NUMBER, TOKEN_ILLEGAL, TOKEN_NUMBER, TOKEN_EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := tokenTypes(Tokenize(tt.input))

			if len(types) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.expected), len(types), types)
			}

			for i, expectedType := range tt.expected {
				if types[i] != expectedType {
					t.Errorf("Token %d: expected %v, got %v", i, expectedType, types[i])
				}
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{
			name:          "Double quoted string",
			input:         `Type "hello world"`,
			expectedValue: "hello world",
		},
		{
			name:          "Single quoted string",
			input:         `Type 'hello world'`,
			expectedValue: "hello world",
		},
		{
			name:          "Unterminated string",
			input:         `Type "hello`,
			expectedValue: "hello",
		},
		{
			name:          "Escaped quotes",
			input:         `Type "hello \"world\""`,
			expectedValue: `hello "world"`,
		},
		{
			name:          "Escaped newline",
			input:         `Write "one\ntwo"`,
			expectedValue: "one\ntwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			// Find the string token
			var stringToken Token
			for _, tok := range tokens {
				if tok.Type == TOKEN_STRING {
					stringToken = tok
					break
				}
			}

			if stringToken.Literal != tt.expectedValue {
				t.Errorf("Expected %q, got %q", tt.expectedValue, stringToken.Literal)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		typ      TokenType
	}{
		{"12", "12", TOKEN_NUMBER},
		{"2.5", "2.5", TOKEN_NUMBER},
		{"-1", "-1", TOKEN_NUMBER},
		{"-0.5", "-0.5", TOKEN_NUMBER},
		{"500ms", "500ms", TOKEN_DURATION},
		{"1.5s", "1.5s", TOKEN_DURATION},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != 2 {
				t.Fatalf("Expected 2 tokens, got %d", len(tokens))
			}
			if tokens[0].Type != tt.typ || tokens[0].Literal != tt.expected {
				t.Errorf("Expected %v %q, got %v %q", tt.typ, tt.expected, tokens[0].Type, tokens[0].Literal)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	input := `# This is a comment
Tap 1 1 # trailing comment
# Another comment
Print`

	types := tokenTypes(Tokenize(input))
	expected := []TokenType{
		TOKEN_NEWLINE,
		TOKEN_TAP, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_NEWLINE,
		TOKEN_NEWLINE,
		TOKEN_PRINT, TOKEN_EOF,
	}

	if len(types) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(types), types)
	}

	for i, expectedType := range expected {
		if types[i] != expectedType {
			t.Errorf("Token %d: expected %v, got %v", i, expectedType, types[i])
		}
	}
}

func TestLexerLineNumbers(t *testing.T) {
	input := `Tap 1 1
Swipe Up

Print`

	tokens := Tokenize(input)

	var commands []Token
	for _, tok := range tokens {
		if tok.Type.IsCommand() {
			commands = append(commands, tok)
		}
	}

	expected := []struct {
		line, column int
	}{
		{1, 1},
		{2, 1},
		{4, 1},
	}

	if len(commands) != len(expected) {
		t.Fatalf("Expected %d command tokens, got %d", len(expected), len(commands))
	}

	for i, want := range expected {
		if commands[i].Line != want.line || commands[i].Column != want.column {
			t.Errorf("Token %d: expected %d:%d, got %d:%d",
				i, want.line, want.column, commands[i].Line, commands[i].Column)
		}
	}

	// The direction after Swipe sits at column 7
	for _, tok := range tokens {
		if tok.Type == TOKEN_UP && tok.Column != 7 {
			t.Errorf("Expected Up at column 7, got %d", tok.Column)
		}
	}
}

func TestLexerAtModifier(t *testing.T) {
	types := tokenTypes(Tokenize(`Type@50ms "hi"`))
	expected := []TokenType{TOKEN_TYPE, TOKEN_AT, TOKEN_DURATION, TOKEN_STRING, TOKEN_EOF}

	if len(types) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(types), types)
	}
	for i, expectedType := range expected {
		if types[i] != expectedType {
			t.Errorf("Token %d: expected %v, got %v", i, expectedType, types[i])
		}
	}
}

func TestKeywordTokenMap(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		expected TokenType
	}{
		{"Type", "Type", TOKEN_TYPE},
		{"Sleep", "Sleep", TOKEN_SLEEP},
		{"Swipe", "Swipe", TOKEN_SWIPE},
		{"Right", "Right", TOKEN_RIGHT},
		{"Lowercase", "tap", TOKEN_IDENTIFIER},
		{"Unknown", "UnknownKeyword", TOKEN_IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenType := LookupKeyword(tt.keyword)
			if tokenType != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tokenType)
			}
		})
	}
}

func TestTokenTypeHelpers(t *testing.T) {
	t.Run("IsCommand", func(t *testing.T) {
		if !TOKEN_TYPE.IsCommand() {
			t.Error("TOKEN_TYPE should be a command")
		}
		if TOKEN_LEFT.IsCommand() {
			t.Error("TOKEN_LEFT should not be a command")
		}
		if TOKEN_STRING.IsCommand() {
			t.Error("TOKEN_STRING should not be a command")
		}
	})

	t.Run("IsDirection", func(t *testing.T) {
		for _, tt := range []TokenType{TOKEN_UP, TOKEN_DOWN, TOKEN_LEFT, TOKEN_RIGHT} {
			if !tt.IsDirection() {
				t.Errorf("%v should be a direction", tt)
			}
		}
		if TOKEN_TAP.IsDirection() {
			t.Error("TOKEN_TAP should not be a direction")
		}
	})
}
