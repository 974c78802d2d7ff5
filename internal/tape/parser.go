package tape

import (
	"fmt"
)

// Parser parses .tape files into commands
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Parse parses the entire tape file and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		// Skip newlines
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if !ok {
			p.skipToNextLine()
			continue
		}

		commands = append(commands, cmd)
		p.expectEndOfLine()
	}

	return commands
}

// parseCommand parses a single command
func (p *Parser) parseCommand() (Command, bool) {
	switch p.curTok.Type {
	case TOKEN_SIZE:
		return p.parseNumbers(CommandType_Size, 2, 2)
	case TOKEN_WRITE:
		return p.parseStringCommand(CommandType_Write, false)
	case TOKEN_DOWN:
		return p.parseNumbers(CommandType_Down, 2, 2)
	case TOKEN_MOVE:
		return p.parseNumbers(CommandType_Move, 2, 2)
	case TOKEN_UP:
		return p.parseNumbers(CommandType_Up, 2, 2)
	case TOKEN_TAP:
		return p.parseNumbers(CommandType_Tap, 2, 2)
	case TOKEN_SWIPE:
		return p.parseSwipeCommand()
	case TOKEN_TYPE:
		return p.parseStringCommand(CommandType_Type, true)
	case TOKEN_BACKSPACE:
		return p.parseNumbers(CommandType_Backspace, 0, 1)
	case TOKEN_SUBMIT:
		return p.parseNumbers(CommandType_Submit, 0, 0)
	case TOKEN_CANCEL:
		return p.parseNumbers(CommandType_Cancel, 0, 0)
	case TOKEN_SLEEP:
		return p.parseDurationCommand(CommandType_Sleep, true)
	case TOKEN_TICK:
		return p.parseNumbers(CommandType_Tick, 0, 1)
	case TOKEN_WAIT:
		return p.parseDurationCommand(CommandType_Wait, false)
	case TOKEN_PRINT:
		return p.parseNumbers(CommandType_Print, 0, 0)
	case TOKEN_SET:
		return p.parseSetCommand()
	case TOKEN_OUTPUT:
		return p.parseOutputCommand()
	default:
		p.addError(fmt.Sprintf("unexpected token: %v %q", p.curTok.Type, p.curTok.Literal))
		return Command{}, false
	}
}

// newCommand starts a command at the current token and consumes it
func (p *Parser) newCommand(cmdType CommandType) Command {
	cmd := Command{
		Type:   cmdType,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}
	p.nextToken()
	return cmd
}

// parseNumbers parses commands taking between minArgs and maxArgs numbers
func (p *Parser) parseNumbers(cmdType CommandType, minArgs, maxArgs int) (Command, bool) {
	cmd := p.newCommand(cmdType)

	for len(cmd.Args) < maxArgs && p.curTok.Type == TOKEN_NUMBER {
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}

	if len(cmd.Args) < minArgs {
		p.addError(fmt.Sprintf("%s expects %d numbers, got %d", cmdType, minArgs, len(cmd.Args)))
		return cmd, false
	}
	return cmd, true
}

// parseStringCommand parses Write "text" and Type[@<duration>] "text"
func (p *Parser) parseStringCommand(cmdType CommandType, allowDelay bool) (Command, bool) {
	cmd := p.newCommand(cmdType)

	// Check for optional speed modifier (@<duration>)
	if allowDelay && p.curTok.Type == TOKEN_AT {
		p.nextToken()
		if p.curTok.Type != TOKEN_DURATION {
			p.addError("expected duration after @")
			return cmd, false
		}
		duration, err := ParseDuration(p.curTok.Literal)
		if err != nil {
			p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
			return cmd, false
		}
		cmd.Delay = duration
		p.nextToken()
	}

	if p.curTok.Type != TOKEN_STRING {
		p.addError(fmt.Sprintf("%s command expects a string, got %v", cmdType, p.curTok.Type))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	p.nextToken()
	return cmd, true
}

// parseDurationCommand parses Sleep <duration> and Wait [<duration>]
func (p *Parser) parseDurationCommand(cmdType CommandType, required bool) (Command, bool) {
	cmd := p.newCommand(cmdType)

	if p.curTok.Type != TOKEN_DURATION {
		if required {
			p.addError(fmt.Sprintf("%s command expects a duration, got %v", cmdType, p.curTok.Type))
			return cmd, false
		}
		return cmd, true
	}

	duration, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Delay = duration
	p.nextToken()
	return cmd, true
}

// parseSwipeCommand parses Swipe <direction> [distance]
func (p *Parser) parseSwipeCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Swipe)

	if !p.curTok.Type.IsDirection() {
		p.addError(fmt.Sprintf("Swipe expects Left, Right, Up or Down, got %q", p.curTok.Literal))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	p.nextToken()

	if p.curTok.Type == TOKEN_NUMBER {
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}
	return cmd, true
}

// parseSetCommand parses Set <key> <value> commands
func (p *Parser) parseSetCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Set)

	if p.curTok.Type != TOKEN_IDENTIFIER {
		p.addError("Set command expects a key")
		return cmd, false
	}
	key := p.curTok.Literal
	p.nextToken()

	switch p.curTok.Type {
	case TOKEN_IDENTIFIER, TOKEN_STRING, TOKEN_NUMBER, TOKEN_DURATION:
		cmd.Args = []string{key, p.curTok.Literal}
		p.nextToken()
		return cmd, true
	default:
		p.addError("Set command expects a value")
		return cmd, false
	}
}

// parseOutputCommand parses Output <file> commands
func (p *Parser) parseOutputCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Output)

	if p.curTok.Type != TOKEN_STRING && p.curTok.Type != TOKEN_IDENTIFIER {
		p.addError("Output command expects a filename")
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	p.nextToken()
	return cmd, true
}

// expectEndOfLine reports trailing tokens after a command
func (p *Parser) expectEndOfLine() {
	if p.curTok.Type == TOKEN_NEWLINE || p.curTok.Type == TOKEN_EOF {
		return
	}
	p.addError(fmt.Sprintf("unexpected %v %q after command", p.curTok.Type, p.curTok.Literal))
	p.skipToNextLine()
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseFile parses a tape file from a string
func ParseFile(content string) ([]Command, []string) {
	l := New(content)
	p := NewParser(l)
	commands := p.Parse()
	return commands, p.Errors()
}
