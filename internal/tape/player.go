package tape

// Player hands out the commands of a parsed script in order.
type Player struct {
	commands []Command
	next     int
}

func NewPlayer(commands []Command) *Player {
	return &Player{commands: commands}
}

// Next returns the next command and moves past it. ok is false once every
// command has been handed out.
func (p *Player) Next() (cmd *Command, ok bool) {
	if p.next >= len(p.commands) {
		return nil, false
	}
	cmd = &p.commands[p.next]
	p.next++
	return cmd, true
}

// Position is the 1-based index of the command last returned by Next.
func (p *Player) Position() int { return p.next }

func (p *Player) Len() int { return len(p.commands) }
