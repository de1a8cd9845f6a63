package annotate

// Pending holds decorator blocks in source order until a declaration
// claims them. A multi-line decorator is stored as one newline-joined block.
type Pending struct {
	blocks []string
}

// Push appends a decorator block.
func (p *Pending) Push(text string) {
	p.blocks = append(p.blocks, text)
}

// Flush returns all pending blocks and leaves p empty.
func (p *Pending) Flush() []string {
	blocks := p.blocks
	p.blocks = nil
	return blocks
}

// IsEmpty reports whether no decorator is pending.
func (p *Pending) IsEmpty() bool {
	return len(p.blocks) == 0
}
