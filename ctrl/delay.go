package ctrl

// Delay models a single clocked register: a value staged during one
// cycle appears at the output only after the next clock edge. The block
// RAM controllers use it for their registered empty flag and for the
// one-cycle read data path.
type Delay[T any] struct {
	staged T
	out    T
}

// Stage sets the value the register will capture at the next clock
// edge. Staging may happen any number of times before the edge; the
// last value wins.
func (d *Delay[T]) Stage(v T) {
	d.staged = v
}

// Clock applies the clock edge, moving the staged value to the output.
func (d *Delay[T]) Clock() {
	d.out = d.staged
}

// Out returns the value captured at the most recent clock edge.
func (d *Delay[T]) Out() T {
	return d.out
}

// Reset forces both the staged value and the output to v.
func (d *Delay[T]) Reset(v T) {
	d.staged = v
	d.out = v
}
