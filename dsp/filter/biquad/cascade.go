package biquad

// MaxStages is the number of second-order stages a Cascade holds.
const MaxStages = 4

// CascadeCoefficients is a fixed-capacity list of stage coefficients. Only the
// first N entries are meaningful. It is a value type so designers can return
// it without allocating.
type CascadeCoefficients struct {
	Stages [MaxStages]Coefficients
	N      int
}

// Active returns the meaningful prefix of Stages.
func (cc *CascadeCoefficients) Active() []Coefficients {
	return cc.Stages[:clampStages(cc.N)]
}

// Cascade runs up to MaxStages sections in series. Stages at index >= the
// active count are bypassed: they contribute an identity transfer and their
// history is left untouched until they are activated again.
type Cascade struct {
	stages [MaxStages]Section
	active int
}

// Configure installs cc and sets the active count to cc.N (clamped to
// 0..MaxStages). Stages that stay active keep their history. Stages that
// were bypassed and become active start from zero history.
func (c *Cascade) Configure(cc CascadeCoefficients) {
	n := clampStages(cc.N)

	for i := c.active; i < n; i++ {
		c.stages[i].Reset()
	}

	for i := 0; i < n; i++ {
		c.stages[i].SetCoefficients(cc.Stages[i])
	}

	c.active = n
}

// ActiveStages returns the number of stages in the signal path.
func (c *Cascade) ActiveStages() int {
	return c.active
}

// IsBypassed reports whether stage i is outside the signal path.
func (c *Cascade) IsBypassed(i int) bool {
	return i >= c.active
}

// Stage returns a pointer to stage i for inspection.
func (c *Cascade) Stage(i int) *Section {
	return &c.stages[i]
}

// ProcessSample threads x through the active stages.
func (c *Cascade) ProcessSample(x float64) float64 {
	for i := 0; i < c.active; i++ {
		x = c.stages[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place, one active stage at a time.
func (c *Cascade) ProcessBlock(buf []float64) {
	for i := 0; i < c.active; i++ {
		c.stages[i].ProcessBlock(buf)
	}
}

// Reset clears the history of every stage, active or not.
func (c *Cascade) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}

// FlushDenormals flushes the history of the active stages.
func (c *Cascade) FlushDenormals() {
	for i := 0; i < c.active; i++ {
		c.stages[i].FlushDenormals()
	}
}

// Coefficients returns the installed coefficients of the active stages.
func (c *Cascade) Coefficients() CascadeCoefficients {
	var cc CascadeCoefficients
	cc.N = c.active
	for i := 0; i < c.active; i++ {
		cc.Stages[i] = c.stages[i].Coefficients
	}
	return cc
}

func clampStages(n int) int {
	return min(max(n, 0), MaxStages)
}
