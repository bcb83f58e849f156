package realm

import "fmt"

// Job is an assignable population bucket.
type Job string

const (
	Farmers    Job = "farmers"
	Miners     Job = "miners"
	Craftsmen  Job = "craftsmen"
	Soldiers   Job = "soldiers"
	Unemployed Job = "unemployed"
)

// Removal orders for population loss.
var (
	// DeclineOrder drains people who leave over low satisfaction.
	DeclineOrder = []Job{Unemployed, Farmers, Miners, Craftsmen}
	// StarvationOrder drains the dead of a famine; soldiers starve last.
	StarvationOrder = []Job{Unemployed, Farmers, Miners, Craftsmen, Soldiers}
)

// ParseJob validates an assignable job name.
func ParseJob(name string) (Job, error) {
	switch j := Job(name); j {
	case Farmers, Miners, Craftsmen, Soldiers:
		return j, nil
	}
	return "", fmt.Errorf("unknown job %q", name)
}

// Population is the nation's people by occupation.
// Total always equals the sum of the five buckets.
type Population struct {
	Total      int `json:"total"`
	Farmers    int `json:"farmers"`
	Miners     int `json:"miners"`
	Craftsmen  int `json:"craftsmen"`
	Soldiers   int `json:"soldiers"`
	Unemployed int `json:"unemployed"`
}

// Sum adds up the buckets.
func (p Population) Sum() int {
	return p.Farmers + p.Miners + p.Craftsmen + p.Soldiers + p.Unemployed
}

// Recount restores Total from the buckets.
func (p *Population) Recount() {
	p.Total = p.Sum()
}

// Civilians returns everyone who is not a soldier.
func (p Population) Civilians() int {
	return p.Total - p.Soldiers
}

// Count returns the size of a bucket.
func (p Population) Count(j Job) int {
	if b := (&p).bucket(j); b != nil {
		return *b
	}
	return 0
}

func (p *Population) bucket(j Job) *int {
	switch j {
	case Farmers:
		return &p.Farmers
	case Miners:
		return &p.Miners
	case Craftsmen:
		return &p.Craftsmen
	case Soldiers:
		return &p.Soldiers
	case Unemployed:
		return &p.Unemployed
	}
	return nil
}

// Grow adds n newcomers to the unemployed.
func (p *Population) Grow(n int) {
	if n <= 0 {
		return
	}
	p.Unemployed += n
	p.Recount()
}

// Remove takes up to n people from the buckets in order and returns how
// many were actually removed. No bucket goes below zero.
func (p *Population) Remove(n int, order []Job) int {
	removed := 0
	for _, j := range order {
		if removed >= n {
			break
		}
		b := p.bucket(j)
		take := min(*b, n-removed)
		*b -= take
		removed += take
	}
	p.Recount()
	return removed
}

// Reassign sets job to count, moving the difference to or from the
// unemployed. It fails without mutating if that would leave Unemployed
// negative.
func (p *Population) Reassign(j Job, count int) error {
	if count < 0 {
		return fmt.Errorf("count must not be negative")
	}
	b := p.bucket(j)
	if b == nil || j == Unemployed {
		return fmt.Errorf("unknown job %q", j)
	}
	delta := count - *b
	if p.Unemployed-delta < 0 {
		return fmt.Errorf("only %d unemployed available, %d needed", p.Unemployed, delta)
	}
	*b = count
	p.Unemployed -= delta
	p.Recount()
	return nil
}
