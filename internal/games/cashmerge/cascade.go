package cashmerge

// maxResolveCalls bounds a silent cascade. Every merge removes one tile, so a
// full board reaches its fixed point within this many resolver calls.
const maxResolveCalls = BoardSize * BoardSize

// CascadeResult is the fixed point of repeated merges.
type CascadeResult struct {
	Board       Board
	TotalScore  int
	TotalMerges int
	Steps       int // Resolver calls made, including the final no-op
	Merges      []Merge
}

// Cascade merges until no eligible pair remains, without presentation flags.
// Used for initial setup and for settling after an exchange.
func (r *Resolver) Cascade(b Board, ev *Event) CascadeResult {
	res := CascadeResult{Board: b}
	for range maxResolveCalls {
		step := r.resolve(res.Board, ev, false)
		res.Steps++
		if !step.Merged {
			break
		}
		res.Board = step.Board
		res.TotalScore += step.ScoreDelta
		res.TotalMerges++
		res.Merges = append(res.Merges, step.Merge)
	}
	return res
}
