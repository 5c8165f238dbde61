package sema

// suggestionMaxDistance is the fixed closeness threshold for "did you mean"
// suggestions. A candidate also qualifies when its distance is at most half
// the length of the shorter name, which lets long field names tolerate
// proportionally more typos.
const suggestionMaxDistance = 2

// closestField picks the accessible field nearest to target by edit
// distance, provided it meets the closeness threshold. Candidates are
// scanned in declaration order and ties keep the earliest match.
func closestField(target string, candidates []string) (string, bool) {
	best := ""
	bestDist := -1
	for _, candidate := range candidates {
		d := editDistance(target, candidate)
		if !withinThreshold(d, target, candidate) {
			continue
		}
		if bestDist == -1 || d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best, bestDist != -1
}

func withinThreshold(dist int, a, b string) bool {
	if dist <= suggestionMaxDistance {
		return true
	}
	shorter := len([]rune(a))
	if lb := len([]rune(b)); lb < shorter {
		shorter = lb
	}
	return 2*dist <= shorter
}

// editDistance computes the Damerau-Levenshtein distance (optimal string
// alignment: insert, delete, substitute, transpose adjacent) over runes.
// Candidate sets are tiny, so the quadratic table is fine.
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	rows := len(ra) + 1
	cols := len(rb) + 1
	d := make([][]int, rows)
	for i := range d {
		d[i] = make([]int, cols)
		d[i][0] = i
	}
	for j := 1; j < cols; j++ {
		d[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			best := d[i-1][j] + 1 // deletion
			if ins := d[i][j-1] + 1; ins < best {
				best = ins
			}
			if sub := d[i-1][j-1] + cost; sub < best {
				best = sub
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if tr := d[i-2][j-2] + 1; tr < best {
					best = tr
				}
			}
			d[i][j] = best
		}
	}
	return d[rows-1][cols-1]
}
