package layout

// paragraphShare is the fraction of groups a font size must exceed to
// count as body text.
const paragraphShare = 0.4

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// mode returns the most frequent value. Ties go to the value seen first.
// The mode of nothing is 0.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	best, bestCount := 0.0, 0
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if c := counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

// paragraphFontSizes returns, in first-seen order, every size that makes
// up more than 40% of sizes.
func paragraphFontSizes(sizes []float64) []float64 {
	if len(sizes) == 0 {
		return nil
	}
	counts := make(map[float64]int, len(sizes))
	var order []float64
	for _, s := range sizes {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	var out []float64
	total := float64(len(sizes))
	for _, s := range order {
		if float64(counts[s])/total > paragraphShare {
			out = append(out, s)
		}
	}
	return out
}

func containsSize(sizes []float64, size float64) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}

func minSize(sizes []float64, fallback float64) float64 {
	if len(sizes) == 0 {
		return fallback
	}
	m := sizes[0]
	for _, s := range sizes[1:] {
		if s < m {
			m = s
		}
	}
	return m
}
