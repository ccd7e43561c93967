package textutil

// CosineSimilarity scores how much vocabulary two fingerprints share, in
// [0, 1]. The pipeline compares a chunk's script text against the text a
// synthesizer reported back to decide whether its timestamps are usable.
// A nil or zero-norm fingerprint scores 0; callers that cannot build a
// fingerprint at all should skip the comparison instead.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	// Walk the smaller vector; tokens absent from either side contribute
	// nothing to the dot product.
	small, large := a, b
	if len(b.tokens) < len(a.tokens) {
		small, large = b, a
	}
	var dot float64
	for token, count := range small.tokens {
		if other, ok := large.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}
