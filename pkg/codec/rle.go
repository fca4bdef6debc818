package codec

// Run is one run-length entry: Value repeated Length times, Length >= 1.
type Run[V comparable] struct {
	Value  V
	Length int
}

// RunLength folds samples into runs of identical consecutive values. A run
// is sealed when the value changes or when it reaches maxRun samples, so no
// returned run is longer than maxRun. An empty input yields no runs.
func RunLength[V comparable](samples []V, maxRun int) []Run[V] {
	if len(samples) == 0 {
		return nil
	}
	if maxRun < 1 {
		maxRun = 1
	}

	runs := make([]Run[V], 0, 16)
	current := Run[V]{Value: samples[0], Length: 1}
	for _, sample := range samples[1:] {
		if sample == current.Value && current.Length < maxRun {
			current.Length++
			continue
		}
		runs = append(runs, current)
		current = Run[V]{Value: sample, Length: 1}
	}

	return append(runs, current)
}
