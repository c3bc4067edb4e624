package nnue

// Network holds the single-hidden-layer Santorini NNUE weights: one
// feature-weight matrix shared across every feature slot, and one output
// row, quantized the way original_source/santorini_core/src/nnue.rs
// quantizes them (QA for the hidden layer, QB for the output layer).
type Network struct {
	FeatureWeights [FeatureCount][HiddenSize]int16
	FeatureBias    [HiddenSize]int16

	OutputWeights [HiddenSize]int16
	OutputBias    int16
}

// NewNetwork creates a network with zero weights (must load weights or
// init random before use).
func NewNetwork() *Network {
	return &Network{}
}

// screlu is the squared, clamped activation used in place of chess NNUE's
// clipped-ReLU: clamp(x, 0, QA)^2.
func screlu(x int16) int32 {
	v := int32(x)
	if v < 0 {
		v = 0
	} else if v > QA {
		v = QA
	}
	return v * v
}

// Forward computes the network's output for acc, in the same centipawn-like
// scale the search expects (positive favors whichever perspective built
// acc, per BuildFeatureArray).
func (n *Network) Forward(acc *Accumulator) int {
	var sum int64
	for i := 0; i < HiddenSize; i++ {
		sum += int64(screlu(acc.Vals[i])) * int64(n.OutputWeights[i])
	}

	// Undo the QA factor picked up by squaring, add the output bias (itself
	// in QA*QB units), then rescale from QA*QB fixed point to centipawns.
	sum = sum/QA + int64(n.OutputBias)
	return int(sum * Scale / (QA * QB))
}

// InitRandom initializes weights with small random values (for testing and
// tooling that has no trained weights file to load).
func (n *Network) InitRandom(seed int64) {
	state := uint64(seed)
	next := func() int16 {
		state = state*6364136223846793005 + 1442695040888963407
		return int16((state >> 48) & 0xFF) - 128
	}

	for i := 0; i < FeatureCount; i++ {
		for j := 0; j < HiddenSize; j++ {
			n.FeatureWeights[i][j] = next() >> 5
		}
	}
	for i := 0; i < HiddenSize; i++ {
		n.FeatureBias[i] = next() >> 3
		n.OutputWeights[i] = next() >> 5
	}
	n.OutputBias = next()
}
