package nn

/*
Position scorer: a small multilayer perceptron over the one-hot board
encoding (768 -> 256 ReLU -> 1). Only inference is supported, the weights
are either freshly initialized or loaded from a file written by Save.
*/

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

const HiddenSize = 256

var ErrShape = errors.New("nn: unexpected parameter shape")

type Network struct {
	w1 *mat.Dense    // HiddenSize x InputSize
	b1 *mat.VecDense // HiddenSize
	w2 *mat.VecDense // HiddenSize
	b2 *mat.VecDense // 1
}

// Network with weights drawn uniformly from (-1/sqrt(fan_in), 1/sqrt(fan_in))
func NewNetwork(seed uint64) *Network {
	r := rand.New(rand.NewSource(seed))
	uniform := func(n, fanIn int) []float64 {
		bound := 1 / math.Sqrt(float64(fanIn))
		data := make([]float64, n)
		for i := range data {
			data[i] = (2*r.Float64() - 1) * bound
		}
		return data
	}

	return &Network{
		w1: mat.NewDense(HiddenSize, InputSize, uniform(HiddenSize*InputSize, InputSize)),
		b1: mat.NewVecDense(HiddenSize, uniform(HiddenSize, InputSize)),
		w2: mat.NewVecDense(HiddenSize, uniform(HiddenSize, HiddenSize)),
		b2: mat.NewVecDense(1, uniform(1, HiddenSize)),
	}
}

// Output of the network for the encoded input, panics if len(x) != InputSize
func (n *Network) Forward(x []float64) float64 {
	if len(x) != InputSize {
		panic(errors.Wrapf(ErrShape, "input of size %d", len(x)))
	}

	hidden := mat.NewVecDense(HiddenSize, nil)
	hidden.MulVec(n.w1, mat.NewVecDense(InputSize, x))
	hidden.AddVec(hidden, n.b1)

	raw := hidden.RawVector().Data
	for i, v := range raw {
		raw[i] = max(0, v)
	}

	return mat.Dot(n.w2, hidden) + n.b2.AtVec(0)
}

// Score of the position
func (n *Network) Score(b PieceBoard) float64 {
	return n.Forward(Encode(b))
}

// Write the parameters in gonum's binary format
func (n *Network) Save(w io.Writer) error {
	if _, err := n.w1.MarshalBinaryTo(w); err != nil {
		return errors.Wrap(err, "nn: writing hidden weights")
	}
	for _, v := range []*mat.VecDense{n.b1, n.w2, n.b2} {
		if _, err := v.MarshalBinaryTo(w); err != nil {
			return errors.Wrap(err, "nn: writing parameters")
		}
	}
	return nil
}

// Read a network written by Save
func Load(r io.Reader) (*Network, error) {
	n := &Network{
		w1: &mat.Dense{},
		b1: &mat.VecDense{},
		w2: &mat.VecDense{},
		b2: &mat.VecDense{},
	}

	if _, err := n.w1.UnmarshalBinaryFrom(r); err != nil {
		return nil, errors.Wrap(err, "nn: reading hidden weights")
	}
	for _, v := range []*mat.VecDense{n.b1, n.w2, n.b2} {
		if _, err := v.UnmarshalBinaryFrom(r); err != nil {
			return nil, errors.Wrap(err, "nn: reading parameters")
		}
	}

	if rows, cols := n.w1.Dims(); rows != HiddenSize || cols != InputSize {
		return nil, errors.Wrapf(ErrShape, "hidden weights %dx%d", rows, cols)
	}
	if n.b1.Len() != HiddenSize || n.w2.Len() != HiddenSize || n.b2.Len() != 1 {
		return nil, errors.Wrapf(ErrShape, "vectors %d, %d, %d", n.b1.Len(), n.w2.Len(), n.b2.Len())
	}
	return n, nil
}
