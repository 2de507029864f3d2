package simulation

import "github.com/brianvoe/gofakeit/v7"

// Rand is the randomness the engine draws from. *gofakeit.Faker satisfies it,
// so a seeded faker makes generation and ticks reproducible.
type Rand interface {
	Float64Range(min, max float64) float64
	Number(min, max int) int
}

// Faker adds the name generators used by the mock generator.
type Faker interface {
	Rand
	FirstName() string
	LastName() string
}

// NewFaker returns a faker seeded with seed. Zero picks a random seed.
func NewFaker(seed uint64) *gofakeit.Faker {
	return gofakeit.New(seed)
}

func chance(r Rand, p float64) bool {
	return r.Float64Range(0, 1) < p
}

func pick[T any](r Rand, xs []T) T {
	return xs[r.Number(0, len(xs)-1)]
}
