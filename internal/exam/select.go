package exam

import (
	"math/rand/v2"

	"github.com/abhisek/studycentre/internal/quiz"
)

// SelectBalanced draws n questions from bank, spread as evenly as possible
// across categories. The first n%len(categories) categories receive one
// extra question. Categories that run short are topped up from whatever is
// left in the bank, and the final paper is shuffled.
//
// When categories is empty the draw is a plain random sample. When n is at
// least the bank size the whole bank is returned in random order. The result
// never contains the same question twice.
func SelectBalanced(bank []quiz.Question, n int, categories []string, rng *rand.Rand) []quiz.Question {
	if n <= 0 || len(bank) == 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if n >= len(bank) {
		out := append([]quiz.Question(nil), bank...)
		shuffle(out, rng)
		return out
	}

	if len(categories) == 0 {
		pool := append([]quiz.Question(nil), bank...)
		shuffle(pool, rng)
		return pool[:n]
	}

	byCategory := make(map[string][]int, len(categories))
	for i, q := range bank {
		byCategory[q.Category] = append(byCategory[q.Category], i)
	}

	taken := make([]bool, len(bank))
	out := make([]quiz.Question, 0, n)

	per, extra := n/len(categories), n%len(categories)
	for ci, cat := range categories {
		want := per
		if ci < extra {
			want++
		}
		idx := append([]int(nil), byCategory[cat]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for _, i := range idx {
			if want == 0 {
				break
			}
			if taken[i] {
				continue
			}
			taken[i] = true
			out = append(out, bank[i])
			want--
		}
	}

	// Top up from the rest of the bank when a category ran short.
	if len(out) < n {
		var rest []int
		for i := range bank {
			if !taken[i] {
				rest = append(rest, i)
			}
		}
		rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
		for _, i := range rest[:n-len(out)] {
			out = append(out, bank[i])
		}
	}

	shuffle(out, rng)
	return out
}

func shuffle(qs []quiz.Question, rng *rand.Rand) {
	rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}
