package algorithms

import "context"

// String matching strategies return every starting offset of pattern in
// text, overlapping occurrences included. Offsets are byte offsets.

func NaiveSearch(ctx context.Context, text, pattern string) []int {
	counter := newStepCounter(ctx)
	matches := make([]int, 0)
	n, m := len(text), len(pattern)
	if m == 0 {
		return matches
	}

	for i := 0; i+m <= n; i++ {
		counter.tick()
		if text[i:i+m] == pattern {
			matches = append(matches, i)
		}
	}
	return matches
}

func KMPSearch(ctx context.Context, text, pattern string) []int {
	counter := newStepCounter(ctx)
	matches := make([]int, 0)
	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		return matches
	}

	lps := longestPrefixSuffix(pattern)

	i, j := 0, 0
	for i < n {
		counter.tick()
		if text[i] == pattern[j] {
			i++
			j++
			if j == m {
				matches = append(matches, i-j)
				j = lps[j-1]
			}
		} else if j != 0 {
			j = lps[j-1]
		} else {
			i++
		}
	}
	return matches
}

func longestPrefixSuffix(pattern string) []int {
	lps := make([]int, len(pattern))
	length := 0
	for i := 1; i < len(pattern); {
		if pattern[i] == pattern[length] {
			length++
			lps[i] = length
			i++
		} else if length != 0 {
			length = lps[length-1]
		} else {
			lps[i] = 0
			i++
		}
	}
	return lps
}

func RabinKarp(ctx context.Context, text, pattern string) []int {
	counter := newStepCounter(ctx)
	const (
		base  = 256
		prime = 101
	)

	matches := make([]int, 0)
	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		return matches
	}

	h := 1
	for i := 0; i < m-1; i++ {
		h = (h * base) % prime
	}

	patternHash, windowHash := 0, 0
	for i := 0; i < m; i++ {
		patternHash = (base*patternHash + int(pattern[i])) % prime
		windowHash = (base*windowHash + int(text[i])) % prime
	}

	for i := 0; i+m <= n; i++ {
		counter.tick()
		if patternHash == windowHash && text[i:i+m] == pattern {
			matches = append(matches, i)
		}
		if i+m < n {
			windowHash = (base*(windowHash-int(text[i])*h) + int(text[i+m])) % prime
			if windowHash < 0 {
				windowHash += prime
			}
		}
	}
	return matches
}

// BoyerMoore uses the bad character rule (Horspool shift). After a match it
// advances by one so overlapping occurrences are reported.
func BoyerMoore(ctx context.Context, text, pattern string) []int {
	counter := newStepCounter(ctx)
	matches := make([]int, 0)
	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		return matches
	}

	var shift [256]int
	for i := range shift {
		shift[i] = m
	}
	for i := 0; i < m-1; i++ {
		shift[pattern[i]] = m - 1 - i
	}

	for i := 0; i <= n-m; {
		counter.tick()
		j := m - 1
		for j >= 0 && pattern[j] == text[i+j] {
			counter.tick()
			j--
		}
		if j < 0 {
			matches = append(matches, i)
			i++
			continue
		}
		i += shift[text[i+m-1]]
	}
	return matches
}
