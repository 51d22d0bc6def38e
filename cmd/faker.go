package cmd

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ── Word pools ──

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Lisa", "Daniel", "Nancy",
	"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
	"Steven", "Dorothy", "Paul", "Kimberly", "Andrew", "Emily", "Joshua", "Donna",
	"Kenneth", "Michelle", "Kevin", "Carol", "Brian", "Amanda", "George", "Melissa",
	"Timothy", "Deborah", "Ronald", "Stephanie", "Edward", "Rebecca", "Jason", "Sharon",
	"Jeffrey", "Laura", "Ryan", "Cynthia", "Jacob", "Kathleen", "Gary", "Amy",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill",
	"Flores", "Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell",
}

var countries = []string{
	"United States", "Canada", "United Kingdom", "Germany", "France", "Japan",
	"Australia", "Brazil", "India", "Mexico", "Italy", "Spain", "Netherlands",
	"Sweden", "Norway", "Denmark", "Finland", "Poland", "Czechia", "Austria",
	"Switzerland", "Belgium", "Portugal", "Ireland", "New Zealand", "Singapore",
	"South Korea", "Argentina", "Chile", "South Africa",
}

var cities = []string{
	"New York", "Toronto", "London", "Berlin", "Paris", "Tokyo", "Sydney",
	"Sao Paulo", "Mumbai", "Mexico City", "Milan", "Madrid", "Amsterdam",
	"Stockholm", "Oslo", "Copenhagen", "Helsinki", "Warsaw", "Prague", "Vienna",
	"Zurich", "Brussels", "Lisbon", "Dublin", "Auckland", "Seoul", "Buenos Aires",
	"Santiago", "Cape Town", "Austin",
}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "amet", "velit", "magna", "aliqua", "premium",
	"classic", "urban", "vintage", "modern", "cosmic", "alpine", "coastal",
	"retro", "minimal", "bold", "cozy", "rustic", "sleek", "electric", "golden",
	"silver", "crimson", "midnight", "arctic", "summer", "winter", "nomad",
	"atlas", "horizon", "ember", "willow", "canyon", "harbor", "meadow", "summit",
}

var emailDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "protonmail.com",
	"icloud.com", "mail.com", "fastmail.com", "zoho.com", "aol.com",
	"example.com", "test.com",
}

// ── Randomization context ──

// Faker is the seeded random-value source shared by every generator within
// one run. A fixed seed reproduces the full draw sequence; values drawn
// through the Unique* methods never repeat within a run.
type Faker struct {
	rng        *rand.Rand
	usedEmails map[string]struct{}
	usedSKUs   map[string]struct{}
}

func NewFaker(seed int64) *Faker {
	return &Faker{
		rng:        rand.New(rand.NewSource(seed)),
		usedEmails: make(map[string]struct{}),
		usedSKUs:   make(map[string]struct{}),
	}
}

// IntRange returns a random int in [lo, hi] inclusive.
func (f *Faker) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Intn(hi-lo+1)
}

func (f *Faker) Float(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Price returns a random amount in [lo, hi] truncated to cents.
func (f *Faker) Price(lo, hi float64) float64 {
	return float64(int(f.Float(lo, hi)*100)) / 100
}

// Chance runs a Bernoulli trial with probability p. Callers that may pass
// p == 0 must skip the call entirely so no draw is consumed (see genVariants).
func (f *Faker) Chance(p float64) bool {
	return f.rng.Float64() < p
}

func (f *Faker) Choice(pool []string) string {
	return pool[f.rng.Intn(len(pool))]
}

// WeightedChoice picks from pool with the given relative weights.
// Both slices must have equal length and weights must sum to a positive value.
func (f *Faker) WeightedChoice(pool []string, weights []float64) string {
	draw := f.rng.Float64() * lo.Sum(weights)
	for i, w := range weights {
		draw -= w
		if draw < 0 {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}

// SampleIDs returns k distinct elements of ids in random order, drawn without
// replacement. k must not exceed len(ids); callers clamp first.
func (f *Faker) SampleIDs(ids []int, k int) []int {
	picked := make([]int, len(ids))
	copy(picked, ids)
	// Partial Fisher-Yates: only the first k positions need shuffling.
	for i := 0; i < k; i++ {
		j := i + f.rng.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k]
}

func (f *Faker) Name() string {
	return f.Choice(firstNames) + " " + f.Choice(lastNames)
}

func (f *Faker) Country() string { return f.Choice(countries) }
func (f *Faker) City() string    { return f.Choice(cities) }

func (f *Faker) Word() string { return f.Choice(loremWords) }

// CapitalizedWord returns a display-friendly pool word ("Alpine", "Retro").
func (f *Faker) CapitalizedWord() string {
	w := f.Word()
	return strings.ToUpper(w[:1]) + w[1:]
}

// UniqueEmail returns an email address not issued before in this run.
// Collisions redraw with a numeric disambiguator, so the method always
// terminates regardless of pool exhaustion.
func (f *Faker) UniqueEmail() string {
	base := fmt.Sprintf("%s.%s@%s",
		strings.ToLower(f.Choice(firstNames)),
		strings.ToLower(f.Choice(lastNames)),
		f.Choice(emailDomains),
	)
	email := base
	for n := 2; ; n++ {
		if _, taken := f.usedEmails[email]; !taken {
			break
		}
		at := strings.IndexByte(base, '@')
		email = fmt.Sprintf("%s%d%s", base[:at], n, base[at:])
	}
	f.usedEmails[email] = struct{}{}
	return email
}

// UniqueSKU returns "PREFIX-####-XX" (4 digits, 2 uppercase letters), unique
// within the run across all prefixes.
func (f *Faker) UniqueSKU(prefix string) string {
	for {
		sku := fmt.Sprintf("%s-%04d-%c%c",
			prefix,
			f.IntRange(0, 9999),
			rune('A'+f.rng.Intn(26)),
			rune('A'+f.rng.Intn(26)),
		)
		if _, taken := f.usedSKUs[sku]; taken {
			continue
		}
		f.usedSKUs[sku] = struct{}{}
		return sku
	}
}

// Time returns a uniformly random instant in [start, end] at whole-second
// granularity.
func (f *Faker) Time(start, end time.Time) time.Time {
	seconds := int64(end.Sub(start) / time.Second)
	if seconds <= 0 {
		return start
	}
	return start.Add(time.Duration(f.rng.Int63n(seconds+1)) * time.Second)
}
