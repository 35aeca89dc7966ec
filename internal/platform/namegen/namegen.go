// Package namegen produces human and club names for procedurally generated
// content. Callers treat it as a black-box string source.
package namegen

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/futsalverse/futsal-manager/internal/platform/rng"
)

var clubAbbreviations = [4]string{"SC", "FC", "FK", "SK"}

// Team names cap at 32 characters; club names must fit under that limit.
const clubNameMaxLen = 32

type Generator struct {
	faker *gofakeit.Faker
	rng   *rng.Rand
}

// New builds a generator sharing the simulation's randomness source, so a
// seeded run yields the same roster names.
func New(r *rng.Rand, seed uint64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		rng:   r,
	}
}

// PlayerName returns a plausible full player name.
func (g *Generator) PlayerName() string {
	return g.faker.Name()
}

// ClubName returns a city-based club name with a league-style abbreviation
// randomly placed before or after the city. Names always fit the team-name
// length limit.
func (g *Generator) ClubName() string {
	abbr := clubAbbreviations[g.rng.IntN(len(clubAbbreviations))]
	maxCityLen := clubNameMaxLen - len(abbr) - 1

	city := g.faker.City()
	for attempt := 0; attempt < 5 && len(city) > maxCityLen; attempt++ {
		city = g.faker.City()
	}
	if len(city) > maxCityLen {
		city = strings.TrimSpace(city[:maxCityLen])
	}

	if g.rng.Coin() == 0 {
		return abbr + " " + city
	}
	return city + " " + abbr
}
