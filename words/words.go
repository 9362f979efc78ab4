// Package words supplies random word choices for drawers and derives the
// masked hint shown to guessers.
package words

import (
	"math/rand"
	"strings"
	"unicode"
)

var easy = []string{
	"cat", "dog", "sun", "moon", "tree", "house", "car", "ball", "fish", "bird",
	"apple", "book", "chair", "door", "flower", "hat", "key", "lamp", "phone", "star",
	"bed", "cup", "eye", "hand", "heart", "pizza", "smile", "snow", "water", "cloud",
}

var medium = []string{
	"airplane", "bicycle", "butterfly", "campfire", "computer", "dinosaur", "dolphin",
	"elephant", "fireworks", "hamburger", "helicopter", "icecream", "keyboard", "lighthouse",
	"mushroom", "newspaper", "octopus", "parachute", "rainbow", "sandwich", "skateboard",
	"telescope", "umbrella", "volcano", "waterfall", "basketball", "calendar", "detective",
	"envelope", "fountain",
}

var hard = []string{
	"astronaut", "avalanche", "blueprint", "chameleon", "chandelier", "constellation",
	"earthquake", "electricity", "fingerprint", "graduation", "hibernation", "imagination",
	"kaleidoscope", "labyrinth", "marshmallow", "nightmare", "observatory", "philosophy",
	"quicksand", "reflection", "skyscraper", "supermarket", "thermometer", "translation",
	"underwater", "ventriloquist", "watermelon", "xylophone", "photograph", "trampoline",
}

var all = buildAll()

func buildAll() []string {
	combined := make([]string, 0, len(easy)+len(medium)+len(hard))
	combined = append(combined, easy...)
	combined = append(combined, medium...)
	combined = append(combined, hard...)
	return combined
}

// Random returns n distinct words drawn from the combined word lists.
// n is capped at the list size.
func Random(n int) []string {
	if n > len(all) {
		n = len(all)
	}
	if n <= 0 {
		return nil
	}

	picked := make([]string, 0, n)
	for _, i := range rand.Perm(len(all))[:n] {
		picked = append(picked, all[i])
	}

	return picked
}

// Mask replaces every letter with an underscore, keeping other runes so the
// hint always has the same length as the word.
func Mask(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return '_'
		}
		return r
	}, word)
}

// Provider adapts the package functions to the coordinator's word source
// interface.
type Provider struct{}

func (Provider) Random(n int) []string { return Random(n) }
func (Provider) Mask(word string) string { return Mask(word) }
