package test

import (
	"math/rand"
	"strconv"
	"strings"
)

var (
	keywords    = []string{"Algoritmo", "FinAlgoritmo", "Escribir", "Leer", "Si", "Entonces", "Sino", "FinSi", "Segun", "Caso", "Mientras", "Hacer", "FinMientras", "Repetir", "Hasta", "Que", "Para", "Con", "Paso", "FinPara", "Dimension"}
	identifiers = []string{"contador", "año", "x", "total2", "Niño"}
	operators   = []string{"<-", "+", "-", "*", "/", "<", ">", "<=", ">=", "<>", "=", "&", "|", ":", "(", ")", "[", "]", ","}
	texts       = []string{"", "una cadena", "una cadena bastante más larga: Lorem ipsum dolor sit amet, consectetur adipiscing elit."}
)

// tokenGenerators produce one lexeme of each token kind.
var tokenGenerators = []func(rng *rand.Rand) string{
	func(rng *rand.Rand) string { return pick(rng, keywords) },
	func(rng *rand.Rand) string { return strings.ToUpper(pick(rng, keywords)) },
	func(rng *rand.Rand) string { return pick(rng, identifiers) },
	func(rng *rand.Rand) string { return pick(rng, operators) },
	func(rng *rand.Rand) string { return strconv.Quote(pick(rng, texts)) },
	func(rng *rand.Rand) string { return strconv.Itoa(rng.Intn(100000)) },
	func(rng *rand.Rand) string { return pick(rng, []string{"verdadero", "Falso"}) },
	func(*rand.Rand) string { return "// comentario\n" },
	func(*rand.Rand) string { return "\n" },
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}

// GetRandomTokens returns size lexically valid tokens separated by spaces.
// The result is not necessarily a valid program.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ", rand.Int63())
}

func GetRandomTokensWithSep(size int, sep string, seed int64) string {
	rng := rand.New(rand.NewSource(seed))

	toks := make([]string, 0, size)
	for len(toks) < size {
		toks = append(toks, tokenGenerators[rng.Intn(len(tokenGenerators))](rng))
	}

	return strings.Join(toks, sep)
}
