package test

import (
	"math/rand"
	"strconv"
	"strings"
)

// statementTemplates are top-level statements that always terminate. {i}
// stands for the statement index and {n} for a small number.
var statementTemplates = []string{
	"x <- x + {n}",
	"Escribir \"paso \", {i}, \": \", x",
	"Si x > {n} Entonces\n\tEscribir x\nSino\n\tx <- x + 1\nFinSi",
	"Mientras falso Hacer\n\tx <- 1\nFinMientras",
	"Para i <- 1 Hasta {n} Hacer\n\tx <- x + i\nFinPara",
	"Repetir\n\tx <- x + 1\nHasta Que x > {n}",
	"Dimension v{i}[{n}]",
	"Segun x Hacer\n\tCaso {n}:\n\t\tEscribir \"igual\"\n\tDe Otro Modo:\n\t\tEscribir \"distinto\"\nFinSegun",
	"y <- raiz(x) * ({n} - 1)",
}

// GetRandomProgram returns a valid, terminating program with exactly
// stmts top-level statements. The first one initialises x.
func GetRandomProgram(stmts int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))

	var b strings.Builder
	b.WriteString("Algoritmo aleatorio\n")
	for i := 0; i < stmts; i++ {
		stmt := "x <- 0"
		if i > 0 {
			tmpl := statementTemplates[rng.Intn(len(statementTemplates))]
			stmt = strings.NewReplacer(
				"{i}", strconv.Itoa(i),
				"{n}", strconv.Itoa(rng.Intn(9)+1),
			).Replace(tmpl)
		}

		b.WriteString(stmt)
		b.WriteString("\n")
	}
	b.WriteString("FinAlgoritmo\n")

	return b.String()
}
