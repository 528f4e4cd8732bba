package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveAccents remove acentos e diacríticos de um texto
// Exemplo: "São José" -> "Sao Jose"
func RemoveAccents(s string) string {
	if s == "" {
		return s
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, _ := transform.String(t, s)

	return normalized
}

// Normalize prepara um texto para comparação: remove acentos, converte
// para minúsculas e colapsa espaços
// Exemplo: "Apartamento  em  Florianópolis" -> "apartamento em florianopolis"
func Normalize(s string) string {
	if s == "" {
		return s
	}

	normalized := strings.ToLower(RemoveAccents(s))
	return strings.Join(strings.Fields(normalized), " ")
}

// NormalizeField normaliza o valor de um campo de item para matching,
// sem colapsar espaços internos além do trim
func NormalizeField(s string) string {
	return strings.TrimSpace(strings.ToLower(RemoveAccents(s)))
}
