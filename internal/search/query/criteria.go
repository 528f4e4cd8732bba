// Package query extrai critérios estruturados de texto livre em
// português e traduz filtros canônicos para os parâmetros específicos
// de cada provedor.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/utils"
)

// Parser extrai critérios de busca de texto livre
type Parser struct{}

// NewParser cria um novo parser de critérios
func NewParser() *Parser {
	return &Parser{}
}

var (
	reQuartosDigito = regexp.MustCompile(`(\d+)\s*(quartos?|dormitorios?|dorms?|qtos?|suites?)`)
	reQuartosExt    = regexp.MustCompile(`(um|uma|dois|duas|tres|quatro|cinco|seis|sete|oito|nove|dez)\s+(quartos?|dormitorios?)`)
	reBairro        = regexp.MustCompile(`bairro\s+([a-z0-9]+(?:\s+[a-z0-9]+){0,3})`)
	reEm            = regexp.MustCompile(`\bem\s+(?:o\s+|a\s+)?([a-z0-9]+(?:\s+[a-z0-9]+){0,3})`)
	reCidadeUF      = regexp.MustCompile(`([a-z]+(?:\s+[a-z]+){0,2})\s*/\s*([a-z]{2})\b`)
)

var numerosExtensos = map[string]int{
	"um": 1, "uma": 1, "dois": 2, "duas": 2, "tres": 3, "quatro": 4,
	"cinco": 5, "seis": 6, "sete": 7, "oito": 8, "nove": 9, "dez": 10,
}

// cidades conhecidas: evita classificar cidade como bairro no padrão
// "em X" e resolve cidade citada sem o /UF
var cidadesConhecidas = map[string]string{
	"florianopolis":  "SC",
	"sao jose":       "SC",
	"palhoca":        "SC",
	"biguacu":        "SC",
	"itajai":         "SC",
	"blumenau":       "SC",
	"joinville":      "SC",
	"curitiba":       "PR",
	"porto alegre":   "RS",
	"sao paulo":      "SP",
	"campinas":       "SP",
	"rio de janeiro": "RJ",
	"belo horizonte": "MG",
	"salvador":       "BA",
	"recife":         "PE",
	"fortaleza":      "CE",
	"brasilia":       "DF",
	"goiania":        "GO",
}

var estadosExtensos = map[string]string{
	"santa catarina":     "SC",
	"parana":             "PR",
	"rio grande do sul":  "RS",
	"sao paulo":          "SP",
	"minas gerais":       "MG",
	"bahia":              "BA",
	"pernambuco":         "PE",
	"ceara":              "CE",
}

// tiposImovel é o vocabulário fixo de tipos reconhecidos; o valor é a
// forma canônica
var tiposImovel = map[string]string{
	"apartamento": "apartamento",
	"apto":        "apartamento",
	"ap":          "apartamento",
	"casa":        "casa",
	"kitnet":      "kitnet",
	"studio":      "studio",
	"sobrado":     "sobrado",
	"terreno":     "terreno",
}

// palavras que nunca são nome de bairro/cidade quando capturadas pelo
// padrão "em X"
var stopBairro = map[string]bool{
	"ate": true, "por": true, "com": true, "para": true, "que": true,
	"condominio": true, "frente": true, "oferta": true, "promocao": true,
	"bom": true, "boa": true, "otimo": true, "estado": true,
}

// Parse extrai critérios estruturados do texto. O texto é normalizado
// (sem acentos, minúsculas) antes da extração.
func (p *Parser) Parse(text string) models.Criteria {
	norm := utils.Normalize(text)
	c := models.Criteria{}

	// Quartos: dígito ou número por extenso
	if m := reQuartosDigito.FindStringSubmatch(norm); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			c.Quartos = &n
		}
	} else if m := reQuartosExt.FindStringSubmatch(norm); m != nil {
		if n, ok := numerosExtensos[m[1]]; ok {
			c.Quartos = &n
		}
	}

	// Cidade/UF explícito: "florianopolis/sc"
	if m := reCidadeUF.FindStringSubmatch(norm); m != nil {
		c.Cidade = trimCidade(m[1])
		c.Estado = strings.ToUpper(m[2])
	}

	// Cidade ou estado citados por nome
	if c.Cidade == "" {
		for cidade, uf := range cidadesConhecidas {
			if strings.Contains(norm, cidade) {
				c.Cidade = cidade
				if c.Estado == "" {
					c.Estado = uf
				}
				break
			}
		}
	}
	if c.Estado == "" {
		for nome, uf := range estadosExtensos {
			if strings.Contains(norm, nome) {
				c.Estado = uf
				break
			}
		}
	}

	// Bairro: "bairro X" tem prioridade sobre "em X"
	if m := reBairro.FindStringSubmatch(norm); m != nil {
		c.Bairro = trimLocationTail(m[1])
	} else if m := reEm.FindStringSubmatch(norm); m != nil {
		candidate := trimLocationTail(m[1])
		if candidate != "" && !isCidadeConhecida(candidate) && !stopBairro[firstWord(candidate)] {
			c.Bairro = candidate
		}
	}

	// Tipo de imóvel do vocabulário fixo
	for _, token := range strings.Fields(norm) {
		if tipo, ok := tiposImovel[token]; ok {
			c.Tipo = tipo
			break
		}
	}

	return c
}

// trimLocationTail corta a captura em conectivos que indicam que o
// nome do local já terminou ("kobrasol ate 450" -> "kobrasol")
func trimLocationTail(s string) string {
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if stopBairro[w] || numerosExtensos[w] > 0 || isNumero(w) {
			break
		}
		if _, isTipo := tiposImovel[w]; isTipo {
			break
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// trimCidade descarta conectivos e o tipo de imóvel capturados antes
// do nome da cidade no padrão "City/UF"
func trimCidade(s string) string {
	words := strings.Fields(s)
	for i := range words {
		cand := strings.Join(words[i:], " ")
		if _, ok := cidadesConhecidas[cand]; ok {
			return cand
		}
	}
	for len(words) > 1 {
		w := words[0]
		_, isTipo := tiposImovel[w]
		if !isTipo && !stopBairro[w] && w != "em" && w != "no" && w != "na" && w != "de" {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " ")
}

func isCidadeConhecida(s string) bool {
	if _, ok := cidadesConhecidas[s]; ok {
		return true
	}
	// captura parcial de cidade composta ("sao jose dos...")
	for cidade := range cidadesConhecidas {
		if strings.HasPrefix(s, cidade) || strings.HasPrefix(cidade, s) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func isNumero(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
