// Package search orquestra o ciclo de vida das integrações: cadastro,
// inferência de schema/rolemap, execução de buscas e o fluxo
// conversacional de roteamento por categoria.
package search

import (
	"log"
	"strings"

	"github.com/vendaflow/app-inventario-search/internal/models"
	"github.com/vendaflow/app-inventario-search/internal/search/synonyms"
	"github.com/vendaflow/app-inventario-search/internal/utils"
)

// ChooseIntegration escolhe, entre as integrações ativas da empresa, a
// que melhor atende o texto do usuário. Retorna nil quando nenhuma
// pontua; o chamador decide o fallback.
func ChooseIntegration(integrations []*models.IntegrationDescriptor, text string) *models.IntegrationDescriptor {
	norm := utils.Normalize(text)
	if norm == "" {
		return nil
	}

	var best *models.IntegrationDescriptor
	bestScore := 0
	for _, d := range integrations {
		if d == nil || !d.Ativo {
			continue
		}
		score := categoryScore(d.CategoryHint, norm)
		if score > bestScore {
			best = d
			bestScore = score
		}
	}

	if best != nil {
		log.Printf("Roteamento: texto casou com a integração %s (categoria %s, score %d)", best.ID, best.CategoryHint, bestScore)
	}
	return best
}

// categoryScore soma pontos por termo da categoria presente no texto
// normalizado: termos com 5+ caracteres valem 2, os demais 1. O hint é
// normalizado e quebrado em tokens; quando cita um domínio conhecido
// ("imoveis", "carros", ...), o vocabulário de sinônimos do domínio
// entra no conjunto de termos.
func categoryScore(category, normText string) int {
	catNorm := utils.Normalize(category)
	if catNorm == "" {
		return 0
	}

	terms := make(map[string]bool)
	for _, tok := range strings.Fields(catNorm) {
		terms[tok] = true
	}
	for domain, vocab := range synonyms.DomainSynonyms {
		if strings.Contains(catNorm, domain) {
			for _, term := range vocab {
				terms[term] = true
			}
		}
	}

	score := 0
	for term := range terms {
		if strings.Contains(normText, term) {
			score += termWeight(term)
		}
	}
	return score
}

func termWeight(term string) int {
	if len(term) >= 5 {
		return 2
	}
	return 1
}
