// Package synonyms mantém o vocabulário estático que liga palavras do
// texto do usuário às categorias de integração.
package synonyms

// DomainSynonyms mapeia cada categoria (category_hint de uma
// integração) para os termos que a evocam num texto livre. Termos
// curtos valem menos que termos longos no roteamento, então o
// vocabulário pode ser generoso sem causar falsos positivos.
var DomainSynonyms = map[string][]string{
	"imoveis": {
		"imovel", "imoveis", "apartamento", "apto", "casa", "kitnet",
		"studio", "sobrado", "terreno", "lote", "quarto", "quartos",
		"dormitorio", "dormitorios", "suite", "suites", "aluguel",
		"alugar", "comprar", "venda", "condominio", "sacada", "garagem",
		"vaga", "bairro", "mobiliado", "lancamento", "planta",
	},
	"carros": {
		"carro", "carros", "veiculo", "veiculos", "automovel", "moto",
		"motos", "caminhonete", "picape", "suv", "sedan", "hatch",
		"km", "quilometragem", "cambio", "automatico", "manual",
		"flex", "diesel", "gasolina", "ipva", "financiamento",
	},
	"produtos": {
		"produto", "produtos", "estoque", "item", "itens", "catalogo",
		"mercadoria", "mercadorias", "sku", "preco", "oferta",
		"promocao", "desconto", "frete", "entrega", "loja",
	},
	"servicos": {
		"servico", "servicos", "agendamento", "agendar", "horario",
		"consulta", "atendimento", "orcamento", "profissional",
	},
}
