// Package jsonpath implementa o mini-dialeto de caminhos usado para
// extrair valores de respostas JSON arbitrárias de provedores.
//
// Gramática: segmentos separados por ponto; "chave[]" lê o array em
// chave e achata um nível (wildcard); "chave[N]" lê o índice N.
// Chaves intermediárias ausentes resultam em nil, nunca em pânico.
package jsonpath

import (
	"sort"
	"strconv"
	"strings"
)

// GetByPath resolve um caminho contra um valor JSON decodificado.
// Retorna nil quando qualquer segmento não resolve.
func GetByPath(obj any, path string) any {
	path = strings.TrimSpace(path)
	if path == "" {
		return obj
	}
	return resolve(obj, strings.Split(path, "."))
}

// GetListByPath resolve um caminho esperando um array. Caminho vazio
// dispara a descoberta heurística (primeiro array encontrado em busca
// em largura). Resultado não-array é coercido para lista vazia.
func GetListByPath(obj any, path string) []any {
	if strings.TrimSpace(path) == "" {
		_, arr, ok := FindFirstArray(obj)
		if !ok {
			return []any{}
		}
		return arr
	}
	if arr, ok := GetByPath(obj, path).([]any); ok {
		return arr
	}
	return []any{}
}

// FindFirstArray percorre o grafo do objeto em largura e retorna o
// primeiro array encontrado junto com o caminho até ele. Chaves de
// mapas são visitadas em ordem lexicográfica para determinismo.
func FindFirstArray(obj any) (string, []any, bool) {
	type node struct {
		path  string
		value any
	}
	queue := []node{{"", obj}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		switch v := cur.value.(type) {
		case []any:
			return cur.path, v, true
		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				p := k
				if cur.path != "" {
					p = cur.path + "." + k
				}
				queue = append(queue, node{p, v[k]})
			}
		}
	}
	return "", nil, false
}

func resolve(cur any, segs []string) any {
	if len(segs) == 0 {
		return cur
	}

	name, idx, wildcard := parseSegment(segs[0])
	if name != "" {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[name]
	}
	if cur == nil {
		return nil
	}

	if wildcard {
		arr, ok := cur.([]any)
		if !ok {
			return nil
		}
		out := make([]any, 0, len(arr))
		for _, el := range arr {
			if v := resolve(el, segs[1:]); v != nil {
				out = append(out, v)
			}
		}
		return out
	}

	if idx >= 0 {
		arr, ok := cur.([]any)
		if !ok || idx >= len(arr) {
			return nil
		}
		cur = arr[idx]
	}

	return resolve(cur, segs[1:])
}

// parseSegment separa "chave[]" e "chave[N]" em nome + índice/wildcard
func parseSegment(seg string) (name string, idx int, wildcard bool) {
	idx = -1
	open := strings.Index(seg, "[")
	if open < 0 || !strings.HasSuffix(seg, "]") {
		return seg, -1, false
	}

	name = seg[:open]
	inner := seg[open+1 : len(seg)-1]
	if inner == "" || inner == "*" {
		return name, -1, true
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 0 {
		// índice malformado: trata como chave literal inexistente
		return seg, -1, false
	}
	return name, n, false
}
