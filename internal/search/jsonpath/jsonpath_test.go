package jsonpath

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("json inválido no teste: %v", err)
	}
	return v
}

func TestGetByPath(t *testing.T) {
	obj := mustDecode(t, `{"a":{"b":[{"c":1},{"c":2}]}}`)

	tests := []struct {
		name string
		path string
		want any
	}{
		{
			name: "Wildcard achata um nível",
			path: "a.b[].c",
			want: []any{float64(1), float64(2)},
		},
		{
			name: "Índice explícito",
			path: "a.b[0].c",
			want: float64(1),
		},
		{
			name: "Índice fora do array",
			path: "a.b[5].c",
			want: nil,
		},
		{
			name: "Chave ausente retorna nil sem pânico",
			path: "x.y",
			want: nil,
		},
		{
			name: "Caminho vazio retorna o próprio objeto",
			path: "",
			want: obj,
		},
		{
			name: "Wildcard no fim retorna os elementos",
			path: "a.b[]",
			want: []any{
				map[string]any{"c": float64(1)},
				map[string]any{"c": float64(2)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetByPath(obj, tt.path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetByPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetByPathNaoMapa(t *testing.T) {
	obj := mustDecode(t, `{"a":42}`)
	if got := GetByPath(obj, "a.b"); got != nil {
		t.Errorf("descer em escalar deveria retornar nil, got %v", got)
	}
}

func TestGetListByPath(t *testing.T) {
	obj := mustDecode(t, `{"meta":{"total":2},"data":{"items":[{"id":1},{"id":2}]}}`)

	t.Run("Caminho explícito", func(t *testing.T) {
		got := GetListByPath(obj, "data.items")
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("Resultado não-array vira lista vazia", func(t *testing.T) {
		got := GetListByPath(obj, "meta.total")
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("Caminho vazio descobre o primeiro array", func(t *testing.T) {
		got := GetListByPath(obj, "")
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})
}

func TestFindFirstArray(t *testing.T) {
	obj := mustDecode(t, `{"z":{"lista":[1,2,3]},"a":{"b":"texto"}}`)

	path, arr, ok := FindFirstArray(obj)
	if !ok {
		t.Fatal("deveria encontrar um array")
	}
	if path != "z.lista" {
		t.Errorf("path = %q, want z.lista", path)
	}
	if len(arr) != 3 {
		t.Errorf("len = %d, want 3", len(arr))
	}

	_, _, ok = FindFirstArray(mustDecode(t, `{"a":1}`))
	if ok {
		t.Error("não deveria encontrar array em objeto sem arrays")
	}
}
