package utils

import (
	"testing"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"São José", "Sao Jose"},
		{"Florianópolis", "Florianopolis"},
		{"Palhoça", "Palhoca"},
		{"coração", "coracao"},
		{"sem acento", "sem acento"},
		{"", ""},
	}

	for _, test := range tests {
		result := RemoveAccents(test.input)
		if result != test.expected {
			t.Errorf("RemoveAccents(%q) = %q; expected %q", test.input, result, test.expected)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Apartamento em Florianópolis", "apartamento em florianopolis"},
		{"  Kobrasol   São José  ", "kobrasol sao jose"},
		{"2 QUARTOS", "2 quartos"},
		{"", ""},
	}

	for _, test := range tests {
		result := Normalize(test.input)
		if result != test.expected {
			t.Errorf("Normalize(%q) = %q; expected %q", test.input, result, test.expected)
		}
	}
}

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{" Centro ", "centro"},
		{"Estreito", "estreito"},
		{"Ponta de Baixo", "ponta de baixo"},
	}

	for _, test := range tests {
		result := NormalizeField(test.input)
		if result != test.expected {
			t.Errorf("NormalizeField(%q) = %q; expected %q", test.input, result, test.expected)
		}
	}
}
