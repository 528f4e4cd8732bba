package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	t.Run("Set e Get", func(t *testing.T) {
		c.Set(ctx, "k1", []byte("valor"), time.Minute)
		got, ok := c.Get(ctx, "k1")
		if !ok || string(got) != "valor" {
			t.Errorf("Get = %q, %v", got, ok)
		}
	})

	t.Run("Chave inexistente", func(t *testing.T) {
		if _, ok := c.Get(ctx, "nao-existe"); ok {
			t.Error("chave inexistente deveria ser miss")
		}
	})

	t.Run("Entrada expirada vira miss", func(t *testing.T) {
		c.Set(ctx, "k2", []byte("efemero"), time.Millisecond)
		time.Sleep(5 * time.Millisecond)
		if _, ok := c.Get(ctx, "k2"); ok {
			t.Error("entrada expirada deveria ser miss")
		}
	})

	t.Run("Del remove", func(t *testing.T) {
		c.Set(ctx, "k3", []byte("x"), time.Minute)
		c.Del(ctx, "k3")
		if _, ok := c.Get(ctx, "k3"); ok {
			t.Error("Del não removeu a entrada")
		}
	})

	t.Run("TTL não positivo não grava", func(t *testing.T) {
		c.Set(ctx, "k4", []byte("x"), 0)
		if _, ok := c.Get(ctx, "k4"); ok {
			t.Error("ttl zero não deveria gravar")
		}
	})
}
